package expensehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storeops/internal/domain/audit"
	"storeops/internal/domain/expense"
	"storeops/internal/domain/org"
	"storeops/internal/transport/http/api"
	"storeops/internal/transport/http/middleware"
	"storeops/internal/transport/http/shared"
)

type Handler struct {
	Service *expense.Service
	Audit   *audit.Service
}

func NewHandler(service *expense.Service, auditService *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/expenses", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/summary", h.handleSummary)
		r.Route("/{expenseID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Post("/pay", h.handleMarkPaid)
		})
	})
}

type createRequest struct {
	StoreID     string `json:"storeId"`
	VendorID    string `json:"vendorId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	ExpenseDate string `json:"expenseDate"`
	Notes       string `json:"notes"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("storeId", payload.StoreID, "storeId is required")
	expenseDate, _ := v.Date("expenseDate", payload.ExpenseDate)
	if v.Reject(w, requestID) {
		return
	}

	record, err := h.Service.Create(r.Context(), expense.CreateInput{
		StoreID:     payload.StoreID,
		VendorID:    payload.VendorID,
		Amount:      payload.Amount,
		Currency:    payload.Currency,
		ExpenseDate: expenseDate,
		Notes:       payload.Notes,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrStoreNotFound, org.ErrVendorNotFound)
		return
	}
	shared.Audit(r, h.Audit, "expense.create", "expense", record.ID, nil, record)
	api.Created(w, record, requestID)
}

func (h *Handler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	record, err := h.Service.MarkPaid(r.Context(), chi.URLParam(r, "expenseID"))
	if errors.Is(err, expense.ErrAlreadyPaid) {
		api.Fail(w, http.StatusConflict, "already_paid", "expense is already paid", requestID)
		return
	}
	if err != nil {
		shared.WriteDomainError(w, requestID, err, expense.ErrExpenseNotFound)
		return
	}
	shared.Audit(r, h.Audit, "expense.pay", "expense", record.ID, nil, record)
	api.Success(w, record, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	record, err := h.Service.Get(r.Context(), chi.URLParam(r, "expenseID"))
	if err != nil {
		shared.WriteDomainError(w, requestID, err, expense.ErrExpenseNotFound)
		return
	}
	api.Success(w, record, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	filter, ok := h.parseFilter(w, r, requestID)
	if !ok {
		return
	}
	records, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "expense_list_failed", "failed to list expenses", requestID)
		return
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	filter, ok := h.parseFilter(w, r, requestID)
	if !ok {
		return
	}
	summary, err := h.Service.Summary(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "expense_summary_failed", "failed to summarize expenses", requestID)
		return
	}
	api.Success(w, summary, requestID)
}

func (h *Handler) parseFilter(w http.ResponseWriter, r *http.Request, requestID string) (expense.Filter, bool) {
	v := shared.NewValidator()
	status := r.URL.Query().Get("status")
	if status != "" {
		v.Enum("status", status, []string{expense.StatusRaised, expense.StatusPaid}, "status must be raised or paid")
	}
	if v.Reject(w, requestID) {
		return expense.Filter{}, false
	}
	period, ok := shared.ParsePeriod(w, r, requestID)
	if !ok {
		return expense.Filter{}, false
	}
	return expense.Filter{
		StoreID: r.URL.Query().Get("storeId"),
		Status:  status,
		From:    period.From,
		To:      period.To,
	}, true
}
