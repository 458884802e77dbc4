package paymenthandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storeops/internal/domain/audit"
	"storeops/internal/domain/org"
	"storeops/internal/domain/payment"
	"storeops/internal/transport/http/api"
	"storeops/internal/transport/http/middleware"
	"storeops/internal/transport/http/shared"
)

type Handler struct {
	Service *payment.Service
	Audit   *audit.Service
}

func NewHandler(service *payment.Service, auditService *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
	})
}

type createRequest struct {
	EmployeeID    string `json:"employeeId"`
	AmountPaid    int64  `json:"amountPaid"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"paymentMethod"`
	PaidDate      string `json:"paidDate"`
	Notes         string `json:"notes"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	paidDate, _ := v.Date("paidDate", payload.PaidDate)
	if v.Reject(w, requestID) {
		return
	}

	record, err := h.Service.Create(r.Context(), payment.CreateInput{
		EmployeeID:    payload.EmployeeID,
		AmountPaid:    payload.AmountPaid,
		Currency:      payload.Currency,
		PaymentMethod: payload.PaymentMethod,
		PaidDate:      paidDate,
		Notes:         payload.Notes,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrStoreNotFound, org.ErrEmployeeNotFound)
		return
	}
	shared.Audit(r, h.Audit, "payment.create", "payment", record.ID, nil, record)
	api.Created(w, record, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	period, ok := shared.ParsePeriod(w, r, requestID)
	if !ok {
		return
	}
	records, err := h.Service.List(r.Context(), payment.Filter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		From:       period.From,
		To:         period.To,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payment_list_failed", "failed to list payments", requestID)
		return
	}
	api.Success(w, records, requestID)
}
