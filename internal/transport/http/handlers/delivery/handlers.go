package deliveryhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storeops/internal/domain/audit"
	"storeops/internal/domain/delivery"
	"storeops/internal/domain/org"
	"storeops/internal/transport/http/api"
	"storeops/internal/transport/http/middleware"
	"storeops/internal/transport/http/shared"
)

type Handler struct {
	Service *delivery.Service
	Audit   *audit.Service
}

func NewHandler(service *delivery.Service, auditService *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/deliveries", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/expenses", h.handleExpenseTotals)
		r.Route("/{recordID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
		})
	})
}

type createRequest struct {
	DriverID           string `json:"driverId"`
	StoreID            string `json:"storeId"`
	CheckIn            string `json:"checkIn"`
	CheckOut           string `json:"checkOut"`
	NumberOfDeliveries int    `json:"numberOfDeliveries"`
	Currency           string `json:"currency"`
	ExpenseAmount      int64  `json:"expenseAmount"`
	Notes              string `json:"notes"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("driverId", payload.DriverID, "driverId is required")
	v.Required("storeId", payload.StoreID, "storeId is required")
	checkIn, _ := v.Date("checkIn", payload.CheckIn)
	checkOut, _ := v.Date("checkOut", payload.CheckOut)
	if v.Reject(w, requestID) {
		return
	}

	record, err := h.Service.Create(r.Context(), delivery.CreateInput{
		DriverID:           payload.DriverID,
		StoreID:            payload.StoreID,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		NumberOfDeliveries: payload.NumberOfDeliveries,
		Currency:           payload.Currency,
		ExpenseAmount:      payload.ExpenseAmount,
		Notes:              payload.Notes,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrStoreNotFound, org.ErrDriverNotFound)
		return
	}
	shared.Audit(r, h.Audit, "delivery.create", "delivery_record", record.ID, nil, record)
	api.Created(w, record, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	record, err := h.Service.Get(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		shared.WriteDomainError(w, requestID, err, delivery.ErrRecordNotFound)
		return
	}
	api.Success(w, record, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	recordID := chi.URLParam(r, "recordID")
	if err := h.Service.Delete(r.Context(), recordID); err != nil {
		shared.WriteDomainError(w, requestID, err, delivery.ErrRecordNotFound)
		return
	}
	shared.Audit(r, h.Audit, "delivery.delete", "delivery_record", recordID, nil, nil)
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	filter, ok := h.parseFilter(w, r, requestID)
	if !ok {
		return
	}
	records, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "delivery_list_failed", "failed to list delivery records", requestID)
		return
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handleExpenseTotals(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	filter, ok := h.parseFilter(w, r, requestID)
	if !ok {
		return
	}
	totals, err := h.Service.ExpenseTotals(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "delivery_expenses_failed", "failed to total delivery expenses", requestID)
		return
	}
	api.Success(w, totals, requestID)
}

func (h *Handler) parseFilter(w http.ResponseWriter, r *http.Request, requestID string) (delivery.Filter, bool) {
	period, ok := shared.ParsePeriod(w, r, requestID)
	if !ok {
		return delivery.Filter{}, false
	}
	return delivery.Filter{
		StoreID:  r.URL.Query().Get("storeId"),
		DriverID: r.URL.Query().Get("driverId"),
		From:     period.From,
		To:       period.To,
	}, true
}
