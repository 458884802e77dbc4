package saleshandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storeops/internal/domain/audit"
	"storeops/internal/domain/ledger"
	"storeops/internal/domain/org"
	"storeops/internal/domain/sales"
	"storeops/internal/transport/http/api"
	"storeops/internal/transport/http/middleware"
	"storeops/internal/transport/http/shared"
)

type Handler struct {
	Service *sales.Service
	Audit   *audit.Service
}

func NewHandler(service *sales.Service, auditService *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sales", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Put("/", h.handleUpsert)
		r.Get("/summary", h.handleSummary)
		r.Get("/{saleID}", h.handleGet)
	})
}

type upsertRequest struct {
	StoreID    string                `json:"storeId"`
	SaleDate   string                `json:"saleDate"`
	Currency   string                `json:"currency"`
	Channels   ledger.ChannelAmounts `json:"channels"`
	CashInTill int64                 `json:"cashInTill"`
	Notes      string                `json:"notes"`
}

// handleUpsert is a PUT: the same store, currency and day always lands on
// the same row, so mobile clients can retry the submit safely.
func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("storeId", payload.StoreID, "storeId is required")
	saleDate, _ := v.Date("saleDate", payload.SaleDate)
	if v.Reject(w, requestID) {
		return
	}

	sale, reconciliation, err := h.Service.Upsert(r.Context(), sales.UpsertInput{
		StoreID:    payload.StoreID,
		SaleDate:   saleDate,
		Currency:   payload.Currency,
		Channels:   payload.Channels,
		CashInTill: payload.CashInTill,
		Notes:      payload.Notes,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrStoreNotFound)
		return
	}
	shared.Audit(r, h.Audit, "sale.upsert", "sale", sale.ID, nil, sale)
	api.Success(w, map[string]any{
		"sale":           sale,
		"reconciliation": reconciliation,
	}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sale, err := h.Service.Get(r.Context(), chi.URLParam(r, "saleID"))
	if err != nil {
		shared.WriteDomainError(w, requestID, err, sales.ErrSaleNotFound)
		return
	}
	api.Success(w, sale, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	filter, ok := h.parseFilter(w, r, requestID)
	if !ok {
		return
	}
	matched, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "sales_list_failed", "failed to list sales", requestID)
		return
	}
	api.Success(w, matched, requestID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	filter, ok := h.parseFilter(w, r, requestID)
	if !ok {
		return
	}
	summary, err := h.Service.Summary(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "sales_summary_failed", "failed to summarize sales", requestID)
		return
	}
	api.Success(w, summary, requestID)
}

func (h *Handler) parseFilter(w http.ResponseWriter, r *http.Request, requestID string) (sales.Filter, bool) {
	period, ok := shared.ParsePeriod(w, r, requestID)
	if !ok {
		return sales.Filter{}, false
	}
	return sales.Filter{
		StoreID:  r.URL.Query().Get("storeId"),
		Currency: r.URL.Query().Get("currency"),
		From:     period.From,
		To:       period.To,
	}, true
}
