package attendancehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storeops/internal/domain/attendance"
	"storeops/internal/domain/audit"
	"storeops/internal/domain/org"
	"storeops/internal/transport/http/api"
	"storeops/internal/transport/http/middleware"
	"storeops/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
	Audit   *audit.Service
}

func NewHandler(service *attendance.Service, auditService *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/summary", h.handleSummary)
		r.Route("/{recordID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

type createRequest struct {
	EmployeeID string `json:"employeeId"`
	StoreID    string `json:"storeId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	Currency   string `json:"currency"`
	Notes      string `json:"notes"`
}

type updateRequest struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Currency string `json:"currency"`
	Notes    string `json:"notes"`
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
	v.Required("storeId", payload.StoreID, "storeId is required")
	checkIn, _ := v.Date("checkIn", payload.CheckIn)
	checkOut, _ := v.Date("checkOut", payload.CheckOut)
	if v.Reject(w, requestID) {
		return
	}

	record, err := h.Service.Create(r.Context(), attendance.CreateInput{
		EmployeeID: payload.EmployeeID,
		StoreID:    payload.StoreID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Currency:   payload.Currency,
		Notes:      payload.Notes,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrStoreNotFound, org.ErrEmployeeNotFound)
		return
	}
	shared.Audit(r, h.Audit, "attendance.create", "attendance_record", record.ID, nil, record)
	api.Created(w, record, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	checkIn, _ := v.Date("checkIn", payload.CheckIn)
	checkOut, _ := v.Date("checkOut", payload.CheckOut)
	if v.Reject(w, requestID) {
		return
	}

	record, err := h.Service.Update(r.Context(), chi.URLParam(r, "recordID"), attendance.UpdateInput{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Currency: payload.Currency,
		Notes:    payload.Notes,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err, attendance.ErrRecordNotFound, org.ErrStoreNotFound, org.ErrEmployeeNotFound)
		return
	}
	shared.Audit(r, h.Audit, "attendance.update", "attendance_record", record.ID, nil, record)
	api.Success(w, record, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	record, err := h.Service.Get(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		shared.WriteDomainError(w, requestID, err, attendance.ErrRecordNotFound)
		return
	}
	api.Success(w, record, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	recordID := chi.URLParam(r, "recordID")
	if err := h.Service.Delete(r.Context(), recordID); err != nil {
		shared.WriteDomainError(w, requestID, err, attendance.ErrRecordNotFound)
		return
	}
	shared.Audit(r, h.Audit, "attendance.delete", "attendance_record", recordID, nil, nil)
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
		api.Fail(w, http.StatusInternalServerError, "attendance_list_failed", "failed to list attendance records", requestID)
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
		api.Fail(w, http.StatusInternalServerError, "attendance_summary_failed", "failed to summarize attendance", requestID)
		return
	}
	api.Success(w, summary, requestID)
}

func (h *Handler) parseFilter(w http.ResponseWriter, r *http.Request, requestID string) (attendance.Filter, bool) {
	period, ok := shared.ParsePeriod(w, r, requestID)
	if !ok {
		return attendance.Filter{}, false
	}
	return attendance.Filter{
		StoreID:    r.URL.Query().Get("storeId"),
		EmployeeID: r.URL.Query().Get("employeeId"),
		From:       period.From,
		To:         period.To,
	}, true
}
