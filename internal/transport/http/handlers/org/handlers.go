package orghandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"storeops/internal/domain/audit"
	"storeops/internal/domain/money"
	"storeops/internal/domain/org"
	"storeops/internal/domain/report"
	"storeops/internal/domain/wage"
	"storeops/internal/transport/http/api"
	"storeops/internal/transport/http/middleware"
	"storeops/internal/transport/http/shared"
)

// Handler serves the directory: stores, employees, drivers, and vendors.
type Handler struct {
	Repo    *org.Repository
	Reports *report.Service
	Audit   *audit.Service
}

func NewHandler(repo *org.Repository, reports *report.Service, auditService *audit.Service) *Handler {
	return &Handler{Repo: repo, Reports: reports, Audit: auditService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/stores", func(r chi.Router) {
		r.Get("/", h.handleListStores)
		r.Post("/", h.handleCreateStore)
		r.Get("/{storeID}", h.handleGetStore)
	})
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGetEmployee)
			r.Put("/", h.handleUpdateEmployee)
			r.Get("/balance", h.handleEmployeeBalance)
		})
	})
	r.Route("/drivers", func(r chi.Router) {
		r.Get("/", h.handleListDrivers)
		r.Post("/", h.handleCreateDriver)
	})
	r.Route("/vendors", func(r chi.Router) {
		r.Get("/", h.handleListVendors)
		r.Post("/", h.handleCreateVendor)
	})
}

type storeRequest struct {
	Name                string   `json:"name"`
	SupportedCurrencies []string `json:"supportedCurrencies"`
	DefaultCurrency     string   `json:"defaultCurrency"`
}

func (h *Handler) handleCreateStore(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload storeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if len(payload.SupportedCurrencies) == 0 {
		v.Add("supportedCurrencies", "at least one currency is required")
	}

	currencies := make([]money.Currency, 0, len(payload.SupportedCurrencies))
	for _, raw := range payload.SupportedCurrencies {
		currency, err := money.Parse(raw)
		if err != nil {
			v.Add("supportedCurrencies", err.Error())
			continue
		}
		currencies = append(currencies, currency)
	}

	defaultCurrency, err := money.Parse(payload.DefaultCurrency)
	if err != nil {
		v.Add("defaultCurrency", err.Error())
	}
	if v.Reject(w, requestID) {
		return
	}

	store := org.Store{
		Name:                strings.TrimSpace(payload.Name),
		SupportedCurrencies: currencies,
		DefaultCurrency:     defaultCurrency,
	}
	if !store.SupportsCurrency(defaultCurrency) {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{
			{Field: "defaultCurrency", Reason: "default currency must be in the supported set"},
		})
		return
	}

	id, err := h.Repo.CreateStore(r.Context(), store)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "store_create_failed", "failed to create store", requestID)
		return
	}
	store.ID = id
	shared.Audit(r, h.Audit, "store.create", "store", id, nil, store)
	api.Created(w, store, requestID)
}

func (h *Handler) handleListStores(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	stores, err := h.Repo.ListStores(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "store_list_failed", "failed to list stores", requestID)
		return
	}
	api.Success(w, stores, requestID)
}

func (h *Handler) handleGetStore(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	store, err := h.Repo.GetStore(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrStoreNotFound)
		return
	}
	api.Success(w, store, requestID)
}

type employeeRequest struct {
	StoreID       string   `json:"storeId"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	WageType      string   `json:"wageType"`
	HourlyRateEur *float64 `json:"hourlyRateEur"`
	HourlyRateGbp *float64 `json:"hourlyRateGbp"`
	DailyWageEur  *float64 `json:"dailyWageEur"`
	DailyWageGbp  *float64 `json:"dailyWageGbp"`
	Status        string   `json:"status"`
}

func (h *Handler) employeeFromRequest(w http.ResponseWriter, r *http.Request, requestID string) (org.Employee, bool) {
	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return org.Employee{}, false
	}

	v := shared.NewValidator()
	v.Required("storeId", payload.StoreID, "storeId is required")
	v.Required("firstName", payload.FirstName, "firstName is required")
	v.Required("lastName", payload.LastName, "lastName is required")
	wageType, ok := wage.ParseType(payload.WageType)
	if !ok {
		v.Add("wageType", "wageType must be hourly or fixed")
	}
	for field, rate := range map[string]*float64{
		"hourlyRateEur": payload.HourlyRateEur,
		"hourlyRateGbp": payload.HourlyRateGbp,
		"dailyWageEur":  payload.DailyWageEur,
		"dailyWageGbp":  payload.DailyWageGbp,
	} {
		if rate != nil && *rate < 0 {
			v.Add(field, "must not be negative")
		}
	}
	status := payload.Status
	if status == "" {
		status = org.EmployeeStatusActive
	}
	v.Enum("status", status, []string{org.EmployeeStatusActive, org.EmployeeStatusInactive}, "status must be active or inactive")
	if v.Reject(w, requestID) {
		return org.Employee{}, false
	}

	return org.Employee{
		StoreID:       payload.StoreID,
		FirstName:     strings.TrimSpace(payload.FirstName),
		LastName:      strings.TrimSpace(payload.LastName),
		WageType:      wageType,
		HourlyRateEur: payload.HourlyRateEur,
		HourlyRateGbp: payload.HourlyRateGbp,
		DailyWageEur:  payload.DailyWageEur,
		DailyWageGbp:  payload.DailyWageGbp,
		Status:        status,
	}, true
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employee, ok := h.employeeFromRequest(w, r, requestID)
	if !ok {
		return
	}

	if _, err := h.Repo.GetStore(r.Context(), employee.StoreID); err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrStoreNotFound)
		return
	}

	id, err := h.Repo.CreateEmployee(r.Context(), employee)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", requestID)
		return
	}
	employee.ID = id
	shared.Audit(r, h.Audit, "employee.create", "employee", id, nil, employee)
	api.Created(w, employee, requestID)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employees, err := h.Repo.ListEmployees(r.Context(), r.URL.Query().Get("storeId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employee, err := h.Repo.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrEmployeeNotFound)
		return
	}
	api.Success(w, employee, requestID)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	employee, ok := h.employeeFromRequest(w, r, requestID)
	if !ok {
		return
	}
	if err := h.Repo.UpdateEmployee(r.Context(), employeeID, employee); err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrEmployeeNotFound)
		return
	}
	employee.ID = employeeID
	shared.Audit(r, h.Audit, "employee.update", "employee", employeeID, nil, employee)
	api.Success(w, employee, requestID)
}

func (h *Handler) handleEmployeeBalance(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	period, ok := shared.ParsePeriod(w, r, requestID)
	if !ok {
		return
	}
	balance, err := h.Reports.EmployeeBalance(r.Context(), chi.URLParam(r, "employeeID"), period)
	if err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrEmployeeNotFound)
		return
	}
	api.Success(w, balance, requestID)
}

type driverRequest struct {
	StoreID string `json:"storeId"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
}

func (h *Handler) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload driverRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("storeId", payload.StoreID, "storeId is required")
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, requestID) {
		return
	}

	if _, err := h.Repo.GetStore(r.Context(), payload.StoreID); err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrStoreNotFound)
		return
	}

	driver := org.Driver{
		StoreID: payload.StoreID,
		Name:    strings.TrimSpace(payload.Name),
		Phone:   strings.TrimSpace(payload.Phone),
		Status:  org.DriverStatusActive,
	}
	id, err := h.Repo.CreateDriver(r.Context(), driver)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "driver_create_failed", "failed to create driver", requestID)
		return
	}
	driver.ID = id
	shared.Audit(r, h.Audit, "driver.create", "driver", id, nil, driver)
	api.Created(w, driver, requestID)
}

func (h *Handler) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	drivers, err := h.Repo.ListDrivers(r.Context(), r.URL.Query().Get("storeId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "driver_list_failed", "failed to list drivers", requestID)
		return
	}
	api.Success(w, drivers, requestID)
}

type vendorRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreateVendor(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload vendorRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, requestID) {
		return
	}

	vendor := org.Vendor{Name: strings.TrimSpace(payload.Name)}
	id, err := h.Repo.CreateVendor(r.Context(), vendor)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "vendor_create_failed", "failed to create vendor", requestID)
		return
	}
	vendor.ID = id
	shared.Audit(r, h.Audit, "vendor.create", "vendor", id, nil, vendor)
	api.Created(w, vendor, requestID)
}

func (h *Handler) handleListVendors(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	vendors, err := h.Repo.ListVendors(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "vendor_list_failed", "failed to list vendors", requestID)
		return
	}
	api.Success(w, vendors, requestID)
}
