package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"storeops/internal/app/server"
	"storeops/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		Environment:        "test",
		MigrationsDir:      "../../../../migrations",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
	}
}

func TestStoreDayJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	storeName := fmt.Sprintf("Journey Store %d", time.Now().UnixNano())
	storeID := createStore(t, client, ts.URL, token, storeName)

	employeeID := createEmployee(t, client, ts.URL, token, storeID)
	driverID := createDriver(t, client, ts.URL, token, storeID)
	vendorID := createVendor(t, client, ts.URL, token)

	// An 8 hour shift at EUR 15/h should be worth 120.00.
	attendance := postJSON(t, client, ts.URL+"/api/v1/attendance", token, map[string]any{
		"employeeId": employeeID,
		"storeId":    storeID,
		"checkIn":    "2026-02-02T09:00:00Z",
		"checkOut":   "2026-02-02T17:00:00Z",
		"currency":   "EUR",
	})
	var attendanceRecord map[string]any
	if err := json.Unmarshal(attendance.Data, &attendanceRecord); err != nil {
		t.Fatalf("failed to decode attendance response: %v", err)
	}
	if amount := attendanceRecord["amountToPay"].(float64); amount != 12000 {
		t.Fatalf("expected attendance amount 12000, got %v", amount)
	}

	postJSON(t, client, ts.URL+"/api/v1/deliveries", token, map[string]any{
		"driverId":           driverID,
		"storeId":            storeID,
		"checkIn":            "2026-02-02T18:00:00Z",
		"checkOut":           "2026-02-02T22:00:00Z",
		"numberOfDeliveries": 12,
		"currency":           "EUR",
		"expenseAmount":      1500,
	})

	// The till is 5.00 short of the recorded sales.
	first := putJSON(t, client, ts.URL+"/api/v1/sales", token, map[string]any{
		"storeId":    storeID,
		"saleDate":   "2026-02-02",
		"currency":   "EUR",
		"channels":   map[string]any{"cash": 30000, "online": 20000},
		"cashInTill": 49500,
	})
	var firstResult struct {
		Sale           map[string]any `json:"sale"`
		Reconciliation map[string]any `json:"reconciliation"`
	}
	if err := json.Unmarshal(first.Data, &firstResult); err != nil {
		t.Fatalf("failed to decode sales response: %v", err)
	}
	if status := firstResult.Reconciliation["status"]; status != "sales recorded exceed cash in till" {
		t.Fatalf("expected shortfall status, got %v", status)
	}

	// Re-submitting the same day replaces the figures instead of duplicating.
	second := putJSON(t, client, ts.URL+"/api/v1/sales", token, map[string]any{
		"storeId":    storeID,
		"saleDate":   "2026-02-02",
		"currency":   "EUR",
		"channels":   map[string]any{"cash": 30000, "online": 20000},
		"cashInTill": 50000,
	})
	var secondResult struct {
		Sale           map[string]any `json:"sale"`
		Reconciliation map[string]any `json:"reconciliation"`
	}
	if err := json.Unmarshal(second.Data, &secondResult); err != nil {
		t.Fatalf("failed to decode sales response: %v", err)
	}
	if status := secondResult.Reconciliation["status"]; status != "balanced" {
		t.Fatalf("expected balanced status, got %v", status)
	}
	if firstResult.Sale["id"] != secondResult.Sale["id"] {
		t.Fatalf("expected same sale row on resubmit, got %v and %v", firstResult.Sale["id"], secondResult.Sale["id"])
	}

	expenseID := createExpense(t, client, ts.URL, token, storeID, vendorID)
	paid := postJSON(t, client, ts.URL+"/api/v1/expenses/"+expenseID+"/pay", token, map[string]any{})
	var paidExpense map[string]any
	if err := json.Unmarshal(paid.Data, &paidExpense); err != nil {
		t.Fatalf("failed to decode expense pay response: %v", err)
	}
	if paidExpense["status"] != "paid" {
		t.Fatalf("expected expense status paid, got %v", paidExpense["status"])
	}
	postJSONStatus(t, client, ts.URL+"/api/v1/expenses/"+expenseID+"/pay", token, map[string]any{}, http.StatusConflict)

	postJSON(t, client, ts.URL+"/api/v1/payments", token, map[string]any{
		"employeeId":    employeeID,
		"amountPaid":    5000,
		"currency":      "EUR",
		"paymentMethod": "cash",
		"paidDate":      "2026-02-03",
	})

	balance := getJSON(t, client, ts.URL+"/api/v1/employees/"+employeeID+"/balance", token)
	var employeeBalance struct {
		Balances []struct {
			Currency  string `json:"currency"`
			Earned    int64  `json:"earned"`
			Paid      int64  `json:"paid"`
			Remaining int64  `json:"remaining"`
		} `json:"balances"`
	}
	if err := json.Unmarshal(balance.Data, &employeeBalance); err != nil {
		t.Fatalf("failed to decode balance response: %v", err)
	}
	if len(employeeBalance.Balances) != 1 {
		t.Fatalf("expected one currency balance, got %d", len(employeeBalance.Balances))
	}
	if got := employeeBalance.Balances[0]; got.Earned != 12000 || got.Paid != 5000 || got.Remaining != 7000 {
		t.Fatalf("unexpected balance: %+v", got)
	}

	profit := getJSON(t, client, ts.URL+"/api/v1/reports/stores/"+storeID+"/profit?from=2026-02-01&to=2026-02-28", token)
	var profitReport struct {
		Lines []struct {
			Currency         string `json:"currency"`
			Sales            int64  `json:"sales"`
			Expenses         int64  `json:"expenses"`
			Payroll          int64  `json:"payroll"`
			DeliveryExpenses int64  `json:"deliveryExpenses"`
			Profit           int64  `json:"profit"`
		} `json:"lines"`
	}
	if err := json.Unmarshal(profit.Data, &profitReport); err != nil {
		t.Fatalf("failed to decode profit response: %v", err)
	}
	if len(profitReport.Lines) != 1 {
		t.Fatalf("expected one profit line, got %d", len(profitReport.Lines))
	}
	line := profitReport.Lines[0]
	// 500.00 sales - 80.00 expenses - 120.00 payroll - 15.00 delivery costs.
	if line.Sales != 50000 || line.Expenses != 8000 || line.Payroll != 12000 || line.DeliveryExpenses != 1500 {
		t.Fatalf("unexpected profit inputs: %+v", line)
	}
	if line.Profit != 28500 {
		t.Fatalf("expected profit 28500, got %d", line.Profit)
	}

	// Every mutation in the journey should have landed in the audit trail.
	for _, action := range []string{
		"store.create", "employee.create", "driver.create", "vendor.create",
		"attendance.create", "delivery.create", "sale.upsert",
		"expense.create", "expense.pay", "payment.create",
	} {
		events := getJSON(t, client, ts.URL+"/api/v1/audit/events?action="+action, token)
		var list []map[string]any
		if err := json.Unmarshal(events.Data, &list); err != nil {
			t.Fatalf("failed to decode audit events for %s: %v", action, err)
		}
		if len(list) == 0 {
			t.Fatalf("expected an audit event for %s", action)
		}
	}
}

func TestUnsupportedCurrencyRejected(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	resp := postJSONRaw(t, client, ts.URL+"/api/v1/stores", token, map[string]any{
		"name":                fmt.Sprintf("EUR Only %d", time.Now().UnixNano()),
		"supportedCurrencies": []string{"EUR"},
		"defaultCurrency":     "EUR",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected store created, got %d", resp.StatusCode)
	}
	var created envelope
	decodeBody(t, resp, &created)
	resp.Body.Close()
	var store map[string]any
	if err := json.Unmarshal(created.Data, &store); err != nil {
		t.Fatalf("failed to decode store: %v", err)
	}
	storeID := store["id"].(string)

	bad := doJSON(t, client, http.MethodPut, ts.URL+"/api/v1/sales", token, map[string]any{
		"storeId":    storeID,
		"saleDate":   "2026-02-02",
		"currency":   "GBP",
		"channels":   map[string]any{"cash": 1000},
		"cashInTill": 1000,
	})
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported currency, got %d", bad.StatusCode)
	}
	body, _ := io.ReadAll(bad.Body)
	bad.Body.Close()
	if !bytes.Contains(body, []byte("This store does not support GBP")) {
		t.Fatalf("expected unsupported currency message, got %s", body)
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func createStore(t *testing.T, client *http.Client, baseURL, token, name string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/stores", token, map[string]any{
		"name":                name,
		"supportedCurrencies": []string{"EUR", "GBP"},
		"defaultCurrency":     "EUR",
	})
	return idFrom(t, resp, "store")
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, storeID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/employees", token, map[string]any{
		"storeId":       storeID,
		"firstName":     "Journey",
		"lastName":      "Tester",
		"wageType":      "hourly",
		"hourlyRateEur": 15,
	})
	return idFrom(t, resp, "employee")
}

func createDriver(t *testing.T, client *http.Client, baseURL, token, storeID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/drivers", token, map[string]any{
		"storeId": storeID,
		"name":    "Journey Driver",
	})
	return idFrom(t, resp, "driver")
}

func createVendor(t *testing.T, client *http.Client, baseURL, token string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/vendors", token, map[string]any{
		"name": fmt.Sprintf("Vendor %d", time.Now().UnixNano()),
	})
	return idFrom(t, resp, "vendor")
}

func createExpense(t *testing.T, client *http.Client, baseURL, token, storeID, vendorID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/expenses", token, map[string]any{
		"storeId":     storeID,
		"vendorId":    vendorID,
		"amount":      8000,
		"currency":    "EUR",
		"expenseDate": "2026-02-02",
	})
	return idFrom(t, resp, "expense")
}

func idFrom(t *testing.T, resp envelope, what string) string {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode %s response: %v", what, err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatalf("expected %s id", what)
	}
	return id
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, url, token, body)
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	var env envelope
	decodeBody(t, resp, &env)
	return env
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, url, token, body)
	defer resp.Body.Close()
	if resp.StatusCode != want {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(raw))
	}
}

func postJSONRaw(t *testing.T, client *http.Client, url, token string, body any) *http.Response {
	t.Helper()
	return doJSON(t, client, http.MethodPost, url, token, body)
}

func putJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	resp := doJSON(t, client, http.MethodPut, url, token, body)
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	var env envelope
	decodeBody(t, resp, &env)
	return env
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	resp := doJSON(t, client, http.MethodGet, url, token, nil)
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	var env envelope
	decodeBody(t, resp, &env)
	return env
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, env *envelope) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if err := json.Unmarshal(raw, env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
