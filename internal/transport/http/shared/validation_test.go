package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestValidatorPassesCleanPayload(t *testing.T) {
	v := NewValidator()
	v.Required("name", "Main Street", "name is required")
	v.Enum("status", "Active", []string{"active", "inactive"}, "status must be active or inactive")

	w := httptest.NewRecorder()
	if v.Reject(w, "req-1") {
		t.Fatalf("expected no rejection, got %s", w.Body.String())
	}
}

func TestValidatorRejectSortsIssuesByField(t *testing.T) {
	v := NewValidator()
	v.Required("storeId", "", "storeId is required")
	v.Required("employeeId", "", "employeeId is required")

	w := httptest.NewRecorder()
	if !v.Reject(w, "req-1") {
		t.Fatal("expected rejection")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Index(body, "employeeId") > strings.Index(body, "storeId") {
		t.Fatalf("expected issues sorted by field: %s", body)
	}
}

func TestValidatorDateOrder(t *testing.T) {
	v := NewValidator()
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	v.DateOrder("from", from, "to", to)

	w := httptest.NewRecorder()
	if !v.Reject(w, "req-1") {
		t.Fatal("expected rejection for backwards period")
	}

	v = NewValidator()
	v.DateOrder("from", time.Time{}, "to", to)
	if v.Reject(httptest.NewRecorder(), "req-1") {
		t.Fatal("open-ended period must pass")
	}
}
