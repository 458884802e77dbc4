package shared

import (
	"log"
	"net"
	"net/http"
	"strings"

	"storeops/internal/domain/audit"
	"storeops/internal/transport/http/middleware"
)

// ClientIP resolves the caller address, preferring the first
// X-Forwarded-For hop when a reverse proxy sits in front.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Audit records a mutation attributed to the authenticated caller. A failed
// insert is logged, never surfaced: the mutation itself already succeeded.
func Audit(r *http.Request, svc *audit.Service, action, entityType, entityID string, before, after any) {
	if svc == nil {
		return
	}
	var actorID string
	if user, ok := middleware.GetUser(r.Context()); ok {
		actorID = user.UserID
	}
	if err := svc.Record(r.Context(), actorID, action, entityType, entityID,
		middleware.GetRequestID(r.Context()), ClientIP(r), before, after); err != nil {
		log.Printf("audit %s failed: %v", action, err)
	}
}
