package requestlog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/convenehq/convene/internal/app/system/requestlog"
	"go.uber.org/zap"
)

func TestMiddleware_AssignsID(t *testing.T) {
	var seenID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = requestlog.ID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	handler := requestlog.Middleware(zap.NewNop())(inner)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seenID == "" {
		t.Error("expected a request id in the handler context")
	}
	if got := rec.Header().Get(requestlog.HeaderName); got != seenID {
		t.Errorf("response header: got %q, want %q", got, seenID)
	}
}

func TestMiddleware_HonorsInboundID(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := requestlog.Middleware(zap.NewNop())(inner)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(requestlog.HeaderName, "proxy-assigned")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestlog.HeaderName); got != "proxy-assigned" {
		t.Errorf("response header: got %q, want %q", got, "proxy-assigned")
	}
}
