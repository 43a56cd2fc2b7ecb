package apierr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/convenehq/convene/internal/app/system/apierr"
	"github.com/convenehq/convene/internal/app/system/requestlog"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrite_Validation(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/members", nil)
	err := &apierr.ValidationError{Fields: []apierr.FieldError{
		{Param: "name", Message: "Name must not be empty.", Location: "body"},
		{Param: "email", Message: "A valid email address is required.", Location: "body"},
	}}

	apierr.Write(rec, req, zap.NewNop(), err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var body map[string]apierr.FieldError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(body) != 2 {
		t.Errorf("field count: got %d, want 2", len(body))
	}
	if body["name"].Message != "Name must not be empty." {
		t.Errorf("name message: got %q", body["name"].Message)
	}
	if body["email"].Param != "email" {
		t.Errorf("email param: got %q", body["email"].Param)
	}
}

func TestWrite_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events/507f1f77bcf86cd799439011", nil)

	apierr.Write(rec, req, zap.NewNop(), apierr.NotFound("event", "507f1f77bcf86cd799439011"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Status != http.StatusNotFound {
		t.Errorf("body status: got %d, want 404", body.Status)
	}
	want := "No event found for 507f1f77bcf86cd799439011"
	if body.Message != want {
		t.Errorf("message: got %q, want %q", body.Message, want)
	}
}

func TestWrite_StoreFailureIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/members", nil)

	apierr.Write(rec, req, zap.NewNop(), errors.New("connection reset by mongod at 10.0.0.3"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Message != "An internal error occurred." {
		t.Errorf("internal detail leaked: %q", body.Message)
	}
}

func TestWrite_StoreFailureLogsRequestID(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	log := zap.New(core)

	handler := requestlog.Middleware(zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apierr.Write(w, r, log, errors.New("write conflict"))
		}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/groups", nil)
	req.Header.Set(requestlog.HeaderName, "req-42")
	handler.ServeHTTP(rec, req)

	entries := logs.FilterMessage("request failed").All()
	if len(entries) != 1 {
		t.Fatalf("log entries: got %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if got := fields["request_id"]; got != "req-42" {
		t.Errorf("request_id: got %v, want %q", got, "req-42")
	}
}

func TestNotFoundError_Message(t *testing.T) {
	err := apierr.NotFound("member", "abc123")
	if err.Error() != "No member found for abc123" {
		t.Errorf("got %q", err.Error())
	}
}
