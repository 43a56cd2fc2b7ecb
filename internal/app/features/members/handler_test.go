package members_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/convenehq/convene/internal/app/features/members"
	"github.com/convenehq/convene/internal/domain/models"
	"github.com/convenehq/convene/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := members.NewHandler(db, zap.NewNop())

	req := testutil.JSONRequest(t, "POST", "/members", map[string]any{
		"name":  "Ada",
		"email": "Ada@Example.com",
	})
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created models.Member
	testutil.DecodeJSON(t, rec, &created)
	if created.Name != "Ada" {
		t.Errorf("name: got %q", created.Name)
	}
	if created.Email != "ada@example.com" {
		t.Errorf("email: got %q, want lowercased", created.Email)
	}
	if created.MemberGroups == nil || len(created.MemberGroups) != 0 {
		t.Errorf("memberGroups: got %v, want empty list", created.MemberGroups)
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := members.NewHandler(db, zap.NewNop())

	req := testutil.JSONRequest(t, "POST", "/members", map[string]any{
		"name":  "",
		"email": "not-an-email",
	})
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var body map[string]struct {
		Param    string `json:"param"`
		Message  string `json:"message"`
		Location string `json:"location"`
	}
	testutil.DecodeJSON(t, rec, &body)

	if _, ok := body["name"]; !ok {
		t.Error("expected a name field error")
	}
	if fe, ok := body["email"]; !ok {
		t.Error("expected an email field error")
	} else if fe.Location != "body" {
		t.Errorf("email location: got %q, want %q", fe.Location, "body")
	}
}

func TestCreate_MarkupOnlyName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := members.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.JSONRequest(t, "POST", "/members", map[string]any{
		"name":  "<br/>",
		"email": "markup@test.com",
	})
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	// Sanitizing strips the markup to nothing, so the non-empty name
	// rule must reject it.
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}

	var body map[string]struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if _, ok := body["name"]; !ok {
		t.Errorf("expected a name field error, got %v", body)
	}

	n, err := db.Collection("members").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no members persisted, found %d", n)
	}
}

func TestGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	handler := members.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Ada", "ada@example.com")

	req := httptest.NewRequest("GET", "/members/"+member.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", member.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		MemberGroups []any  `json:"memberGroups"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if body.ID != member.ID.Hex() {
		t.Errorf("id: got %q, want %q", body.ID, member.ID.Hex())
	}
	if body.MemberGroups == nil {
		t.Error("memberGroups: expected empty list, got null")
	}
}

func TestGet_BadID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := members.NewHandler(db, zap.NewNop())

	req := httptest.NewRequest("GET", "/members/not-an-id", nil)
	req = testutil.WithChiURLParam(req, "id", "not-an-id")
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGet_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := members.NewHandler(db, zap.NewNop())

	missing := "65f000000000000000000000"
	req := httptest.NewRequest("GET", "/members/"+missing, nil)
	req = testutil.WithChiURLParam(req, "id", missing)
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}

	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &body)
	want := "No member found for " + missing
	if body.Message != want {
		t.Errorf("message: got %q, want %q", body.Message, want)
	}
}
