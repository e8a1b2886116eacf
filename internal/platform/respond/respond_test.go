package respond

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
)

type echoInput struct {
	Body struct {
		Name  string `json:"name"  minLength:"2"`
		Count int    `json:"count" minimum:"1"`
	}
}

type echoOutput struct {
	Body struct {
		Name string `json:"name"`
	}
}

func newTestRouter() *chi.Mux {
	Install()
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.NotFound(NotFoundHandler())
	router.MethodNotAllowed(MethodNotAllowedHandler())

	api := humachi.New(router, huma.DefaultConfig("test", "1.0.0"))
	huma.Register(api, huma.Operation{
		OperationID: "echo",
		Method:      http.MethodPost,
		Path:        "/echo",
	}, func(_ context.Context, in *echoInput) (*echoOutput, error) {
		out := &echoOutput{}
		out.Body.Name = in.Body.Name
		return out, nil
	})
	huma.Register(api, huma.Operation{
		OperationID: "fail",
		Method:      http.MethodGet,
		Path:        "/fail",
	}, func(context.Context, *struct{}) (*struct{}, error) {
		return nil, ValidationFailed(map[string]string{"email": "Invalid email"})
	})
	router.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	return router
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return body
}

func TestValidationFailureBecomesBadRequest(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"a","count":0}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeError(t, rr)
	if body.Status != "BAD_REQUEST" || body.Message != "Validation error" {
		t.Fatalf("unexpected body %+v", body)
	}
	if _, ok := body.Errors["name"]; !ok {
		t.Fatalf("expected name in errors, got %v", body.Errors)
	}
	if _, ok := body.Errors["count"]; !ok {
		t.Fatalf("expected count in errors, got %v", body.Errors)
	}
	if body.Timestamp.IsZero() {
		t.Fatal("expected timestamp")
	}
}

func TestHandlerErrorKeepsFields(t *testing.T) {
	router := newTestRouter()
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if got := decodeError(t, rr).Errors["email"]; got != "Invalid email" {
		t.Fatalf("unexpected email message %q", got)
	}
}

func TestHandlerErrorNegotiatesCBOR(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set("Accept", "application/cbor")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/cbor") {
		t.Fatalf("expected CBOR content type, got %q", ct)
	}
	var body ErrorResponse
	if err := cbor.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode cbor: %v", err)
	}
	if body.Message != "Validation error" || body.Errors["email"] == "" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestNotFound(t *testing.T) {
	router := newTestRouter()
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Status != "NOT_FOUND" {
		t.Fatalf("unexpected status name %q", body.Status)
	}
}

func TestMethodNotAllowedListsMethods(t *testing.T) {
	router := newTestRouter()
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/echo", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); !strings.Contains(allow, http.MethodPost) {
		t.Fatalf("expected POST in Allow, got %q", allow)
	}
	if body := decodeError(t, rr); body.Status != "METHOD_NOT_ALLOWED" {
		t.Fatalf("unexpected status name %q", body.Status)
	}
}

func TestRecovererWritesInternalError(t *testing.T) {
	router := newTestRouter()
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Status != "INTERNAL_SERVER_ERROR" || strings.Contains(body.Message, "boom") {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestRecovererSkipsWriteAfterHeader(t *testing.T) {
	handler := Recoverer()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late")
	}))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected original status, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body.String())
	}
}

func TestRecovererRepanicsAbortHandler(t *testing.T) {
	handler := Recoverer()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler, got %v", rec)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestStatusCodeName(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:           "BAD_REQUEST",
		http.StatusNotFound:             "NOT_FOUND",
		http.StatusRequestURITooLong:    "REQUEST_URI_TOO_LONG",
		http.StatusNonAuthoritativeInfo: "NON_AUTHORITATIVE_INFORMATION",
		599:                             "HTTP_599",
	}
	for status, want := range cases {
		if got := statusCodeName(status); got != want {
			t.Errorf("statusCodeName(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestFieldName(t *testing.T) {
	cases := map[string]string{
		"body.email":     "email",
		"query.fromDate": "fromDate",
		"path.id":        "id",
		"":               "body",
		"other":          "other",
	}
	for in, want := range cases {
		if got := fieldName(in); got != want {
			t.Errorf("fieldName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAcceptsCBOR(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json;q=0.5, Application/CBOR")
	if !acceptsCBOR(req) {
		t.Fatal("expected CBOR to be accepted")
	}
	req.Header.Set("Accept", "application/json")
	if acceptsCBOR(req) {
		t.Fatal("expected JSON only")
	}
}
