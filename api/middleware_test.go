package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"streamhaven/internal/auth"
)

type stubValidator struct {
	claims *auth.Claims
	err    error
}

func (s *stubValidator) Validate(token string) (*auth.Claims, error) {
	return s.claims, s.err
}

func protectedEcho(t *testing.T, validator TokenValidator) http.Handler {
	t.Helper()
	mw := AccountAuthMiddleware(validator)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetAccountID(r)))
	}))
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	handler := protectedEcho(t, &stubValidator{})

	req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	handler := protectedEcho(t, &stubValidator{err: errors.New("bad signature")})

	req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareInjectsSession(t *testing.T) {
	handler := protectedEcho(t, &stubValidator{claims: &auth.Claims{
		AccountID: "acct-42",
		Email:     "user@example.com",
		Username:  "user",
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "acct-42" {
		t.Fatalf("expected account id in context, got %q", rec.Body.String())
	}
}

func TestAuthMiddlewareAcceptsQueryToken(t *testing.T) {
	handler := protectedEcho(t, &stubValidator{claims: &auth.Claims{AccountID: "acct-1"}})

	req := httptest.NewRequest(http.MethodGet, "/api/embed/movie/550?token=valid", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddlewarePassesOptions(t *testing.T) {
	handler := protectedEcho(t, &stubValidator{err: errors.New("never called")})

	req := httptest.NewRequest(http.MethodOptions, "/api/watchlist", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("CORS preflight must pass through, got %d", rec.Code)
	}
}
