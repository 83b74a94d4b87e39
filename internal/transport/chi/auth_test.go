package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// subjectHandler writes the caller subject, or "anonymous".
func subjectHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, ok := SubjectFromContext(r.Context())
		if !ok {
			sub = "anonymous"
		}
		_, _ = w.Write([]byte(sub))
	})
}

func signToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// --- API key ---

func TestAPIKeyMiddleware_EmptyKeys_PassThrough(t *testing.T) {
	for _, keys := range [][]string{nil, {"", ""}} {
		handler := APIKeyMiddleware(keys)(okHandler())

		req := httptest.NewRequest("GET", "/api/search", http.NoBody)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("keys %q: got %d, want %d", keys, rr.Code, http.StatusOK)
		}
	}
}

func TestAPIKeyMiddleware_MissingHeader_401(t *testing.T) {
	handler := APIKeyMiddleware([]string{"secret"})(okHandler())

	req := httptest.NewRequest("GET", "/api/search", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != kindUnauthorized || errResp.Success {
		t.Errorf("error response: got %+v", errResp)
	}
}

func TestAPIKeyMiddleware_InvalidKey_401(t *testing.T) {
	handler := APIKeyMiddleware([]string{"secret"})(okHandler())

	req := httptest.NewRequest("GET", "/api/search", http.NoBody)
	req.Header.Set(apiKeyHeader, "wrong-key")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("invalid key: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAPIKeyMiddleware_MultipleKeys(t *testing.T) {
	handler := APIKeyMiddleware([]string{"key1", "", "key2"})(okHandler())

	for _, key := range []string{"key1", "key2"} {
		req := httptest.NewRequest("GET", "/api/search", http.NoBody)
		req.Header.Set(apiKeyHeader, key)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("key %s: got %d, want %d", key, rr.Code, http.StatusOK)
		}
	}
}

func TestAPIKeyMiddleware_ExemptPaths(t *testing.T) {
	handler := APIKeyMiddleware([]string{"secret"})(okHandler())

	for _, path := range []string{"/health", "/metrics"} {
		req := httptest.NewRequest("GET", path, http.NoBody)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("exempt path %s: got %d, want %d", path, rr.Code, http.StatusOK)
		}
	}
}

// --- Identity ---

func TestOptionalIdentity(t *testing.T) {
	const secret = "jwt-secret"
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name   string
		issuer string
		header string
		want   string
	}{
		{"no header", "", "", "anonymous"},
		{"valid token", "",
			"Bearer " + signToken(t, secret, jwt.RegisteredClaims{Subject: "user-42", ExpiresAt: future}),
			"user-42"},
		{"wrong secret", "",
			"Bearer " + signToken(t, "other", jwt.RegisteredClaims{Subject: "user-42"}),
			"anonymous"},
		{"expired", "",
			"Bearer " + signToken(t, secret, jwt.RegisteredClaims{Subject: "user-42", ExpiresAt: past}),
			"anonymous"},
		{"no subject", "",
			"Bearer " + signToken(t, secret, jwt.RegisteredClaims{ExpiresAt: future}),
			"anonymous"},
		{"garbage", "", "Bearer not.a.jwt", "anonymous"},
		{"basic scheme", "", "Basic dXNlcjpwYXNz", "anonymous"},
		{"issuer match", "placedex",
			"Bearer " + signToken(t, secret, jwt.RegisteredClaims{Subject: "u1", Issuer: "placedex"}),
			"u1"},
		{"issuer mismatch", "placedex",
			"Bearer " + signToken(t, secret, jwt.RegisteredClaims{Subject: "u1", Issuer: "elsewhere"}),
			"anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := OptionalIdentity(secret, tt.issuer)(subjectHandler())

			req := httptest.NewRequest("GET", "/api/search", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
			}
			if got := rr.Body.String(); got != tt.want {
				t.Errorf("subject: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptionalIdentity_NoneAlgorithmRejected(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "root"})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	handler := OptionalIdentity("jwt-secret", "")(subjectHandler())
	req := httptest.NewRequest("GET", "/api/search", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+raw)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Body.String(); got != "anonymous" {
		t.Errorf("subject: got %q, want anonymous", got)
	}
}

func TestOptionalIdentity_DisabledWithoutSecret(t *testing.T) {
	handler := OptionalIdentity("", "")(subjectHandler())

	req := httptest.NewRequest("GET", "/api/search", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "x", jwt.RegisteredClaims{Subject: "u"}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Body.String(); got != "anonymous" {
		t.Errorf("subject: got %q, want anonymous", got)
	}
}
