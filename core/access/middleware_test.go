package access

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func TestBearerMiddleware(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"))

	validToken, err := tokens.Issue(42, "alice")
	if err != nil {
		t.Fatal(err)
	}
	foreignToken, err := NewTokenService([]byte("other-secret")).Issue(42, "alice")
	if err != nil {
		t.Fatal(err)
	}
	expiredTokens := &TokenService{secret: []byte("test-secret"), lifetime: -time.Minute}
	expiredToken, err := expiredTokens.Issue(42, "alice")
	if err != nil {
		t.Fatal(err)
	}

	router := mux.NewRouter()
	router.Use(NewBearerMiddleware(tokens))
	router.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			http.Error(w, "claims missing", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(claims.Username))
	})

	testCases := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"single segment", "Bearer", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusForbidden},
		{"foreign secret", "Bearer " + foreignToken, http.StatusForbidden},
		{"expired token", "Bearer " + expiredToken, http.StatusForbidden},
		{"valid token", "Bearer " + validToken, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			if w.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, w.Code)
			}
			if tc.expectedStatus == http.StatusOK && w.Body.String() != "alice" {
				t.Fatalf("expected claims identity in response, got %q", w.Body.String())
			}
		})
	}
}
