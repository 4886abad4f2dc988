package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/digibank/ledger-service/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	var gotActor domain.Actor
	var actorFound bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, actorFound = GetActor(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(testSecret)(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUserID uuid.UUID
		wantRole   string
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			authHeader: "Basic abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong signing secret",
			authHeader: "Bearer " + signToken(t, "other-secret", jwt.MapClaims{
				"sub": userID.String(),
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			authHeader: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": userID.String(),
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "subject is not a uuid",
			authHeader: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": "user-42",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "valid token without role",
			authHeader: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": userID.String(),
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusOK,
			wantUserID: userID,
		},
		{
			name: "valid token with admin role",
			authHeader: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub":  userID.String(),
				"role": domain.RoleAdmin,
				"exp":  time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusOK,
			wantUserID: userID,
			wantRole:   domain.RoleAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotActor = domain.Actor{}
			actorFound = false

			req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status=%d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			if !actorFound {
				t.Fatal("expected actor on the request context")
			}
			if gotActor.UserID != tt.wantUserID {
				t.Fatalf("expected user %v, got %v", tt.wantUserID, gotActor.UserID)
			}
			if gotActor.Role != tt.wantRole {
				t.Fatalf("expected role %q, got %q", tt.wantRole, gotActor.Role)
			}
			if tt.wantRole == domain.RoleAdmin && !gotActor.IsAdmin() {
				t.Fatal("expected admin capability")
			}
		})
	}
}
