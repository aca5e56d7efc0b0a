package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/infrastructure/auth"
)

func authedRequest(t *testing.T, manager *auth.JWTManager, member *domain.Member) *http.Request {
	t.Helper()

	token, err := manager.Generate(member)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/funds", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthMiddlewarePutsMemberInContext(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	req := authedRequest(t, manager, &domain.Member{ID: "m1", Role: domain.RoleManager})
	rr := httptest.NewRecorder()

	Auth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		member, ok := MemberFromContext(r.Context())
		if !ok {
			t.Fatalf("expected member in context")
		}
		if member.ID != "m1" || member.Role != domain.RoleManager {
			t.Fatalf("unexpected member: %+v", member)
		}
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)

	testCases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/funds", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			Auth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatalf("handler should not be called")
			})).ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)

	testCases := []struct {
		name     string
		role     domain.Role
		minRole  domain.Role
		expected int
	}{
		{name: "member blocked from manager routes", role: domain.RoleMember, minRole: domain.RoleManager, expected: http.StatusForbidden},
		{name: "manager passes manager routes", role: domain.RoleManager, minRole: domain.RoleManager, expected: http.StatusOK},
		{name: "manager blocked from admin routes", role: domain.RoleManager, minRole: domain.RoleAdmin, expected: http.StatusForbidden},
		{name: "admin passes everywhere", role: domain.RoleAdmin, minRole: domain.RoleManager, expected: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := authedRequest(t, manager, &domain.Member{ID: "m1", Role: tc.role})
			rr := httptest.NewRecorder()

			handler := Auth(manager)(RequireRole(tc.minRole)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})))
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.expected {
				t.Fatalf("expected %d, got %d", tc.expected, rr.Code)
			}
		})
	}
}
