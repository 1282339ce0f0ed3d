package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-sync-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/ads-sync-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func okHandler(t *testing.T, wantClaims bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := ClaimsFromContext(r.Context())
		assert.Equal(t, wantClaims, ok)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		header     string
		setup      func(m *mocks.MockAuthenticator)
		wantStatus int
	}{
		{
			name:       "Healthcheck é público",
			path:       "/healthcheck",
			setup:      func(m *mocks.MockAuthenticator) {},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "Sem header",
			path:       "/v1/sync-runs/1",
			setup:      func(m *mocks.MockAuthenticator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Header sem Bearer",
			path:       "/v1/sync-runs/1",
			header:     "Token abc",
			setup:      func(m *mocks.MockAuthenticator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Token expirado",
			path:   "/v1/sync-runs/1",
			header: "Bearer abc",
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateToken("abc").
					Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Token válido",
			path:   "/v1/sync-runs/1",
			header: "Bearer abc",
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateToken("abc").Return(&domain.Claims{UserID: 1, UserRoleID: RoleAdmin}, nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "Erro inesperado na validação",
			path:   "/v1/sync-runs/1",
			header: "Bearer abc",
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateToken("abc").Return(nil, errors.New("boom"))
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			wantClaims := tt.wantStatus == http.StatusNoContent && tt.path != "/healthcheck"
			AuthMiddleware(auth)(okHandler(t, wantClaims)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		middleware func(http.Handler) http.Handler
		wantStatus int
	}{
		{name: "Admin em rota de admin", claims: &domain.Claims{UserRoleID: RoleAdmin}, middleware: AdminOnly(), wantStatus: http.StatusNoContent},
		{name: "Cliente em rota de admin", claims: &domain.Claims{UserRoleID: RoleClient}, middleware: AdminOnly(), wantStatus: http.StatusForbidden},
		{name: "Supervisor em rota de supervisor", claims: &domain.Claims{UserRoleID: RoleSupervisor}, middleware: AdminOrSupervisor(), wantStatus: http.StatusNoContent},
		{name: "Sem claims", claims: nil, middleware: AllRoles(), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			tt.middleware(okHandler(t, tt.claims != nil)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestWorkspaceAccess(t *testing.T) {
	router := httprouter.New()
	router.Handler(http.MethodGet, "/v1/workspaces/:workspace_id", WorkspaceAccess()(okHandler(t, true)))

	client := &domain.Claims{UserID: 3, UserRoleID: RoleClient, WorkspaceIDs: []string{"ws-1"}}

	tests := []struct {
		path       string
		claims     *domain.Claims
		wantStatus int
	}{
		{path: "/v1/workspaces/ws-1", claims: client, wantStatus: http.StatusNoContent},
		{path: "/v1/workspaces/ws-2", claims: client, wantStatus: http.StatusForbidden},
		{path: "/v1/workspaces/ws-2", claims: &domain.Claims{UserRoleID: RoleAdmin}, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req = req.WithContext(WithClaims(req.Context(), tt.claims))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, tt.wantStatus, rec.Code, tt.path)
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler(t, false))

	req := httptest.NewRequest(http.MethodOptions, "/v1/sync-runs/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/sync-runs/1", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware_SetsCorrelationHeader(t *testing.T) {
	handler := LoggingMiddleware()(okHandler(t, false))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.NotEmpty(t, rec.Header().Get(CorrelationIDHeader))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
