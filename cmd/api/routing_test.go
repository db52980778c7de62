package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore/internal/book"
	"bookstore/internal/httpx"
	"bookstore/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func testConfig() config {
	return config{
		CORSOrigins:    []string{"http://localhost:3000"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		MaxBodyBytes:   1 << 20,
		TenantHeader:   "X-Tenant-Id",
	}
}

func newTestServer(t *testing.T, db pinger) (*book.MockRepository, *bytes.Buffer, http.Handler) {
	t.Helper()
	repo := book.NewMockRepository(gomock.NewController(t))
	handler := book.NewHTTPHandler(book.NewService(repo))

	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))

	limiter := httpx.NewRateLimitMiddleware(100, 100)
	t.Cleanup(limiter.Close)
	return repo, &logs, withMiddleware(newRouter(handler, db), testConfig(), log, limiter)
}

func TestV1Routing(t *testing.T) {
	db := &mockPinger{}
	repo, logs, h := newTestServer(t, db)

	t.Run("books list is under /v1", func(t *testing.T) {
		repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, 0, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/books", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("unversioned path is not routed", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("hash route wins over id route", func(t *testing.T) {
		repo.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/books/hash", bytes.NewBufferString(`{}`)))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/v1/books", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("access log carries tenant", func(t *testing.T) {
		repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, 0, nil)
		logs.Reset()

		r := testutil.NewRequestWithTenant(http.MethodGet, "/v1/books", nil, "22222222-2222-2222-2222-222222222222")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		testutil.AssertResponseCode(t, w.Code, http.StatusOK)
		assert.Contains(t, logs.String(), `"tenant_id":"22222222-2222-2222-2222-222222222222"`)
	})

	t.Run("malformed tenant header", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, testutil.NewRequestWithTenant(http.MethodGet, "/v1/books", nil, "acme"))

		resp := testutil.RecordHTTPResponse(w)
		testutil.AssertResponseCode(t, resp.Code, http.StatusBadRequest)
		testutil.AssertResponseBody(t, resp.Body, "success", false)
		assert.Equal(t, "INVALID_TENANT", resp.ErrorCode())
	})

	t.Run("tenant rejection keeps CORS and security headers", func(t *testing.T) {
		r := testutil.NewRequestWithTenant(http.MethodGet, "/v1/books", nil, "acme")
		r.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		testutil.AssertResponseCode(t, w.Code, http.StatusBadRequest)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})
}

func TestHealthEndpoints(t *testing.T) {
	db := &mockPinger{}
	_, _, h := newTestServer(t, db)

	t.Run("healthz", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("readyz ok", func(t *testing.T) {
		db.On("Ping", mock.Anything).Return(nil).Once()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		body, err := io.ReadAll(w.Body)
		require.NoError(t, err)
		assert.Equal(t, "ready", string(body))
	})

	t.Run("readyz db down", func(t *testing.T) {
		db.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	db.AssertExpectations(t)
}
