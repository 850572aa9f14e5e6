package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "fastgrab/admin-svc/internal/api/http"
	"fastgrab/admin-svc/internal/domain"
	"fastgrab/admin-svc/internal/mocks"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminUser     = "admin"
	adminPassword = "s3cret-pass"
)

var (
	testSessionKey = []byte("0123456789abcdef0123456789abcdef")
	testCSRFKey    = []byte("abcdef0123456789abcdef0123456789")
)

func newTestHandler(t *testing.T) (*httpapi.Handler, *mocks.MonitorInterface) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	monitor := mocks.NewMonitorInterface(t)
	auth := httpapi.NewAuth(sessions.NewCookieStore(testSessionKey), adminUser, string(hash), false)
	return httpapi.NewHandler(monitor, auth, httpapi.NewHub([]string{"http://localhost:3000"})), monitor
}

func setupTestRouter(t *testing.T) (*mux.Router, *mocks.MonitorInterface) {
	handler, monitor := newTestHandler(t)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, monitor
}

func login(t *testing.T, router http.Handler) []*http.Cookie {
	t.Helper()
	body := `{"username":"` + adminUser + `","password":"` + adminPassword + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func authedRequest(router http.Handler, cookies []*http.Cookie, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_health(t *testing.T) {
	router, _ := setupTestRouter(t)

	recorder := authedRequest(router, nil, "GET", "/health", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "admin-svc", body["service"])
}

func TestHandler_login(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "success", body: `{"username":"admin","password":"s3cret-pass"}`, wantCode: http.StatusOK},
		{name: "wrong_password", body: `{"username":"admin","password":"nope"}`, wantCode: http.StatusUnauthorized},
		{name: "wrong_user", body: `{"username":"root","password":"s3cret-pass"}`, wantCode: http.StatusUnauthorized},
		{name: "bad_json", body: `{`, wantCode: http.StatusBadRequest},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, _ := setupTestRouter(t)
			recorder := authedRequest(router, nil, "POST", "/api/admin/login", testCase.body)
			assert.Equal(t, testCase.wantCode, recorder.Code)
			if testCase.wantCode == http.StatusOK {
				assert.Contains(t, recorder.Header().Get("Set-Cookie"), "admin-session=")
			}
		})
	}
}

func TestHandler_loginDisabledWithoutHash(t *testing.T) {
	auth := httpapi.NewAuth(sessions.NewCookieStore(testSessionKey), adminUser, "", false)
	handler := httpapi.NewHandler(mocks.NewMonitorInterface(t), auth, httpapi.NewHub([]string{"http://localhost:3000"}))
	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	recorder := authedRequest(r, nil, "POST", "/api/admin/login", `{"username":"admin","password":"x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestHandler_requiresAuthentication(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, path := range []string{"/api/admin/orders", "/api/admin/stats", "/api/admin/orders/export", "/api/admin/live"} {
		recorder := authedRequest(router, nil, "GET", path, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, path)
	}
	recorder := authedRequest(router, nil, "PUT", "/api/admin/pinned", `{"orderId":"o1"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_logout(t *testing.T) {
	router, _ := setupTestRouter(t)
	cookies := login(t, router)

	recorder := authedRequest(router, cookies, "POST", "/api/admin/logout", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	cleared := recorder.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.True(t, cleared[0].MaxAge < 0)

	recorder = authedRequest(router, cleared, "GET", "/api/admin/stats", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_listOrders(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		prepareMocks func(monitor *mocks.MonitorInterface)
		wantCode     int
	}{
		{
			name:  "default_page",
			query: "",
			prepareMocks: func(monitor *mocks.MonitorInterface) {
				monitor.On("Page", mock.Anything, 1, 10).Return(domain.Page{
					Orders: []domain.Order{{OrderID: "o1", TotalAmount: decimal.RequireFromString("9.99")}},
					Page:   1, PageSize: 10, TotalPages: 1, TotalOrders: 1,
				}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:  "explicit_page",
			query: "?page=3&pageSize=5",
			prepareMocks: func(monitor *mocks.MonitorInterface) {
				monitor.On("Page", mock.Anything, 3, 5).Return(domain.Page{Orders: []domain.Order{}, Page: 3, PageSize: 5}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:  "garbage_page_falls_back",
			query: "?page=abc",
			prepareMocks: func(monitor *mocks.MonitorInterface) {
				monitor.On("Page", mock.Anything, 1, 10).Return(domain.Page{Orders: []domain.Order{}, Page: 1, PageSize: 10}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:  "store_error",
			query: "",
			prepareMocks: func(monitor *mocks.MonitorInterface) {
				monitor.On("Page", mock.Anything, 1, 10).Return(domain.Page{}, errors.New("db down")).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, monitor := setupTestRouter(t)
			cookies := login(t, router)
			testCase.prepareMocks(monitor)

			recorder := authedRequest(router, cookies, "GET", "/api/admin/orders"+testCase.query, "")
			assert.Equal(t, testCase.wantCode, recorder.Code)
		})
	}
}

func TestHandler_stats(t *testing.T) {
	router, monitor := setupTestRouter(t)
	cookies := login(t, router)
	monitor.On("Stats", mock.Anything).Return(domain.Stats{
		Total: 3, Pending: 1, Completed: 2, Revenue: decimal.RequireFromString("31.50"),
	}, nil).Once()

	recorder := authedRequest(router, cookies, "GET", "/api/admin/stats", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, float64(3), body["total"])
	assert.Equal(t, 31.5, body["revenue"])
}

func TestHandler_pinning(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		body         string
		prepareMocks func(monitor *mocks.MonitorInterface)
		wantCode     int
	}{
		{
			name:   "pin",
			method: "PUT",
			body:   `{"orderId":"o1"}`,
			prepareMocks: func(monitor *mocks.MonitorInterface) {
				monitor.On("Pin", mock.Anything, "o1").Return(nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:         "pin_missing_id",
			method:       "PUT",
			body:         `{}`,
			prepareMocks: func(monitor *mocks.MonitorInterface) {},
			wantCode:     http.StatusBadRequest,
		},
		{
			name:   "pin_unknown_order",
			method: "PUT",
			body:   `{"orderId":"ghost"}`,
			prepareMocks: func(monitor *mocks.MonitorInterface) {
				monitor.On("Pin", mock.Anything, "ghost").Return(domain.ErrOrderNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "unpin",
			method: "DELETE",
			prepareMocks: func(monitor *mocks.MonitorInterface) {
				monitor.On("Unpin", mock.Anything).Return(nil).Once()
			},
			wantCode: http.StatusNoContent,
		},
		{
			name:   "unpin_error",
			method: "DELETE",
			prepareMocks: func(monitor *mocks.MonitorInterface) {
				monitor.On("Unpin", mock.Anything).Return(errors.New("redis down")).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, monitor := setupTestRouter(t)
			cookies := login(t, router)
			testCase.prepareMocks(monitor)

			recorder := authedRequest(router, cookies, testCase.method, "/api/admin/pinned", testCase.body)
			assert.Equal(t, testCase.wantCode, recorder.Code)
		})
	}
}

func TestHandler_export(t *testing.T) {
	router, monitor := setupTestRouter(t)
	cookies := login(t, router)
	monitor.On("AllOrders", mock.Anything).Return([]domain.Order{
		makeOrder("o1", domain.StatusCompleted, "12.00", time.Now()),
	}, nil).Once()

	recorder := authedRequest(router, cookies, "GET", "/api/admin/orders/export", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "attachment; filename=orders_")
	assert.True(t, bytes.HasPrefix(recorder.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")
}

func TestRouter_csrfProtection(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		CSRFKey:        testCSRFKey,
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	body := `{"username":"admin","password":"s3cret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	tokenReq := httptest.NewRequest(http.MethodGet, "/api/admin/csrf", nil)
	tokenRecorder := httptest.NewRecorder()
	router.ServeHTTP(tokenRecorder, tokenReq)
	require.Equal(t, http.StatusOK, tokenRecorder.Code)
	token := tokenRecorder.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, token)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	req.Header.Set("X-CSRF-Token", token)
	for _, c := range tokenRecorder.Result().Cookies() {
		req.AddCookie(c)
	}
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHub_liveUpdates(t *testing.T) {
	handler, monitor := newTestHandler(t)
	monitor.On("Stats", mock.Anything).Return(domain.Stats{Total: 4, Revenue: decimal.Zero}, nil).Once()

	r := mux.NewRouter()
	r.Use(httpapi.LoggingMiddleware)
	handler.RegisterRoutes(r)
	server := httptest.NewServer(r)
	defer server.Close()

	cookies := login(t, r)
	header := http.Header{}
	for _, c := range cookies {
		header.Add("Cookie", c.Name+"="+c.Value)
	}

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/admin/live"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	var initial domain.Update
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, 4, initial.Stats.Total)
	assert.False(t, initial.Alert)

	require.Eventually(t, func() bool { return handler.Hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	handler.Hub.Broadcast(domain.Update{Type: "snapshot", NewOrderIDs: []string{"o9"}, Alert: true})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var pushed domain.Update
	require.NoError(t, conn.ReadJSON(&pushed))
	assert.True(t, pushed.Alert)
	assert.Equal(t, []string{"o9"}, pushed.NewOrderIDs)

	conn.Close()
	require.Eventually(t, func() bool { return handler.Hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_checksOrigin(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		wantStatus int
	}{
		{name: "no_origin", wantStatus: http.StatusSwitchingProtocols},
		{name: "allowed_origin", origin: "http://localhost:3000", wantStatus: http.StatusSwitchingProtocols},
		{name: "allowed_origin_other_case", origin: "HTTP://LOCALHOST:3000", wantStatus: http.StatusSwitchingProtocols},
		{name: "foreign_origin", origin: "http://evil.example", wantStatus: http.StatusForbidden},
		{name: "allowed_host_other_port", origin: "http://localhost:4000", wantStatus: http.StatusForbidden},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			handler, monitor := newTestHandler(t)
			monitor.On("Stats", mock.Anything).Return(domain.Stats{Revenue: decimal.Zero}, nil).Once()

			r := mux.NewRouter()
			handler.RegisterRoutes(r)
			server := httptest.NewServer(r)
			defer server.Close()

			header := http.Header{}
			for _, c := range login(t, r) {
				header.Add("Cookie", c.Name+"="+c.Value)
			}
			if testCase.origin != "" {
				header.Set("Origin", testCase.origin)
			}

			wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/admin/live"
			conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
			require.NotNil(t, resp)
			assert.Equal(t, testCase.wantStatus, resp.StatusCode)
			if testCase.wantStatus != http.StatusSwitchingProtocols {
				assert.ErrorIs(t, err, websocket.ErrBadHandshake)
				assert.Equal(t, 0, handler.Hub.Clients())
				return
			}
			require.NoError(t, err)
			defer conn.Close()

			var initial domain.Update
			require.NoError(t, conn.ReadJSON(&initial))
			assert.Equal(t, "snapshot", initial.Type)
		})
	}
}

func TestHub_acceptsSameHostOrigin(t *testing.T) {
	handler, monitor := newTestHandler(t)
	monitor.On("Stats", mock.Anything).Return(domain.Stats{Revenue: decimal.Zero}, nil).Once()

	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	server := httptest.NewServer(r)
	defer server.Close()

	header := http.Header{}
	for _, c := range login(t, r) {
		header.Add("Cookie", c.Name+"="+c.Value)
	}
	header.Set("Origin", server.URL)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/admin/live"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
}
