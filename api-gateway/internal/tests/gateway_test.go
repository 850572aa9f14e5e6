package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fastgrab/api-gateway/internal/gateway"
	"fastgrab/api-gateway/internal/mocks"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestGateway_RouteHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantTarget string
	}{
		{name: "catalog", method: http.MethodGet, path: "/api/catalog", wantTarget: "http://order-svc/api/catalog"},
		{name: "catalog_item", method: http.MethodGet, path: "/api/catalog/items/pizza-1", wantTarget: "http://order-svc/api/catalog/items/pizza-1"},
		{name: "cart", method: http.MethodPost, path: "/api/cart/items", wantTarget: "http://order-svc/api/cart/items"},
		{name: "recommendations", method: http.MethodPost, path: "/api/recommendations", wantTarget: "http://order-svc/api/recommendations"},
		{name: "checkout", method: http.MethodPost, path: "/api/checkout/verify", wantTarget: "http://order-svc/api/checkout/verify"},
		{name: "order_qrcode", method: http.MethodGet, path: "/api/orders/abc/qrcode", wantTarget: "http://order-svc/api/orders/abc/qrcode"},
		{name: "admin_orders_with_query", method: http.MethodGet, path: "/api/admin/orders?page=2", wantTarget: "http://admin-svc/api/admin/orders?page=2"},
		{name: "admin_login", method: http.MethodPost, path: "/api/admin/login", wantTarget: "http://admin-svc/api/admin/login"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{
				OrderSvcURL: "http://order-svc",
				AdminSvcURL: "http://admin-svc",
			}, mockClient)

			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.Method == testCase.method && req.URL.String() == testCase.wantTarget
			})).Return(jsonResponse(http.StatusOK, `{"ok":true}`), nil).Once()

			req := httptest.NewRequest(testCase.method, testCase.path, strings.NewReader(`{}`))
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), "ok")
		})
	}
}

func TestGateway_RouteHandler_forwardsHeaders(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{OrderSvcURL: "http://order-svc"}, mockClient)

	resp := jsonResponse(http.StatusCreated, `{}`)
	resp.Header.Set("X-Session-ID", "sess-1")
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("X-Session-ID") == "sess-1"
	})).Return(resp, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/start", nil)
	req.Header.Set("X-Session-ID", "sess-1")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "sess-1", rr.Header().Get("X-Session-ID"))
}

func TestGateway_RouteHandler_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	for _, path := range []string{"/api/unknown", "/api/cartography", "/api/administrators"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()

		gw.RouteHandler(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{
		OrderSvcURL: "http://invalid",
	}, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGateway_websocketUpgrade(t *testing.T) {
	var upgrader websocket.Upgrader
	admin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/live" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"snapshot"}`))
		conn.ReadMessage()
	}))
	defer admin.Close()

	gw := gateway.NewGateway(gateway.Config{AdminSvcURL: admin.URL}, mocks.NewHTTPClient(t))
	front := httptest.NewServer(gw.SetupRoutes())
	defer front.Close()

	wsURL := "ws" + strings.TrimPrefix(front.URL, "http") + "/api/admin/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"snapshot"}`, string(data))
}

func TestGateway_websocketUpgradeBadGateway(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{AdminSvcURL: "http://127.0.0.1:1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/live", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
