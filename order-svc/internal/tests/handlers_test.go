package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "fastgrab/order-svc/internal/api/http"
	"fastgrab/order-svc/internal/catalog"
	"fastgrab/order-svc/internal/domain"
	"fastgrab/order-svc/internal/mocks"
	"fastgrab/order-svc/internal/service"
	"fastgrab/order-svc/internal/validation"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type handlerMocks struct {
	checkout    *mocks.CheckoutServiceInterface
	orders      *mocks.OrderServiceInterface
	recommender *mocks.RecommendationServiceInterface
}

func setupTestRouter(t *testing.T) (*mux.Router, handlerMocks) {
	m := handlerMocks{
		checkout:    mocks.NewCheckoutServiceInterface(t),
		orders:      mocks.NewOrderServiceInterface(t),
		recommender: mocks.NewRecommendationServiceInterface(t),
	}
	handler := httpapi.NewHandler(catalog.Default(), m.checkout, m.orders, m.recommender)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, m
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("X-Session-ID", session)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_catalog(t *testing.T) {
	router, _ := setupTestRouter(t)

	recorder := doRequest(router, "GET", "/api/catalog?category=drinks", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Categories []domain.FoodCategory `json:"categories"`
		Items      []domain.FoodItem     `json:"items"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Len(t, body.Categories, 4)
	assert.Len(t, body.Items, 4)

	recorder = doRequest(router, "GET", "/api/catalog/items/pizza-1", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"price":10.99`)

	recorder = doRequest(router, "GET", "/api/catalog/items/nope", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_addToCart(t *testing.T) {
	router, m := setupTestRouter(t)

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			payload: `{"itemId":"pizza-1","quantity":2}`,
			prepareMocks: func() {
				m.checkout.On("AddToCart", mock.Anything, session, service.AddToCartRequest{ItemID: "pizza-1", Quantity: 2}).
					Return(service.CartView{ItemCount: 2, Total: decimal.RequireFromString("21.98")}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"total":21.98`,
		},
		{
			name:         "invalid_json",
			payload:      `bad json`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing_item",
			payload:      `{"quantity":1}`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "unknown_item",
			payload: `{"itemId":"nope"}`,
			prepareMocks: func() {
				m.checkout.On("AddToCart", mock.Anything, session, mock.Anything).
					Return(service.CartView{}, catalog.ErrItemNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "bad_flavor",
			payload: `{"itemId":"drink-1","flavor":"Smoky BBQ"}`,
			prepareMocks: func() {
				m.checkout.On("AddToCart", mock.Anything, session, mock.Anything).
					Return(service.CartView{}, service.ErrInvalidFlavor).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			recorder := doRequest(router, "POST", "/api/cart/items", testCase.payload)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_updateCartItem(t *testing.T) {
	router, m := setupTestRouter(t)

	m.checkout.On("UpdateQuantity", mock.Anything, session, "pizza-1-Pesto Swirl", 0).
		Return(service.CartView{}, nil).Once()
	recorder := doRequest(router, "PUT", "/api/cart/items/pizza-1-Pesto%20Swirl", `{"quantity":0}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, "PUT", "/api/cart/items/pizza-1", `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	m.checkout.On("UpdateQuantity", mock.Anything, session, "soup-1", 1).
		Return(service.CartView{}, service.ErrLineNotFound).Once()
	recorder = doRequest(router, "PUT", "/api/cart/items/soup-1", `{"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	m.checkout.On("RemoveFromCart", mock.Anything, session, "soup-1").Return(service.CartView{}, nil).Once()
	recorder = doRequest(router, "DELETE", "/api/cart/items/soup-1", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	m.checkout.On("ClearCart", mock.Anything, session).Return(service.CartView{}, nil).Once()
	recorder = doRequest(router, "DELETE", "/api/cart", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_checkoutErrors(t *testing.T) {
	router, m := setupTestRouter(t)

	tests := []struct {
		name         string
		method       string
		path         string
		payload      string
		prepareMocks func()
		expectedCode int
		expectedBody string
	}{
		{
			name:   "begin_empty_cart",
			method: "POST", path: "/api/checkout/start",
			prepareMocks: func() {
				m.checkout.On("Begin", mock.Anything, session).
					Return(service.Snapshot{State: service.StateBuilding}, service.ErrEmptyCart).Once()
			},
			expectedCode: http.StatusConflict,
			expectedBody: `"redirect":"/"`,
		},
		{
			name:   "shipping_invalid",
			method: "PUT", path: "/api/checkout/shipping",
			payload: `{"name":"J"}`,
			prepareMocks: func() {
				m.checkout.On("SubmitShipping", mock.Anything, session, domain.UserDetails{Name: "J"}).
					Return(service.Snapshot{State: service.StateAwaitingShippingInfo}, validation.Errors{"name": "Name must be at least 2 characters."}).Once()
			},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: `"name":"Name must be at least 2 characters."`,
		},
		{
			name:   "payment_store_down",
			method: "POST", path: "/api/checkout/payment",
			payload: `{"cardName":"Jane Doe","cardNumber":"4111 1111 1111 1111","expiryDate":"12/29","cvv":"123"}`,
			prepareMocks: func() {
				m.checkout.On("SubmitPayment", mock.Anything, session, mock.AnythingOfType("domain.PaymentDetails")).
					Return(service.Snapshot{State: service.StateSubmitting}, fmt.Errorf("%w: %w", service.ErrStoreWrite, assert.AnError)).Once()
			},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `"retryable":true`,
		},
		{
			name:   "verify_bad_code",
			method: "POST", path: "/api/checkout/verify",
			payload: `{"code":"12ab56"}`,
			prepareMocks: func() {
				m.checkout.On("Verify", mock.Anything, session, "12ab56").
					Return(service.Snapshot{State: service.StateAwaitingVerification}, service.ErrInvalidCode).Once()
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `"state":"awaiting_verification"`,
		},
		{
			name:   "verify_context_lost",
			method: "POST", path: "/api/checkout/verify",
			payload: `{"code":"123456"}`,
			prepareMocks: func() {
				m.checkout.On("Verify", mock.Anything, session, "123456").
					Return(service.Snapshot{State: service.StateAborted}, service.ErrContextLost).Once()
			},
			expectedCode: http.StatusGone,
			expectedBody: `"state":"aborted"`,
		},
		{
			name:   "cancel_in_progress",
			method: "POST", path: "/api/checkout/cancel",
			prepareMocks: func() {
				m.checkout.On("Cancel", mock.Anything, session).
					Return(service.Snapshot{State: service.StateSubmitting, Processing: true}, service.ErrInProgress).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:   "last_order_missing",
			method: "GET", path: "/api/checkout/last-order",
			prepareMocks: func() {
				m.checkout.On("LastOrder", mock.Anything, session).Return(nil, domain.ErrOrderNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			recorder := doRequest(router, testCase.method, testCase.path, testCase.payload)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_verifySuccess(t *testing.T) {
	router, m := setupTestRouter(t)

	m.checkout.On("Verify", mock.Anything, session, "123456").Return(service.Snapshot{
		State:     service.StateCompleted,
		LastOrder: &domain.Order{OrderID: "order-1", Status: domain.StatusCompleted},
	}, nil).Once()

	recorder := doRequest(router, "POST", "/api/checkout/verify", `{"code":"123456"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var snapshot service.Snapshot
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&snapshot))
	assert.Equal(t, service.StateCompleted, snapshot.State)
	assert.Equal(t, "order-1", snapshot.LastOrder.OrderID)
}

func TestHandler_orders(t *testing.T) {
	router, m := setupTestRouter(t)

	m.orders.On("Get", mock.Anything, "order-1").
		Return(&domain.Order{OrderID: "order-1", Status: domain.StatusCompleted, OTP: "123456"}, nil).Once()
	recorder := doRequest(router, "GET", "/api/orders/order-1", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "123456")

	m.orders.On("QRCode", mock.Anything, "order-1").Return([]byte("\x89PNG"), nil).Once()
	recorder = doRequest(router, "GET", "/api/orders/order-1/qrcode", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))

	m.orders.On("QRCode", mock.Anything, "missing").Return(nil, domain.ErrOrderNotFound).Once()
	recorder = doRequest(router, "GET", "/api/orders/missing/qrcode", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_recommendations(t *testing.T) {
	router, m := setupTestRouter(t)

	m.recommender.On("Recommend", mock.Anything, []string{"Golden Fries"}, []string(nil)).
		Return([]string{"Sparkling Cola"}).Once()
	recorder := doRequest(router, "POST", "/api/recommendations", `{"selectedItems":["Golden Fries"]}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"recommendations":["Sparkling Cola"]}`, recorder.Body.String())

	m.checkout.On("CartRecommendations", mock.Anything, session).Return([]string{}, nil).Once()
	recorder = doRequest(router, "GET", "/api/cart/recommendations", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"recommendations":[]}`, recorder.Body.String())
}

func TestHandler_issuesSessionCookie(t *testing.T) {
	router, m := setupTestRouter(t)

	var issued string
	m.checkout.On("Cart", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { issued = args.String(1) }).
		Return(service.CartView{}, nil).Once()

	req := httptest.NewRequest("GET", "/api/cart", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotEmpty(t, issued)
	assert.Equal(t, issued, recorder.Header().Get("X-Session-ID"))
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "fastgrab_session", cookies[0].Name)
	assert.Equal(t, issued, cookies[0].Value)
}

func TestHandler_healthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)
	recorder := doRequest(router, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"service":"order-svc"`)
}
