package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fastgrab/order-svc/internal/catalog"
	"fastgrab/order-svc/internal/domain"
	"fastgrab/order-svc/internal/service"
	"fastgrab/order-svc/internal/validation"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "fastgrab_session"
)

type Handler struct {
	Catalog     *catalog.Provider
	Checkout    service.CheckoutServiceInterface
	Orders      service.OrderServiceInterface
	Recommender service.RecommendationServiceInterface
}

func NewHandler(menu *catalog.Provider, checkoutSvc service.CheckoutServiceInterface, orderSvc service.OrderServiceInterface, recommender service.RecommendationServiceInterface) *Handler {
	return &Handler{
		Catalog:     menu,
		Checkout:    checkoutSvc,
		Orders:      orderSvc,
		Recommender: recommender,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/catalog", h.getCatalog).Methods("GET")
	r.HandleFunc("/api/catalog/items/{id}", h.getCatalogItem).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addToCart).Methods("POST")
	r.HandleFunc("/api/cart/items/{key}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/cart/items/{key}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/cart/recommendations", h.getCartRecommendations).Methods("GET")
	r.HandleFunc("/api/recommendations", h.recommend).Methods("POST")

	r.HandleFunc("/api/checkout", h.getCheckout).Methods("GET")
	r.HandleFunc("/api/checkout/start", h.beginCheckout).Methods("POST")
	r.HandleFunc("/api/checkout/shipping", h.submitShipping).Methods("PUT")
	r.HandleFunc("/api/checkout/payment", h.submitPayment).Methods("POST")
	r.HandleFunc("/api/checkout/verify", h.verify).Methods("POST")
	r.HandleFunc("/api/checkout/cancel", h.cancel).Methods("POST")
	r.HandleFunc("/api/checkout/reset", h.reset).Methods("POST")
	r.HandleFunc("/api/checkout/last-order", h.getLastOrder).Methods("GET")

	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	items := h.Catalog.Items()
	if category := r.URL.Query().Get("category"); category != "" {
		items = h.Catalog.ItemsByCategory(category)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.Catalog.Categories(),
		"items":      items,
	})
}

func (h *Handler) getCatalogItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Catalog.Item(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.Checkout.Cart(r.Context(), sessionID(w, r))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.Checkout.ClearCart(r.Context(), sessionID(w, r))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req service.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ItemID == "" {
		http.Error(w, "itemId is required", http.StatusBadRequest)
		return
	}
	view, err := h.Checkout.AddToCart(r.Context(), sessionID(w, r), req)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Quantity == nil {
		http.Error(w, "quantity is required", http.StatusBadRequest)
		return
	}
	view, err := h.Checkout.UpdateQuantity(r.Context(), sessionID(w, r), mux.Vars(r)["key"], *body.Quantity)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.Checkout.RemoveFromCart(r.Context(), sessionID(w, r), mux.Vars(r)["key"])
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) getCartRecommendations(w http.ResponseWriter, r *http.Request) {
	names, err := h.Checkout.CartRecommendations(r.Context(), sessionID(w, r))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, service.RecommendationResponse{Recommendations: names})
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request) {
	var req service.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	names := h.Recommender.Recommend(r.Context(), req.SelectedItems, req.AvailableItems)
	writeJSON(w, http.StatusOK, service.RecommendationResponse{Recommendations: names})
}

func (h *Handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Checkout.Status(r.Context(), sessionID(w, r))
	respondSnapshot(w, snapshot, err)
}

func (h *Handler) beginCheckout(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Checkout.Begin(r.Context(), sessionID(w, r))
	respondSnapshot(w, snapshot, err)
}

func (h *Handler) submitShipping(w http.ResponseWriter, r *http.Request) {
	var details domain.UserDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snapshot, err := h.Checkout.SubmitShipping(r.Context(), sessionID(w, r), details)
	respondSnapshot(w, snapshot, err)
}

func (h *Handler) submitPayment(w http.ResponseWriter, r *http.Request) {
	var details domain.PaymentDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snapshot, err := h.Checkout.SubmitPayment(r.Context(), sessionID(w, r), details)
	respondSnapshot(w, snapshot, err)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snapshot, err := h.Checkout.Verify(r.Context(), sessionID(w, r), body.Code)
	respondSnapshot(w, snapshot, err)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Checkout.Cancel(r.Context(), sessionID(w, r))
	respondSnapshot(w, snapshot, err)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Checkout.Reset(r.Context(), sessionID(w, r))
	respondSnapshot(w, snapshot, err)
}

func (h *Handler) getLastOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Checkout.LastOrder(r.Context(), sessionID(w, r))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, nil)
		return
	}
	order.OTP = ""
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, nil)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}

// sessionID reads the shopper's session from the header or cookie, issuing a
// new cookie on first contact.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if id := r.Header.Get(sessionHeader); id != "" {
		return id
	}
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
	})
	w.Header().Set(sessionHeader, id)
	return id
}

func respondSnapshot(w http.ResponseWriter, snapshot service.Snapshot, err error) {
	if err != nil {
		writeError(w, err, &snapshot)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

type errorResponse struct {
	Error     string            `json:"error"`
	Errors    map[string]string `json:"errors,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`
	Redirect  string            `json:"redirect,omitempty"`
	Checkout  *service.Snapshot `json:"checkout,omitempty"`
}

func writeError(w http.ResponseWriter, err error, snapshot *service.Snapshot) {
	resp := errorResponse{Error: err.Error(), Checkout: snapshot}
	status := http.StatusInternalServerError

	var invalid validation.Errors
	switch {
	case errors.As(err, &invalid):
		status = http.StatusUnprocessableEntity
		resp.Errors = invalid
	case errors.Is(err, service.ErrEmptyCart):
		status = http.StatusConflict
		resp.Redirect = "/"
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrInProgress):
		status = http.StatusConflict
	case errors.Is(err, service.ErrStoreWrite):
		status = http.StatusServiceUnavailable
		resp.Error = service.ErrStoreWrite.Error()
		resp.Retryable = true
	case errors.Is(err, service.ErrContextLost):
		status = http.StatusGone
		resp.Error = service.ErrContextLost.Error()
		resp.Redirect = "/"
	case errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrInvalidFlavor),
		errors.Is(err, service.ErrInvalidQty):
		status = http.StatusBadRequest
	case errors.Is(err, catalog.ErrItemNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, service.ErrLineNotFound):
		status = http.StatusNotFound
	}

	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
