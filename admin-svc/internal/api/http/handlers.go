package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"fastgrab/admin-svc/internal/domain"
	"fastgrab/admin-svc/internal/service"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
)

type Handler struct {
	Monitor service.MonitorInterface
	Auth    *Auth
	Hub     *Hub
}

func NewHandler(monitor service.MonitorInterface, auth *Auth, hub *Hub) *Handler {
	return &Handler{Monitor: monitor, Auth: auth, Hub: hub}
}

type PinRequest struct {
	OrderID string `json:"orderId"`
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	api := r.PathPrefix("/api/admin").Subrouter()
	api.HandleFunc("/csrf", h.csrfToken).Methods("GET")
	api.HandleFunc("/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/logout", h.Auth.Logout).Methods("POST")

	private := api.NewRoute().Subrouter()
	private.Use(h.Auth.Middleware)
	private.HandleFunc("/orders", h.listOrders).Methods("GET")
	private.HandleFunc("/orders/export", h.exportOrders).Methods("GET")
	private.HandleFunc("/stats", h.getStats).Methods("GET")
	private.HandleFunc("/pinned", h.pinOrder).Methods("PUT")
	private.HandleFunc("/pinned", h.unpinOrder).Methods("DELETE")
	private.HandleFunc("/live", h.live).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "admin-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) csrfToken(w http.ResponseWriter, r *http.Request) {
	token := csrf.Token(r)
	w.Header().Set("X-CSRF-Token", token)
	writeJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	size := queryInt(r, "pageSize", service.DefaultPageSize)

	result, err := h.Monitor.Page(r.Context(), page, size)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Monitor.Stats(r.Context())
	if err != nil {
		log.Printf("Error loading stats: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) pinOrder(w http.ResponseWriter, r *http.Request) {
	var req PinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
		writeJSONError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	if err := h.Monitor.Pin(r.Context(), req.OrderID); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeJSONError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("Error pinning order %s: %v", req.OrderID, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to pin order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"pinned": req.OrderID})
}

func (h *Handler) unpinOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.Monitor.Unpin(r.Context()); err != nil {
		log.Printf("Error unpinning order: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to unpin order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) exportOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Monitor.AllOrders(r.Context())
	if err != nil {
		log.Printf("Error exporting orders: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to export orders")
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := service.WriteOrdersXLSX(w, orders); err != nil {
		log.Printf("Error writing export: %v", err)
	}
}

func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Monitor.Stats(r.Context())
	if err != nil {
		log.Printf("Warning: live feed started without stats: %v", err)
	}
	h.Hub.Serve(w, r, domain.Update{
		Type:        "snapshot",
		Stats:       stats,
		NewOrderIDs: []string{},
		At:          time.Now(),
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
