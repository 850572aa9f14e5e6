package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionName      = "admin-session"
	sessionMaxAge    = 8 * 60 * 60
	authenticatedKey = "authenticated"
	usernameKey      = "username"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Auth guards the dashboard with a single operator account.
type Auth struct {
	Store        sessions.Store
	Username     string
	PasswordHash string
	Secure       bool
}

func NewAuth(store sessions.Store, username, passwordHash string, secure bool) *Auth {
	return &Auth{Store: store, Username: username, PasswordHash: passwordHash, Secure: secure}
}

func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if a.PasswordHash == "" {
		writeJSONError(w, http.StatusServiceUnavailable, "Admin login is disabled")
		return
	}

	if req.Username != a.Username ||
		bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
		slog.Warn("Failed admin login", "username", req.Username, "ip", r.RemoteAddr)
		writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	session, _ := a.Store.Get(r, sessionName)
	session.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   a.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	session.Values[authenticatedKey] = true
	session.Values[usernameKey] = req.Username
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("Admin logged in", "username", req.Username)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "username": req.Username})
}

func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := a.Store.Get(r, sessionName)
	username, _ := session.Values[usernameKey].(string)
	session.Values[authenticatedKey] = false
	session.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true, Secure: a.Secure}
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to clear session", "error", err)
	}

	slog.Info("Admin logged out", "username", username)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *Auth) Authenticated(r *http.Request) bool {
	session, err := a.Store.Get(r, sessionName)
	if err != nil {
		return false
	}
	auth, ok := session.Values[authenticatedKey].(bool)
	return ok && auth
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Authenticated(r) {
			writeJSONError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
