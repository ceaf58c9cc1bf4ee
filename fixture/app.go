package fixture

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"

	"github.com/yarrowhq/ui-verify/logger"
)

// Gallery is one dashboard card.
type Gallery struct {
	Name       string `json:"name"`
	PhotoCount int    `json:"photo_count"`
}

var galleryNames = []string{
	"Autumn Wedding",
	"Harbor Engagement",
	"Studio Portraits",
	"Yarrow Fields",
	"City Hall Elopement",
}

func seedGalleries(count int) []Gallery {
	galleries := make([]Gallery, 0, count)
	for i := 0; i < count; i++ {
		name := galleryNames[i%len(galleryNames)]
		if i >= len(galleryNames) {
			name = fmt.Sprintf("%s %d", name, i/len(galleryNames)+1)
		}
		galleries = append(galleries, Gallery{
			Name:       name,
			PhotoCount: 12 + i*7,
		})
	}
	return galleries
}

// App is the portal application: one seeded account, in-memory
// sessions, and the pages a verification run drives.
type App struct {
	cfg          Config
	account      *Account
	sessions     *SessionManager
	secureCookie *securecookie.SecureCookie
	galleries    []Gallery
	logger       logger.Logger
}

// NewApp creates the portal with its account seeded from the config.
func NewApp(cfg Config, log logger.Logger) (*App, error) {
	account, err := NewAccount(cfg.Email, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to seed account: %w", err)
	}

	return &App{
		cfg:          cfg,
		account:      account,
		sessions:     NewSessionManager(cfg.SessionDuration, log),
		secureCookie: securecookie.New([]byte(cfg.CookieSecret), nil),
		galleries:    seedGalleries(cfg.CardCount),
		logger:       log,
	}, nil
}

// Start begins background session cleanup.
func (a *App) Start() {
	a.sessions.StartCleanup(5 * time.Minute)
}

// Stop halts background session cleanup.
func (a *App) Stop() {
	a.sessions.StopCleanup()
}

// Router builds the portal's HTTP routes.
func (a *App) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", a.Health).Methods("GET")
	router.HandleFunc("/login", a.LoginPage).Methods("GET")
	router.HandleFunc("/login", a.Login).Methods("POST")
	router.HandleFunc("/logout", a.Logout).Methods("POST")
	router.HandleFunc("/dashboard", a.Dashboard).Methods("GET")
	router.HandleFunc("/api/galleries", a.Galleries).Methods("GET")
	router.HandleFunc("/", a.Index).Methods("GET")

	return router
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health handles health check requests.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

// Index routes the bare host to the right page for the visitor.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	if _, err := a.currentSession(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// LoginPage renders the sign-in form.
func (a *App) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := a.currentSession(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	a.renderLogin(w, r, http.StatusOK, "")
}

// Login handles the sign-in form submission.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderLogin(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if email != a.account.Email || !a.account.CheckPassword(password) {
		a.logger.Warn(r.Context(), "invalid login attempt", map[string]interface{}{
			"email": email,
		})
		a.renderLogin(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	sess := a.sessions.Create(a.account.Email)
	if err := a.setSessionCookie(w, sess.ID); err != nil {
		a.logger.Error(r.Context(), "failed to set session cookie", map[string]interface{}{
			"error": err.Error(),
		})
		a.renderLogin(w, r, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	a.logger.Info(r.Context(), "user logged in", map[string]interface{}{
		"email": email,
	})

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout ends the current session.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, err := a.currentSession(r); err == nil {
		a.sessions.Delete(sess.ID)
	}
	a.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Dashboard renders the gallery overview for a signed-in user.
func (a *App) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, err := a.currentSession(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, dashboardData{Email: sess.Email}); err != nil {
		a.logger.Error(r.Context(), "failed to render dashboard", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Galleries returns the gallery list the dashboard renders its cards from.
func (a *App) Galleries(w http.ResponseWriter, r *http.Request) {
	if _, err := a.currentSession(r); err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	// Simulated load so the cards render asynchronously, like production.
	if a.cfg.CardDelay > 0 {
		select {
		case <-time.After(a.cfg.CardDelay):
		case <-r.Context().Done():
			return
		}
	}

	respondJSON(w, http.StatusOK, a.galleries)
}

func (a *App) renderLogin(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := loginTemplate.Execute(w, loginData{Error: errMsg}); err != nil {
		a.logger.Error(r.Context(), "failed to render login page", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (a *App) currentSession(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(a.cfg.CookieName)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	var raw string
	if err := a.secureCookie.Decode(a.cfg.CookieName, cookie.Value, &raw); err != nil {
		return nil, ErrSessionNotFound
	}

	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	return a.sessions.Get(sessionID)
}

func (a *App) setSessionCookie(w http.ResponseWriter, sessionID uuid.UUID) error {
	encoded, err := a.secureCookie.Encode(a.cfg.CookieName, sessionID.String())
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     a.cfg.CookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

func (a *App) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
