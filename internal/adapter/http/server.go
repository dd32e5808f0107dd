package adapthttp

import (
	"net/http"

	"knowyourplant/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth   *app.AuthService
	scan   *app.ScanService
	oidc   OIDCConfig
	webDir string
}

// New creates a Server wired to the given application services. webDir may be
// empty when no single-page frontend is served.
func New(auth *app.AuthService, scan *app.ScanService, oidc OIDCConfig, webDir string) *Server {
	return &Server{auth: auth, scan: scan, oidc: oidc, webDir: webDir}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/google", s.handleGoogleLogin)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	api.Handle("/auth/me", s.authMiddleware(http.HandlerFunc(s.handleMe)))
	api.Handle("/auth/logout", s.authMiddleware(http.HandlerFunc(s.handleLogout)))

	api.Handle("/scan", s.authMiddleware(http.HandlerFunc(s.handleScan)))
	api.Handle("/scan/live", s.authMiddleware(http.HandlerFunc(s.handleLiveScan)))
	api.Handle("/history", s.authMiddleware(http.HandlerFunc(s.handleHistory)))

	api.HandleFunc("/catalog", s.handleCatalog)
	api.HandleFunc("/catalog/stats", s.handleCatalogStats)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	if s.webDir != "" {
		root.Handle("/", spaFromDisk(s.webDir))
	}

	return s.loggingMiddleware(withNoCache(root))
}
