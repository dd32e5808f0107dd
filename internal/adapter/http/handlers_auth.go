// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"knowyourplant/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig carries the optional SSO configuration. When Enabled is false
// the SSO endpoints respond 404.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// GoogleVerifier checks Google id-tokens posted by the frontend's sign-in
// button. It implements app.IdentityVerifier.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewGoogleVerifier discovers Google's OIDC endpoints and returns a verifier
// bound to the given client ID.
func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, err
	}
	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Verify validates the raw id-token and returns the email and display name
// claims.
func (g *GoogleVerifier) Verify(ctx context.Context, rawToken string) (string, string, error) {
	idToken, err := g.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", "", err
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", "", err
	}
	return claims.Email, claims.Name, nil
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	switch err {
	case nil:
		writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
	case app.ErrInvalidProfile:
		writeError(w, http.StatusBadRequest, err)
	case app.ErrEmailTaken:
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err == app.ErrInvalidCredentials {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, err := s.auth.GoogleLogin(r.Context(), req.IDToken)
	switch err {
	case nil:
	case app.ErrGoogleDisabled:
		writeError(w, http.StatusNotFound, err)
		return
	case app.ErrInvalidCredentials:
		writeError(w, http.StatusUnauthorized, err)
		return
	default:
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user := userFrom(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	_ = s.auth.Logout(r.Context(), bearerToken(r))

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	if !s.oidc.Enabled {
		http.Error(w, "sso disabled", http.StatusNotFound)
		return
	}
	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode, // Lax required for cross-site redirect returns
		MaxAge:   300,
	})
	http.Redirect(w, r, s.oidc.OAuth2Config.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	if !s.oidc.Enabled {
		http.Error(w, "sso disabled", http.StatusNotFound)
		return
	}

	state, err := r.Cookie("oauth_state")
	if err != nil || r.URL.Query().Get("state") != state.Value {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: "oauth_state", MaxAge: -1, Path: "/"})

	token, err := s.oidc.OAuth2Config.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "failed to exchange token", http.StatusInternalServerError)
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		http.Error(w, "no id_token", http.StatusInternalServerError)
		return
	}

	idToken, err := s.oidc.Provider.Verifier(&oidc.Config{ClientID: s.oidc.OAuth2Config.ClientID}).Verify(r.Context(), rawIDToken)
	if err != nil {
		http.Error(w, "failed to verify token", http.StatusInternalServerError)
		return
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Sub   string `json:"sub"`
	}
	if err = idToken.Claims(&claims); err != nil {
		http.Error(w, "failed to parse claims", http.StatusInternalServerError)
		return
	}

	email := claims.Email
	if email == "" {
		email = claims.Sub
	}
	name := claims.Name
	if name == "" {
		name = email
	}

	sessionToken, err := s.auth.LoginWithIdentity(r.Context(), name, email)
	if err != nil {
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, sessionToken)
	http.Redirect(w, r, "/", http.StatusFound)
}

func generateState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
