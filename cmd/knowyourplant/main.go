package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	adapthttp "knowyourplant/internal/adapter/http"
	"knowyourplant/internal/adapter/postgres"
	"knowyourplant/internal/adapter/sqlite"
	"knowyourplant/internal/app"
	"knowyourplant/internal/domain"
	"knowyourplant/internal/predict"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

func main() {
	_ = godotenv.Load()

	addr := env("ADDR", ":8080")
	webDir := os.Getenv("WEB_DIR")

	users, scans, sessionRepo, closeStore := openStore()
	defer closeStore()

	predictor := buildPredictor()
	google := buildGoogleVerifier()
	oidcCfg := buildOIDCConfig()

	authSvc := app.NewAuthService(users, sessionRepo, google)
	scanSvc := app.NewScanService(predictor, scans)

	h := adapthttp.New(authSvc, scanSvc, oidcCfg, webDir).Handler()
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openStore picks PostgreSQL when DATABASE_URL is set and SQLite otherwise.
func openStore() (domain.UserRepository, domain.ScanRepository, domain.SessionRepository, func()) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		db, err := postgres.Open(connStr)
		if err != nil {
			log.Fatalf("postgres open: %v", err)
		}
		return db, db, postgres.NewSessionRepo(db), func() { _ = db.Close() }
	}

	path := env("SQLITE_PATH", "knowyourplant.db")
	db, err := sqlite.Open(path)
	if err != nil {
		log.Fatalf("sqlite open: %v", err)
	}
	return db, db, sqlite.NewSessionRepo(db), func() { _ = db.Close() }
}

// buildPredictor wires the identification backend: a remote model server when
// PREDICT_URL is set, the built-in sample identifier otherwise. With
// PREDICT_FALLBACK=1 a failing remote falls back to the sample identifier.
func buildPredictor() predict.Predictor {
	predictURL := os.Getenv("PREDICT_URL")
	if predictURL == "" {
		log.Print("PREDICT_URL not set, using sample identifier")
		return predict.NewMock(0)
	}

	remote := predict.NewRemote(predictURL)
	if os.Getenv("PREDICT_FALLBACK") == "1" {
		return predict.WithFallback(remote, predict.NewMock(0))
	}
	return remote
}

func buildGoogleVerifier() app.IdentityVerifier {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		return nil
	}
	v, err := adapthttp.NewGoogleVerifier(context.Background(), clientID)
	if err != nil {
		log.Fatalf("google verifier: %v", err)
	}
	return v
}

func buildOIDCConfig() adapthttp.OIDCConfig {
	var (
		issuer       = os.Getenv("SSO_ISSUER")
		clientID     = os.Getenv("SSO_CLIENT_ID")
		clientSecret = os.Getenv("SSO_CLIENT_SECRET")
		redirectURL  = os.Getenv("SSO_REDIRECT_URL")
	)
	if issuer == "" || clientID == "" {
		return adapthttp.OIDCConfig{}
	}

	provider, err := oidc.NewProvider(context.Background(), issuer)
	if err != nil {
		log.Fatalf("oidc provider: %v", err)
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
