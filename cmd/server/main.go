package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mkale/rosterd/internal/auth"
	"github.com/mkale/rosterd/internal/config"
	"github.com/mkale/rosterd/internal/handlers"
	"github.com/mkale/rosterd/internal/service"
	"github.com/mkale/rosterd/internal/storage/sqlite"
	"github.com/mkale/rosterd/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	router := handlers.NewRouter(&handlers.Handlers{
		Auth:          service.NewAuthService(authenticator, jwtManager, store),
		Groups:        service.NewGroupService(store),
		Memberships:   service.NewMembershipService(store),
		Shifts:        service.NewShiftService(store),
		Swaps:         service.NewSwapService(store),
		Notifications: service.NewNotificationService(store),
		JWT:           jwtManager,
	})

	// h2c lets clients speak HTTP/2 without TLS when a proxy terminates it.
	handler := h2c.NewHandler(router, &http2.Server{})

	slog.Info("server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
