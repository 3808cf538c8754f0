package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mfcruz/gestor/internal/asaas"
	"github.com/mfcruz/gestor/internal/auth"
	authStore "github.com/mfcruz/gestor/internal/auth/store"
	"github.com/mfcruz/gestor/internal/client"
	clientStore "github.com/mfcruz/gestor/internal/client/store"
	"github.com/mfcruz/gestor/internal/config"
	"github.com/mfcruz/gestor/internal/database"
	"github.com/mfcruz/gestor/internal/evolution"
	"github.com/mfcruz/gestor/internal/finance"
	financeStore "github.com/mfcruz/gestor/internal/finance/store"
	gestorHttp "github.com/mfcruz/gestor/internal/http"
	authHandler "github.com/mfcruz/gestor/internal/http/auth"
	clientHandler "github.com/mfcruz/gestor/internal/http/client"
	financeHandler "github.com/mfcruz/gestor/internal/http/finance"
	importHandler "github.com/mfcruz/gestor/internal/http/importcsv"
	notifyHandler "github.com/mfcruz/gestor/internal/http/notify"
	projectHandler "github.com/mfcruz/gestor/internal/http/project"
	"github.com/mfcruz/gestor/internal/importer"
	"github.com/mfcruz/gestor/internal/notify"
	"github.com/mfcruz/gestor/internal/project"
	projectStore "github.com/mfcruz/gestor/internal/project/store"
	"github.com/mfcruz/gestor/internal/state"
	"github.com/mfcruz/gestor/internal/store"
)

func main() {
	// A missing .env is fine in production; config comes from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	appStore := store.New(state.New())

	asaasClient := asaas.New(cfg.Asaas.BaseURL, cfg.Asaas.APIKey)
	evolutionClient := evolution.New(cfg.Evolution.BaseURL, cfg.Evolution.APIKey, cfg.Evolution.Instance)

	var (
		authService    = auth.NewService(appStore, authStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		clientService  = client.NewService(appStore, clientStore.New(db))
		projectService = project.NewService(appStore, projectStore.New(db))
		financeService = finance.NewService(appStore, financeStore.New(db), asaasClient)
		notifyService  = notify.NewService(evolutionClient)
		statementP     = importer.NewParser()
	)

	if err := loadCollections(ctx, authService, clientService, projectService, financeService); err != nil {
		slog.Error("failed to load persisted state", "error", err)
		os.Exit(1)
	}

	var (
		authH    = authHandler.NewHandler(authService)
		clientH  = clientHandler.NewHandler(clientService)
		projectH = projectHandler.NewHandler(projectService)
		financeH = financeHandler.NewHandler(financeService)
		importH  = importHandler.NewHandler(statementP, financeService)
		notifyH  = notifyHandler.NewHandler(notifyService)
	)

	router := gestorHttp.New(authService, authH, clientH, projectH, financeH, importH, notifyH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * time.Minute,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// loadCollections hydrates the in-memory snapshot from postgres and restores
// a previously open session, if any.
func loadCollections(
	ctx context.Context,
	authSvc *auth.Service,
	clientSvc *client.Service,
	projectSvc *project.Service,
	financeSvc *finance.Service,
) error {
	if err := authSvc.RestoreSession(ctx); err != nil {
		return err
	}

	if err := clientSvc.Load(ctx); err != nil {
		return err
	}

	if err := projectSvc.Load(ctx); err != nil {
		return err
	}

	return financeSvc.Load(ctx)
}
