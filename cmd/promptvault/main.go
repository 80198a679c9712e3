package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptvault/promptvault/internal/auth"
	"github.com/promptvault/promptvault/internal/config"
	"github.com/promptvault/promptvault/internal/log"
	restapi "github.com/promptvault/promptvault/internal/server"
	"github.com/promptvault/promptvault/internal/service"
	"github.com/promptvault/promptvault/internal/store"
	"github.com/promptvault/promptvault/internal/store/sqlitestore"
	"github.com/promptvault/promptvault/internal/store/supastore"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "promptvault",
		Short:         "Multi-tenant prompt and skill library server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env", ".env", "env file to load, if present")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			return serveAPI(cmd.Context(), cfg)
		},
	}
	root.AddCommand(serve)
	return root
}

func serveAPI(ctx context.Context, cfg *config.Config) error {
	logger := log.New(log.LevelFromInt(cfg.LogLevel))

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return err
	}

	svc := service.New(st, logger)
	router := restapi.NewRouter(svc, verifier, restapi.Options{
		GuestMode: cfg.GuestMode,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Basicf("listening on %s (backend: %s, guest mode: %v)", cfg.Address, cfg.Backend, cfg.GuestMode)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Basicf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendSupabase:
		return supastore.New(cfg.SupabaseURL, cfg.SupabaseKey)
	default:
		return sqlitestore.Open(cfg.SQLitePath)
	}
}

// buildVerifier wires token verification. Without Supabase credentials
// there is no auth provider, so the server runs guest-only.
func buildVerifier(cfg *config.Config) (auth.Verifier, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return auth.NewStaticVerifier(nil), nil
	}
	return auth.NewGoTrueVerifier(cfg.SupabaseURL, cfg.SupabaseKey, cfg.AuthTimeout)
}
