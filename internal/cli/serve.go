package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hemant18-09/DOCai/internal/assess"
	"github.com/hemant18-09/DOCai/internal/catalog"
	"github.com/hemant18-09/DOCai/internal/server"
	"github.com/hemant18-09/DOCai/internal/storage"
)

var (
	serveAddr string
	serveDB   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the signals service",
	Long: `Serve runs the signals admin API and assessment endpoint:

  GET  /api/signals                    current catalog
  PUT  /api/signals                    replace catalog
  POST /api/signals/init               restore embedded default
  GET  /api/signals/symptom/{category} one symptom category
  GET  /api/signals/context/{category} one context category
  POST /api/assess                     screen free text

The catalog document is persisted in SQLite; updates take effect on the
next assessment without a restart. Assessments are never stored.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: configured value)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite path for the catalog document")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	dbPath := serveDB
	if dbPath == "" {
		dbPath = cfg.Server.DBPath
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open signals db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Stored catalog wins; a fresh database starts from the embedded
	// default without persisting it until an admin touches it.
	initial, err := db.Load()
	if err != nil {
		log.Printf("stored catalog unreadable, using embedded default: %v", err)
	}
	if initial == nil {
		initial = catalog.Default()
	}

	store := catalog.NewStore(initial)
	assessor := assess.New(store, &cfg.Screening)
	srv := server.New(store, db, assessor, cfg.Server.RatePerSecond, cfg.Server.Burst)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("signals service listening on %s (db: %s)", addr, dbPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down signals service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("signals service stopped")
	return nil
}
