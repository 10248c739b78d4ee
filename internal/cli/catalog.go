package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hemant18-09/DOCai/internal/catalog"
	"github.com/hemant18-09/DOCai/internal/storage"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and manage the signal catalog",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the catalog in effect as YAML",
	Long: `Show prints the catalog that screening would use: a YAML file given
with --catalog, the signals service given with --signals-url, or the
embedded default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		store := resolveStore(ctx, cfg)
		data, err := yaml.Marshal(store.Current())
		if err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var catalogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed a signals database with the embedded default catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		dbPath := serveDB
		if dbPath == "" {
			dbPath = cfg.Server.DBPath
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open signals db: %w", err)
		}
		defer func() { _ = db.Close() }()

		if err := db.Save(catalog.Default()); err != nil {
			return err
		}
		fmt.Printf("✓ Default catalog written to %s\n", dbPath)
		return nil
	},
}

var catalogPushCmd = &cobra.Command{
	Use:   "push <catalog.yaml>",
	Short: "Upload a catalog file to the signals service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		url := signalsURL
		if url == "" {
			url = cfg.Catalog.URL
		}
		if url == "" {
			return fmt.Errorf("--signals-url (or catalog.url in config) is required")
		}

		cat, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		if cat.IsEmpty() {
			return fmt.Errorf("refusing to push an empty catalog")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client := catalog.NewClient(url, cfg.Catalog.FetchTimeout, cfg.Catalog.CacheTTL)
		if err := client.Replace(ctx, cat); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "✓ Catalog pushed to %s\n", url)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogInitCmd)
	catalogCmd.AddCommand(catalogPushCmd)

	catalogShowCmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file")
	catalogShowCmd.Flags().StringVar(&signalsURL, "signals-url", "", "signals service base URL")
	catalogInitCmd.Flags().StringVar(&serveDB, "db", "", "SQLite path for the catalog document")
	catalogPushCmd.Flags().StringVar(&signalsURL, "signals-url", "", "signals service base URL")
}
