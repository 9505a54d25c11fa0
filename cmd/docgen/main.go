// docgen generates campaign reports, invoices, contracts and sales
// presentations for a beauty-salon marketing agency.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aurine/docgen/api"
	"github.com/aurine/docgen/internal/config"
	"github.com/aurine/docgen/internal/export"
	"github.com/aurine/docgen/internal/history"
	"github.com/aurine/docgen/internal/logging"
	"github.com/aurine/docgen/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set by the root command.
var (
	cfg    *config.Config
	logger zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "docgen",
	Short: "docgen: marketing document generator",
	Long: `docgen renders Facebook Ads campaign reports, invoices, service
contracts and cold-mail presentations from simple forms, as HTML previews,
PDF documents or images.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		logger = logging.New(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docgen %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// newExporter builds the exporter from the render config.
func newExporter() *export.Exporter {
	return export.New(export.Options{
		PDFPixelRatio:   cfg.Render.PixelRatioPDF,
		ImagePixelRatio: cfg.Render.PixelRatioPNG,
		JPEGQuality:     cfg.Render.JPEGQuality,
		Workers:         cfg.Render.Workers,
	}, logger)
}

func openHistory() (*history.Store, error) {
	return history.Open(cfg.History.Path, cfg.History.MaxItems, logger)
}

// serverHistory opens the history for the API server. When the store cannot
// be opened the server runs without it and history routes answer 503.
func serverHistory() (api.HistoryStore, func()) {
	store, err := openHistory()
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.History.Path).Msg("history unavailable, serving without it")
		return nil, func() {}
	}
	return store, func() { store.Close() }
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Server.Port = port
		}
		noUI, _ := cmd.Flags().GetBool("no-ui")

		hist, closeHistory := serverHistory()
		defer closeHistory()

		api.Version = version
		srv := api.NewServer(cfg, newExporter(), hist, logger)
		if noUI {
			srv.SetServeUI(false)
		}
		return srv.ListenAndServe(cfg.Server.Addr())
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides server.port)")
	serveCmd.Flags().Bool("no-ui", false, "do not serve the browser form at /")
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  docgen: System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:        %s (%s)\n", version, commit)
		fmt.Printf("  Time (Warsaw):  %s\n", utils.FormatDateTimeWarsaw(utils.NowWarsaw()))
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    API Server:    %s\n", cfg.Server.Addr())
		fmt.Printf("    PDF ratio:     %g\n", cfg.Render.PixelRatioPDF)
		fmt.Printf("    Image ratio:   %g\n", cfg.Render.PixelRatioPNG)
		fmt.Printf("    JPEG quality:  %d\n", cfg.Render.JPEGQuality)
		fmt.Printf("    History:       %s (max %d)\n", cfg.History.Path, cfg.History.MaxItems)
		fmt.Printf("    Logging:       %s/%s\n", cfg.Logging.Level, cfg.Logging.Format)
		fmt.Println()

		fmt.Println("  Secrets:")
		for _, s := range config.CheckSecrets(cfg) {
			status := "not set"
			if s.IsSet {
				status = fmt.Sprintf("set (%s: %s)", s.Source, s.Masked)
			}
			fmt.Printf("    %-25s %s\n", s.Name+":", status)
		}

		if store, err := openHistory(); err != nil {
			fmt.Printf("\n  History store: unavailable (%v)\n", err)
		} else {
			items, err := store.List(cmd.Context())
			store.Close()
			if err == nil {
				fmt.Printf("\n  Saved reports: %d\n", len(items))
			}
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
