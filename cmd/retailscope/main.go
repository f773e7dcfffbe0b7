package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"retailscope/internal/config"
	"retailscope/internal/database"
	"retailscope/internal/logging"
	"retailscope/internal/pipeline"
	"retailscope/internal/report"
	"retailscope/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	rules      *config.Loader
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "retailscope",
	Short:   "AI-in-retail news reports",
	Long:    "retailscope collects, summarizes, and scores AI-in-retail news into ranked reports.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Optional .env for API keys; absence is fine.
		godotenv.Load() //nolint: errcheck

		level := "info"
		if verbose {
			level = "debug"
		}
		logging.Init(level)

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		rules = config.NewLoader(path)
		if lvl := rules.Current().Logging.Level; lvl != "" && !verbose {
			logging.Init(lvl)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("retailscope", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/retailscope/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure feeds, the rubric, and the LLM provider.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Println("Articles:")
		fmt.Printf("  Total collected: %d\n", stats.TotalArticles)
		fmt.Printf("  Content fetched: %d\n", stats.FetchedArticles)
		fmt.Printf("  Processed: %d\n", stats.ProcessedArticles)
		fmt.Println("\nAssessments:")
		fmt.Printf("  Include: %d\n", stats.Included)
		fmt.Printf("  OK: %d\n", stats.OK)
		fmt.Printf("  Cut: %d\n", stats.Cut)
		fmt.Printf("\nPipeline runs: %d\n", stats.Runs)

		if run, _ := db.LatestRun(); run != nil && run.FinishedAt != nil {
			fmt.Printf("Last run finished: %s\n", *run.FinishedAt)
		}
		return nil
	},
}

// --- scan command ---

var dryRun bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the full pipeline: collect -> fetch -> summarize/evaluate",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe := pipeline.New(rules, db)

		var result *pipeline.Result
		if dryRun {
			result = pipe.DryRun()
		} else {
			result = pipe.Run(context.Background())
		}

		for i, step := range result.Steps {
			fmt.Printf("\nStep %d/%d: %s\n", i+1, len(result.Steps), step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}

		if !dryRun {
			fmt.Println("\nScan complete! Run 'retailscope report' or 'retailscope serve' to view results.")
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without executing")
}

// --- report command ---

var (
	reportFormat string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the ranked article report",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		articles, err := db.ListProcessedArticles()
		if err != nil {
			return fmt.Errorf("listing articles: %w", err)
		}
		ranked := report.Rank(articles)

		out := os.Stdout
		if reportOut != "" {
			f, err := os.Create(reportOut)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		switch reportFormat {
		case "csv":
			if err := report.WriteCSV(out, ranked); err != nil {
				return err
			}
		case "markdown", "md":
			fmt.Fprint(out, report.Markdown(ranked, time.Now()))
		default:
			return fmt.Errorf("unknown format %q (want csv or markdown)", reportFormat)
		}

		if reportOut != "" {
			fmt.Printf("Wrote %d articles to %s\n", len(ranked), reportOut)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "markdown", "Output format: markdown or csv")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Write to file instead of stdout")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = rules.Current().Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

func openDB() (*database.DB, error) {
	dataDir := rules.Current().GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "retailscope.db")
	return database.Open(dbPath)
}
