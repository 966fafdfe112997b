package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/templui/proofstreak/internal/app"
	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/config"
	"github.com/templui/proofstreak/internal/db"
	"github.com/templui/proofstreak/internal/logger"
	"github.com/templui/proofstreak/internal/storage"
	"github.com/templui/proofstreak/internal/verify"
)

// openApp migrates the database and builds the application around a clock
// pinned to at, or the wall clock when at is empty. Proofs are never verified
// from the CLI.
func openApp(at string) (*app.App, error) {
	cfg := config.Load()
	logger.InitWriter(os.Stderr, cfg.IsDevelopment(), "")

	loc, err := clock.LoadLocation(cfg.AppTimezone)
	if err != nil {
		return nil, err
	}

	var clk clock.Clock = clock.New(loc)
	if at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("invalid --at %q: want RFC3339: %w", at, err)
		}
		clk = clock.NewFixed(t.In(loc))
	}

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	db.Quiet()
	if err := db.RunMigrations(database.DB, cfg.DBDriver); err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	fileStorage, err := storage.New(cfg)
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return app.Wire(cfg, database, fileStorage, clk, verify.AutoApprove()), nil
}

func addOutputFlag(c *cobra.Command, output *string) {
	c.Flags().StringVarP(output, "output", "o", "yaml", "output format: yaml or json")
}

func addAtFlag(c *cobra.Command, at *string) {
	c.Flags().StringVar(at, "at", "", "evaluate at this RFC3339 instant instead of now")
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", format)
}
