package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"autosphere-api/internal/database"
	"autosphere-api/internal/model"
	"autosphere-api/internal/repository"
	"autosphere-api/internal/tui"
)

var (
	jsonOutput  bool
	recentLimit int
	pruneAge    time.Duration
)

// lookupLog is the part of the audit log repository the lookups command uses
type lookupLog interface {
	Recent(ctx context.Context, limit int) ([]model.LookupLog, error)
	Stats(ctx context.Context) (map[string]int, error)
	DeleteOlderThan(ctx context.Context, olderThan time.Duration) (int64, error)
}

// newLookupLog opens the audit log database. Tests replace it.
var newLookupLog = func(ctx context.Context) (lookupLog, func(), error) {
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewLookupLogRepo(pool), pool.Close, nil
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [query]",
	Short: "Look up a single car",
	Long: `Asks the model for one car and prints its details.

Example:
  autosphere lookup 1998 Toyota Supra
  autosphere lookup --json "2024 Tesla Model 3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "List the featured cars",
	Args:  cobra.NoArgs,
	RunE:  runFeatured,
}

var lookupsCmd = &cobra.Command{
	Use:   "lookups",
	Short: "Show the lookup audit log (requires DB_ENABLED)",
	Long: `Prints the most recent lookups and the failure counts by type.

Example:
  autosphere lookups --limit 50
  autosphere lookups --prune 720h`,
	Args:  cobra.NoArgs,
	RunE:  runLookups,
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query must not be empty")
	}

	cars, cleanup, err := newCarLookup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	car, err := cars.FetchCarDetails(ctx, query)
	if err != nil {
		logger.Debug("lookup failed", zap.Error(err))
		return errors.New(model.LookupFailedMessage)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, car)
	}

	md, _ := tui.NewMarkdownRenderer("auto", 80)
	fmt.Fprintln(out, tui.RenderDetail(*car, tui.DefaultStyles(), md))
	return nil
}

func runFeatured(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cars, cleanup, err := newCarLookup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	featured, err := cars.FetchFeaturedCars(ctx)
	if err != nil {
		return fmt.Errorf("failed to load featured cars: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, model.FeaturedResponse{Cars: featured})
	}

	tiles := make([]string, 0, len(featured))
	for _, car := range featured {
		tiles = append(tiles, tui.RenderCard(car, tui.DefaultStyles(), false))
	}
	fmt.Fprintln(out, tui.RenderGrid(tiles, 2))
	return nil
}

func runLookups(cmd *cobra.Command, args []string) error {
	if !cfg.Database.Enabled {
		return fmt.Errorf("the lookup audit log is disabled; set DB_ENABLED=true")
	}

	if pruneAge < 0 {
		return fmt.Errorf("--prune must not be negative")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	repo, cleanup, err := newLookupLog(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if pruneAge > 0 {
		n, err := repo.DeleteOlderThan(ctx, pruneAge)
		if err != nil {
			return err
		}
		logger.Info("pruned lookup log", zap.Int64("deleted", n), zap.Duration("older_than", pruneAge))
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d lookups older than %s\n\n", n, pruneAge)
	}

	recent, err := repo.Recent(ctx, recentLimit)
	if err != nil {
		return err
	}
	stats, err := repo.Stats(ctx)
	if err != nil {
		return err
	}

	printLookups(cmd.OutOrStdout(), recent, stats)
	return nil
}

func printLookups(out io.Writer, recent []model.LookupLog, stats map[string]int) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tKIND\tQUERY\tOK\tERROR\tLATENCY")
	for _, e := range recent {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\t%dms\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind, e.Query, e.Success, e.ErrorType, e.LatencyMS)
	}
	w.Flush()

	if len(stats) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Failures by type:")
	for _, t := range []string{
		model.ErrorTypeRateLimit, model.ErrorTypeNetwork, model.ErrorTypeSchema,
		model.ErrorTypeParse, model.ErrorTypeOracle, model.ErrorTypeUnknown,
	} {
		if n, ok := stats[t]; ok {
			fmt.Fprintf(out, "  %-10s %d\n", t, n)
		}
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
