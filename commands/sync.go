package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/datagrove/csv2sheets/config"
	"github.com/datagrove/csv2sheets/feed"
	"github.com/datagrove/csv2sheets/sheet"
)

var SyncCmd = Sync{
	command: command{
		config: DEFAULT_CONFIG,
	},
	dryRun: false,
}

// SheetStore is the view of the Google Sheets client used by the sync
// pipeline.
type SheetStore interface {
	Get(ctx context.Context, sheet string) ([][]string, error)
	Replace(ctx context.Context, sheet string, rows [][]string) error
	Append(ctx context.Context, sheet string, rows [][]string) error
}

type Sync struct {
	command
	dryRun bool
}

func (cmd *Sync) Name() string {
	return "sync"
}

func (cmd *Sync) Description() string {
	return "Fetches the configured CSV endpoints and updates their paired worksheets"
}

func (cmd *Sync) Usage() string {
	return "[--config <file>] [--env-file <file>] [--dry-run]"
}

func (cmd *Sync) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] sync [options]\n", APP)
	fmt.Println()
	fmt.Println("  Fetches each configured CSV endpoint and updates the paired worksheet,")
	fmt.Println("  either replacing the worksheet content or appending the records with an")
	fmt.Println("  ID above the worksheet's current maximum")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    csv2sheets sync`)
	fmt.Println(`    csv2sheets --debug sync --env-file "journal.env" --dry-run`)
	fmt.Println()
}

func (cmd *Sync) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("sync")

	flagset.BoolVar(&cmd.dryRun, "dry-run", cmd.dryRun, "Fetches and parses the configured endpoints without updating any worksheet")

	return flagset
}

func (cmd *Sync) Execute(ctx context.Context, options *Options) error {
	cfg, err := cmd.configuration()
	if err != nil {
		return err
	}

	log := options.log().With(zap.String("run", uuid.NewString()))

	var store SheetStore
	if !cmd.dryRun {
		auth, err := sheet.Authorize(cfg.Credentials)
		if err != nil {
			return fmt.Errorf("authentication/authorization error (%v)", err)
		}

		client, err := sheet.NewClient(ctx, cfg.SpreadsheetID, cfg.RateLimit, auth)
		if err != nil {
			return err
		}

		store = client
	}

	return cmd.run(ctx, cfg, store, log)
}

// run processes the configured endpoints strictly in order, continuing past
// per-endpoint failures and returning the aggregated errors at the end.
func (cmd *Sync) run(ctx context.Context, cfg *config.Config, store SheetStore, log *zap.Logger) error {
	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	var errs error

	for _, endpoint := range cfg.Endpoints {
		log := log.With(zap.String("url", endpoint.URL), zap.String("sheet", endpoint.Sheet))

		if err := cmd.sync(ctx, client, store, cfg.Mode, endpoint, log); err != nil {
			log.Error("sync failed", zap.String("kind", kind(err)), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", endpoint.Sheet, err))
		}
	}

	if failed := len(multierr.Errors(errs)); failed > 0 {
		log.Error("run failed", zap.Int("endpoints", len(cfg.Endpoints)), zap.Int("failed", failed))
	} else {
		log.Info("run complete", zap.Int("endpoints", len(cfg.Endpoints)))
	}

	return errs
}

func (cmd *Sync) sync(ctx context.Context, client *http.Client, store SheetStore, mode config.Mode, endpoint config.Endpoint, log *zap.Logger) error {
	body, err := feed.Fetch(ctx, client, endpoint.URL)
	if err != nil {
		return err
	}

	table, err := feed.Parse(body)
	if err != nil {
		return err
	}

	if cmd.dryRun {
		log.Info("dry run", zap.Int("rows", len(table)), zap.Int("columns", len(table.Header())))
		return nil
	}

	switch mode {
	case config.Append:
		return cmd.append(ctx, store, endpoint.Sheet, table, log)

	default:
		return cmd.replace(ctx, store, endpoint.Sheet, table, log)
	}
}

func (cmd *Sync) replace(ctx context.Context, store SheetStore, name string, table feed.Table, log *zap.Logger) error {
	if err := store.Replace(ctx, name, table); err != nil {
		return err
	}

	log.Info("worksheet replaced", zap.Int("rows", len(table)))

	return nil
}

func (cmd *Sync) append(ctx context.Context, store SheetStore, name string, table feed.Table, log *zap.Logger) error {
	if table.Empty() {
		log.Warn("empty document, nothing to append")
		return nil
	}

	existing, err := store.Get(ctx, name)
	if err != nil {
		return err
	}

	records := feed.Delta(table, existing)
	if len(records) == 0 {
		log.Info("no new records")
		return nil
	}

	rows := append(records, feed.MarkerRow(len(table.Header()), time.Now()))

	if err := store.Append(ctx, name, rows); err != nil {
		return err
	}

	log.Info("records appended", zap.Int("records", len(records)))

	return nil
}

// kind maps an error to the pipeline stage it came from, for log correlation.
func kind(err error) string {
	var fetch *feed.FetchError
	var parse *feed.ParseError
	var write *sheet.WriteError

	switch {
	case errors.As(err, &fetch):
		return "fetch"

	case errors.As(err, &parse):
		return "parse"

	case errors.As(err, &write):
		return "write"

	default:
		return "internal"
	}
}
