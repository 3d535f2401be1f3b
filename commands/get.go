package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/datagrove/csv2sheets/config"
	"github.com/datagrove/csv2sheets/feed"
	"github.com/datagrove/csv2sheets/sheet"
)

var GetCmd = Get{
	credentials: DEFAULT_CREDENTIALS,
	url:         "",
	sheet:       "",
	file:        time.Now().Format("2006-01-02T150405.csv"),
}

type Get struct {
	credentials string
	url         string
	sheet       string
	file        string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a worksheet from a Google Sheets spreadsheet and stores it to a local CSV file"
}

func (cmd *Get) Usage() string {
	return "--url <url> --sheet <name> [--file <file>]"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --url <URL> --sheet <name>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets worksheet to a CSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    csv2sheets get --credentials "credentials.json" \`)
	fmt.Println(`                   --url "https://docs.google.com/spreadsheets/d/1BdO3cuAEUGyDGGGHxcHcJ-Qa7lK28Vpq" \`)
	fmt.Println(`                   --sheet "Journal" \`)
	fmt.Println(`                   --file "journal.csv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("get", flag.ExitOnError)

	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path to the Google credentials JSON file")
	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")
	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, "Worksheet name e.g. 'Journal'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "CSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.csv'")

	return flagset
}

func (cmd *Get) Execute(ctx context.Context, options *Options) error {
	log := options.log()

	// ... check parameters
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if strings.TrimSpace(cmd.sheet) == "" {
		return fmt.Errorf("--sheet is a required option")
	}

	spreadsheet, err := spreadsheetID(cmd.url)
	if err != nil {
		return err
	}

	// ... authorise
	auth, err := sheet.Authorize(cmd.credentials)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	client, err := sheet.NewClient(ctx, spreadsheet, config.DefaultRateLimit, auth)
	if err != nil {
		return err
	}

	// ... download to file
	rows, err := client.Get(ctx, cmd.sheet)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data in worksheet '%s'", cmd.sheet)
	}

	tmp, err := os.CreateTemp(os.TempDir(), APP)
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := feed.Write(tmp, rows); err != nil {
		return fmt.Errorf("error creating CSV file (%v)", err)
	}

	tmp.Close()

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	log.Info("worksheet retrieved", zap.String("sheet", cmd.sheet), zap.String("file", cmd.file), zap.Int("rows", len(rows)))

	return nil
}
