package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/datagrove/csv2sheets/config"
	"github.com/datagrove/csv2sheets/feed"
	"github.com/datagrove/csv2sheets/sheet"
)

var PutCmd = Put{
	credentials: DEFAULT_CREDENTIALS,
	url:         "",
	sheet:       "",
	file:        "",
}

type Put struct {
	credentials string
	url         string
	sheet       string
	file        string
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Uploads a local CSV file to a Google Sheets worksheet, replacing the worksheet content"
}

func (cmd *Put) Usage() string {
	return "--url <url> --sheet <name> --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] put [options] --url <URL> --sheet <name> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Uploads a CSV file to a Google Sheets worksheet. The worksheet is cleared")
	fmt.Println("  before the file content is written")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    csv2sheets put --credentials "credentials.json" \`)
	fmt.Println(`                   --url "https://docs.google.com/spreadsheets/d/1BdO3cuAEUGyDGGGHxcHcJ-Qa7lK28Vpq" \`)
	fmt.Println(`                   --sheet "Journal" \`)
	fmt.Println(`                   --file "journal.csv"`)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("put", flag.ExitOnError)

	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path to the Google credentials JSON file")
	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")
	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, "Worksheet name e.g. 'Journal'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "CSV file to upload")

	return flagset
}

func (cmd *Put) Execute(ctx context.Context, options *Options) error {
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

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	spreadsheet, err := spreadsheetID(cmd.url)
	if err != nil {
		return err
	}

	// ... read and parse the file
	data, err := os.ReadFile(cmd.file)
	if err != nil {
		return err
	}

	table, err := feed.Parse(data)
	if err != nil {
		return fmt.Errorf("error reading CSV file %s (%v)", cmd.file, err)
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

	// ... upload
	if err := client.Replace(ctx, cmd.sheet, table); err != nil {
		return err
	}

	log.Info("worksheet uploaded", zap.String("sheet", cmd.sheet), zap.String("file", cmd.file), zap.Int("rows", len(table)))

	return nil
}
