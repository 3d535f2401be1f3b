package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/datagrove/csv2sheets/sheet"
)

var AuthoriseCmd = Authorise{
	credentials: DEFAULT_CREDENTIALS,
}

type Authorise struct {
	credentials string
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises csv2sheets to access a Google Sheets spreadsheet"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options]\n", APP)
	fmt.Println()
	fmt.Println("  Runs the OAuth2 authorisation flow for the Google credentials file and")
	fmt.Println("  caches the token beside it for use by subsequent commands. Not required")
	fmt.Println("  for service account credentials")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    csv2sheets authorise --credentials "credentials.json"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("authorise", flag.ExitOnError)

	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path to the Google credentials JSON file")

	return flagset
}

func (cmd *Authorise) Execute(ctx context.Context, options *Options) error {
	// ... check parameters
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	config, err := sheet.OAuthConfig(cmd.credentials)
	if err != nil {
		return fmt.Errorf("authorisation error (%v)", err)
	}

	// ... request a token from the web
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return fmt.Errorf("unable to read authorization code (%v)", err)
	}

	token, err := config.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("unable to retrieve token from web (%v)", err)
	}

	tokens := sheet.TokensFile(cmd.credentials)
	if err := sheet.SaveToken(tokens, token); err != nil {
		return fmt.Errorf("unable to cache OAuth token (%v)", err)
	}

	fmt.Printf("Saved token to %s\n", tokens)

	return nil
}
