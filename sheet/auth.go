package sheet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// SHEETS is the OAuth2 scope for spreadsheet access.
const SHEETS = "https://www.googleapis.com/auth/spreadsheets"

// Authorize converts a Google credentials file into a client option for the
// Sheets service. Service account credentials are used directly. OAuth client
// credentials need a token cached beside the credentials file by a previous
// 'authorise' run.
func Authorize(credentials string) (option.ClientOption, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	if credentialType(b) == "service_account" {
		return option.WithCredentialsJSON(b), nil
	}

	config, err := google.ConfigFromJSON(b, SHEETS)
	if err != nil {
		return nil, err
	}

	token, err := tokenFromFile(TokensFile(credentials))
	if err != nil {
		return nil, fmt.Errorf("no cached token for %s - run 'authorise' first (%v)", credentials, err)
	}

	return option.WithHTTPClient(config.Client(context.Background(), token)), nil
}

// OAuthConfig loads the OAuth client configuration from a credentials file.
// Service account credentials do not need interactive authorisation and are
// rejected.
func OAuthConfig(credentials string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	if credentialType(b) == "service_account" {
		return nil, fmt.Errorf("%s holds service account credentials - no authorisation required", credentials)
	}

	return google.ConfigFromJSON(b, SHEETS)
}

// TokensFile returns the path of the cached OAuth token for a credentials
// file: '<name>.tokens' in the same directory.
func TokensFile(credentials string) string {
	dir, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(dir, fmt.Sprintf("%s.tokens", name))
}

// SaveToken caches an OAuth token for reuse by subsequent runs.
func SaveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}

func credentialType(b []byte) string {
	var v struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(b, &v); err != nil {
		return ""
	}

	return v.Type
}

// Retrieves a cached token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)

	return token, err
}
