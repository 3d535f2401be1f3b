package commands

import (
	"testing"
)

func TestParse(t *testing.T) {
	sync := Sync{}
	version := Version{}
	cli := []Command{&sync, &version}

	cmd, err := Parse(cli, []string{"version"})
	if err != nil {
		t.Fatalf("Unexpected error returned from Parse (%v)", err)
	}

	if cmd != &version {
		t.Errorf("Incorrect command\n   expected: %v\n   got:      %v\n", "version", cmd)
	}
}

func TestParseWithFlags(t *testing.T) {
	sync := Sync{}
	cli := []Command{&sync}

	cmd, err := Parse(cli, []string{"sync", "--dry-run", "--env-file", "journal.env"})
	if err != nil {
		t.Fatalf("Unexpected error returned from Parse (%v)", err)
	}

	if cmd != &sync {
		t.Fatalf("Incorrect command\n   expected: %v\n   got:      %v\n", "sync", cmd)
	}

	if !sync.dryRun {
		t.Errorf("Incorrect 'dry-run' flag\n   expected: %v\n   got:      %v\n", true, sync.dryRun)
	}

	if sync.envFile != "journal.env" {
		t.Errorf("Incorrect 'env-file' flag\n   expected: %v\n   got:      %v\n", "journal.env", sync.envFile)
	}
}

func TestParseWithoutCommand(t *testing.T) {
	cli := []Command{&Sync{}}

	cmd, err := Parse(cli, []string{})
	if err != nil {
		t.Fatalf("Unexpected error returned from Parse (%v)", err)
	}

	if cmd != nil {
		t.Errorf("Incorrect command\n   expected: %v\n   got:      %v\n", nil, cmd)
	}
}

func TestParseWithInvalidCommand(t *testing.T) {
	cli := []Command{&Sync{}}

	if _, err := Parse(cli, []string{"synch"}); err == nil {
		t.Errorf("Expected error for invalid command, got:%v", err)
	}
}

func TestSpreadsheetID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://docs.google.com/spreadsheets/d/1BdO3cuAEUGyDGGGHxcHcJ-Qa7lK28Vpq", "1BdO3cuAEUGyDGGGHxcHcJ-Qa7lK28Vpq"},
		{"https://docs.google.com/spreadsheets/d/1BdO3cuAEUGyDGGGHxcHcJ-Qa7lK28Vpq/edit#gid=0", "1BdO3cuAEUGyDGGGHxcHcJ-Qa7lK28Vpq"},
	}

	for _, test := range tests {
		id, err := spreadsheetID(test.url)
		if err != nil {
			t.Fatalf("Unexpected error returned from spreadsheetID (%v)", err)
		}

		if id != test.expected {
			t.Errorf("Incorrect spreadsheet ID\n   expected: %v\n   got:      %v\n", test.expected, id)
		}
	}
}

func TestSpreadsheetIDWithInvalidURL(t *testing.T) {
	if _, err := spreadsheetID("https://example.com/spreadsheets/d/1BdO3cuAEUGyDGGGHxcHcJ-Qa7lK28Vpq"); err == nil {
		t.Errorf("Expected error for invalid spreadsheet URL, got:%v", err)
	}
}
