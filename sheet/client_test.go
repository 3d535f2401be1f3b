package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/api/option"
)

type call struct {
	op     string
	query  map[string]string
	values [][]interface{}
}

// Fakes just enough of the Sheets API for the client tests: records the
// operations invoked, in order, and answers every request with response.
type fakeAPI struct {
	calls    []call
	response string
	status   int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Values [][]interface{} `json:"values"`
		Ranges []string        `json:"ranges"`
	}

	json.NewDecoder(r.Body).Decode(&body)

	op := ""
	switch {
	case strings.HasSuffix(r.URL.Path, ":batchClear"):
		op = "clear"

	case strings.HasSuffix(r.URL.Path, ":append"):
		op = "append"

	case r.Method == http.MethodPut:
		op = "update"

	case r.Method == http.MethodGet:
		op = "get"
	}

	query := map[string]string{}
	for _, k := range []string{"valueInputOption", "insertDataOption"} {
		if v := r.URL.Query().Get(k); v != "" {
			query[k] = v
		}
	}

	f.calls = append(f.calls, call{op: op, query: query, values: body.Values})

	if f.status != 0 {
		http.Error(w, `{"error": {"code": 403, "message": "The caller does not have permission"}}`, f.status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, "%s", f.response)
}

func client(t *testing.T, api *fakeAPI) (*Client, *httptest.Server) {
	srv := httptest.NewServer(api)

	c, err := NewClient(context.Background(), "1BdO3cuAEUGyDGGGHxcHcJ-Qa7lK28Vpq", 0,
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication())
	if err != nil {
		srv.Close()
		t.Fatalf("Unexpected error creating Sheets client (%v)", err)
	}

	return c, srv
}

func TestGet(t *testing.T) {
	api := fakeAPI{
		response: `{"range": "'Journal'!A1:B3", "majorDimension": "ROWS", "values": [["id", "entry"], [1, "hello"], [2.5, true]]}`,
	}

	c, srv := client(t, &api)
	defer srv.Close()

	expected := [][]string{
		{"id", "entry"},
		{"1", "hello"},
		{"2.5", "true"},
	}

	rows, err := c.Get(context.Background(), "Journal")
	if err != nil {
		t.Fatalf("Unexpected error returned from Get (%v)", err)
	}

	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Incorrect sheet values\n   expected: %v\n   got:      %v\n", expected, rows)
	}
}

func TestReplace(t *testing.T) {
	api := fakeAPI{
		response: `{}`,
	}

	c, srv := client(t, &api)
	defer srv.Close()

	rows := [][]string{
		{"id", "entry"},
		{"1", "hello"},
	}

	if err := c.Replace(context.Background(), "Journal", rows); err != nil {
		t.Fatalf("Unexpected error returned from Replace (%v)", err)
	}

	ops := []string{}
	for _, call := range api.calls {
		ops = append(ops, call.op)
	}

	if !reflect.DeepEqual(ops, []string{"clear", "update"}) {
		t.Fatalf("Incorrect operation sequence\n   expected: %v\n   got:      %v\n", []string{"clear", "update"}, ops)
	}

	update := api.calls[1]

	if update.query["valueInputOption"] != "RAW" {
		t.Errorf("Incorrect value input option\n   expected: %v\n   got:      %v\n", "RAW", update.query["valueInputOption"])
	}

	expected := [][]interface{}{
		{"id", "entry"},
		{"1", "hello"},
	}

	if !reflect.DeepEqual(update.values, expected) {
		t.Errorf("Incorrect update values\n   expected: %v\n   got:      %v\n", expected, update.values)
	}
}

func TestReplaceWithEmptyTable(t *testing.T) {
	api := fakeAPI{
		response: `{}`,
	}

	c, srv := client(t, &api)
	defer srv.Close()

	if err := c.Replace(context.Background(), "Journal", [][]string{}); err != nil {
		t.Fatalf("Unexpected error returned from Replace (%v)", err)
	}

	ops := []string{}
	for _, call := range api.calls {
		ops = append(ops, call.op)
	}

	if !reflect.DeepEqual(ops, []string{"clear"}) {
		t.Errorf("Incorrect operation sequence\n   expected: %v\n   got:      %v\n", []string{"clear"}, ops)
	}
}

func TestAppend(t *testing.T) {
	api := fakeAPI{
		response: `{}`,
	}

	c, srv := client(t, &api)
	defer srv.Close()

	rows := [][]string{
		{"3", "new entry"},
		{"updated at 2021-05-28 13:22:05", ""},
	}

	if err := c.Append(context.Background(), "Journal", rows); err != nil {
		t.Fatalf("Unexpected error returned from Append (%v)", err)
	}

	if len(api.calls) != 1 || api.calls[0].op != "append" {
		t.Fatalf("Incorrect operation sequence\n   expected: %v\n   got:      %v\n", []string{"append"}, api.calls)
	}

	appended := api.calls[0]

	if appended.query["valueInputOption"] != "RAW" {
		t.Errorf("Incorrect value input option\n   expected: %v\n   got:      %v\n", "RAW", appended.query["valueInputOption"])
	}

	if appended.query["insertDataOption"] != "INSERT_ROWS" {
		t.Errorf("Incorrect insert data option\n   expected: %v\n   got:      %v\n", "INSERT_ROWS", appended.query["insertDataOption"])
	}

	expected := [][]interface{}{
		{"3", "new entry"},
		{"updated at 2021-05-28 13:22:05", ""},
	}

	if !reflect.DeepEqual(appended.values, expected) {
		t.Errorf("Incorrect appended values\n   expected: %v\n   got:      %v\n", expected, appended.values)
	}
}

func TestUpdateError(t *testing.T) {
	api := fakeAPI{
		status: http.StatusForbidden,
	}

	c, srv := client(t, &api)
	defer srv.Close()

	err := c.Update(context.Background(), "Journal", [][]string{{"1", "hello"}})
	if err == nil {
		t.Fatalf("Expected error updating sheet without permission, got:%v", err)
	}

	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("Incorrect error type\n   expected: %T\n   got:      %T\n", &WriteError{}, err)
	}

	if werr.Op != "update" || werr.Sheet != "Journal" {
		t.Errorf("Incorrect error detail\n   expected: %v %v\n   got:      %v %v\n", "update", "Journal", werr.Op, werr.Sheet)
	}
}

func TestRangeQuoting(t *testing.T) {
	tests := []struct {
		sheet    string
		expected string
	}{
		{"Journal", "'Journal'"},
		{"Mood Log", "'Mood Log'"},
		{"Bob's entries", "'Bob''s entries'"},
	}

	for _, test := range tests {
		if v := Range(test.sheet); v != test.expected {
			t.Errorf("Incorrect range for sheet '%s'\n   expected: %v\n   got:      %v\n", test.sheet, test.expected, v)
		}
	}

	if v := Origin("Journal"); v != "'Journal'!A1" {
		t.Errorf("Incorrect origin range\n   expected: %v\n   got:      %v\n", "'Journal'!A1", v)
	}
}
