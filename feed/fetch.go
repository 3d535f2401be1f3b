package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// FetchError is the error returned for a failed endpoint fetch - either a
// transport failure or a non-2xx HTTP response. Status is 0 when the request
// never produced a response.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("GET %s failed (%v)", e.URL, e.Err)
	}

	return fmt.Sprintf("GET %s failed with status %v", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetch retrieves the CSV document at url with a single blocking GET and
// returns the raw response body. Timeouts and cancellation come from the
// supplied context and client. Fetch does not retry - recovery is left to
// the next scheduled run.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	rq.Header.Set("Accept", "text/csv")

	response, err := client.Do(rq)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &FetchError{URL: url, Status: response.StatusCode}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	return body, nil
}
