package tmedanalysis

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// OpenFileOrURL reads the full contents of a local file or, if the input
// starts with http, of a remote resource. Remote fetches are single-attempt;
// any failure is returned as a NetworkError and must terminate the run.
func OpenFileOrURL(input string) ([]byte, error) {
	if strings.HasPrefix(input, "http") {
		resp, err := http.Get(input)
		if err != nil {
			return nil, NetworkError{URL: input, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, NetworkError{URL: input, Err: fmt.Errorf("status %s", resp.Status)}
		}

		out, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, NetworkError{URL: input, Err: err}
		}

		return out, nil
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
