package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"skilldash/internal/logging"
)

// ErrInvalid wraps the consolidated validation failure so callers can
// distinguish a malformed document from an unreachable one.
type ErrInvalid struct {
	Problems []string
}

func (e *ErrInvalid) Error() string {
	return "dashboard data failed validation: " + strings.Join(e.Problems, "; ")
}

// Load fetches the raw document from source (a local path or an http(s)
// URL), validates it and parses it. Both load and validation failures are
// fatal to initialization: there is no retry and no partial render.
//
// HTTP fetches send no-cache headers so an edited document is reflected on
// the next start.
func Load(ctx context.Context, source string) (*Dataset, error) {
	var raw []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		raw, err = fetch(ctx, source)
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("load dashboard data from %s: %w", source, err)
	}

	if problems := Validate(raw); len(problems) > 0 {
		logging.Data("validation failed for %s: %d problem(s)", source, len(problems))
		return nil, &ErrInvalid{Problems: problems}
	}

	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse dashboard data: %w", err)
	}
	logging.Data("loaded %s: %d charts, %d sources, %d disciplines",
		source, len(ds.Charts), len(ds.Sources), len(ds.Disciplines))
	return &ds, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
