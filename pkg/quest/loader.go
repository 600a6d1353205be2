package quest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Loader fetches a quest document.
type Loader interface {
	Load(ctx context.Context) (*Document, error)
}

// LoadError reports that the quest document could not be fetched or parsed.
// Callers must show it instead of rendering a partial checklist.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("Failed to load quest data from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Source loads a document from an http(s) URL or a local path.
type Source struct {
	Location string
	Client   *http.Client
}

// Load implements Loader.
func (s Source) Load(ctx context.Context) (*Document, error) {
	data, err := s.fetch(ctx)
	if err != nil {
		return nil, &LoadError{Source: s.Location, Err: err}
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Source: s.Location, Err: err}
	}
	return doc, nil
}

func (s Source) fetch(ctx context.Context) ([]byte, error) {
	loc := strings.TrimSpace(s.Location)
	if loc == "" {
		return nil, fmt.Errorf("no quest source configured")
	}
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return s.get(ctx, loc)
	}
	path, err := homedir.Expand(loc)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (s Source) get(ctx context.Context, url string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Static is a Loader over an in-memory document.
type Static []byte

// Load implements Loader.
func (s Static) Load(context.Context) (*Document, error) {
	doc, err := Parse(s)
	if err != nil {
		return nil, &LoadError{Source: "memory", Err: err}
	}
	return doc, nil
}
