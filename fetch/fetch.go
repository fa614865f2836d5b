// Package fetch resolves shader locators to shader source text.
//
// Supported locators:
//
//	builtin:<name>          a program from the programs catalogue
//	http://... https://...  fetched with an HTTP GET
//	file:///path            read from the filesystem
//	anything else           resolved against Base when set, otherwise a
//	                        filesystem path relative to Root
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/stewi1014/fragcanvas/log"
	"github.com/stewi1014/fragcanvas/programs"
)

var logger = log.New("fetch")

// DefaultMaxSize bounds the size of a fetched shader.
const DefaultMaxSize = 1 << 20

const builtinScheme = "builtin:"

var (
	ErrNotFound = errors.New("shader not found")
	ErrTooLarge = errors.New("shader source too large")
)

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

type Fetcher struct {
	// Client used for HTTP locators. Defaults to http.DefaultClient.
	Client *http.Client
	// Base resolves locators without a scheme as URLs.
	Base *url.URL
	// Root is the directory plain paths are relative to.
	Root string
	// MaxSize in bytes; zero means DefaultMaxSize.
	MaxSize int64
}

func New() *Fetcher {
	return &Fetcher{}
}

// Fetch returns the source text named by locator.
func (f *Fetcher) Fetch(ctx context.Context, locator string) (string, error) {
	if name, ok := strings.CutPrefix(locator, builtinScheme); ok {
		p, ok := programs.Lookup(name)
		if !ok {
			return "", fmt.Errorf("%s: %w", locator, ErrNotFound)
		}
		return p.FragmentShader, nil
	}

	u, err := url.Parse(locator)
	if err != nil {
		return f.readFile(locator)
	}

	switch u.Scheme {
	case "http", "https":
		return f.get(ctx, u)
	case "file":
		return f.readFile(u.Path)
	case "":
		if f.Base != nil {
			return f.get(ctx, f.Base.ResolveReference(u))
		}
		return f.readFile(locator)
	}

	// Windows drive letters parse as single-letter schemes.
	if len(u.Scheme) == 1 {
		return f.readFile(locator)
	}

	return "", fmt.Errorf("%s: unsupported scheme %q", locator, u.Scheme)
}

func (f *Fetcher) maxSize() int64 {
	if f.MaxSize > 0 {
		return f.MaxSize
	}
	return DefaultMaxSize
}

func (f *Fetcher) get(ctx context.Context, u *url.URL) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	logger.Debugf("GET %s", u)
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{
			URL:    u.String(),
			Code:   resp.StatusCode,
			Status: resp.Status,
		}
	}

	return f.read(u.String(), resp.Body)
}

func (f *Fetcher) readFile(path string) (string, error) {
	if f.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.Root, path)
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	return f.read(path, file)
}

func (f *Fetcher) read(name string, r io.Reader) (string, error) {
	limit := f.maxSize()
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	if int64(len(b)) > limit {
		return "", fmt.Errorf("%s: %w (limit %d bytes)", name, ErrTooLarge, limit)
	}
	return string(b), nil
}
