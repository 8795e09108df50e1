// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Fetcher returns the raw bytes a locator points at.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, locator string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, locator string) ([]byte, error) {
	return f(ctx, locator)
}

// Resolver fetches filesystem paths, file:// URLs, http(s) URLs and
// catalog paths rooted at "/sounds/".
type Resolver struct {
	// AssetRoot is the directory catalog paths are resolved under.
	AssetRoot string
	Client    *http.Client
	MaxBytes  int64
}

func (r *Resolver) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if locator == "" {
		return nil, ErrInvalidLocator
	}

	u, err := url.Parse(locator)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return r.fetchHTTP(ctx, locator)
		case "file":
			p := u.Path
			if p == "" {
				p = u.Opaque
			}
			return r.readFile(filepath.FromSlash(p))
		case "":
		default:
			// Windows drive letters parse as a one-letter scheme.
			if len(u.Scheme) != 1 {
				return nil, fmt.Errorf("%w: scheme %q", ErrInvalidLocator, u.Scheme)
			}
		}
	}

	return r.readFile(r.localPath(locator))
}

// localPath maps catalog paths under the asset root; other paths are used
// as given.
func (r *Resolver) localPath(locator string) string {
	if r.AssetRoot != "" && strings.HasPrefix(locator, "/sounds/") {
		clean := path.Clean(locator)
		return filepath.Join(r.AssetRoot, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	}
	return locator
}

func (r *Resolver) readFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer f.Close()

	return r.readLimited(f)
}

func (r *Resolver) fetchHTTP(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLocator, err)
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnreachable, resp.StatusCode)
	}
	if r.MaxBytes > 0 && resp.ContentLength > r.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	return r.readLimited(resp.Body)
}

func (r *Resolver) readLimited(rd io.Reader) ([]byte, error) {
	if r.MaxBytes <= 0 {
		data, err := io.ReadAll(rd)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(rd, r.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	if int64(len(data)) > r.MaxBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, r.MaxBytes)
	}
	return data, nil
}
