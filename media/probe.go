package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var ErrUnreachable = errors.New("media: unreachable")

// MaxFetch caps how many bytes Fetch reads.
const MaxFetch = 8 << 20

// Prober checks that a model or media URL can be fetched before the scene
// commits to it.
type Prober struct {
	Client *http.Client
	Root   string
}

func NewProber(root string) *Prober {
	return &Prober{Client: &http.Client{Timeout: 5 * time.Second}, Root: root}
}

// Probe tries HEAD, then a one-byte ranged GET, for http(s) URLs. Anything
// else is resolved under Root and stat'ed.
func (p *Prober) Probe(ctx context.Context, ref string) error {
	if !IsRemote(ref) {
		path, err := ResolveLocal(p.Root, ref)
		if err != nil {
			return err
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrUnreachable, ref, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: %s is a directory", ErrUnreachable, ref)
		}
		return nil
	}

	if p.try(ctx, http.MethodHead, ref, nil) == nil {
		return nil
	}
	err := p.try(ctx, http.MethodGet, ref, map[string]string{"Range": "bytes=0-0"})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnreachable, ref, err)
	}
	return nil
}

func (p *Prober) try(ctx context.Context, method, ref string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, method, ref, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %s", method, ref, resp.Status)
	}
	return nil
}

// Fetch reads ref in full, over http(s) with the prober's client or from
// under Root.
func (p *Prober) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if !IsRemote(ref) {
		path, err := ResolveLocal(p.Root, ref)
		if err != nil {
			return nil, err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnreachable, ref, err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreachable, ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrUnreachable, ref, resp.Status)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetch+1))
	if err != nil {
		return nil, fmt.Errorf("media: read %s: %w", ref, err)
	}
	if len(b) > MaxFetch {
		return nil, fmt.Errorf("media: %s is larger than %d bytes", ref, MaxFetch)
	}
	return b, nil
}

func (p *Prober) client() *http.Client {
	if p.Client == nil {
		return http.DefaultClient
	}
	return p.Client
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	r := strings.ToLower(ref)
	return strings.HasPrefix(r, "http://") || strings.HasPrefix(r, "https://")
}
