package screen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// FragmentSource fetches screen fragments from the quiz server and caches
// them for the lifetime of the process. A non-2xx response is a hard
// failure for that fragment; nothing is cached on failure.
type FragmentSource struct {
	base   string
	client *http.Client

	mu    sync.Mutex
	cache map[string]string
}

func NewFragmentSource(base string, timeout time.Duration) *FragmentSource {
	return &FragmentSource{
		base:   base,
		client: &http.Client{Timeout: timeout},
		cache:  make(map[string]string),
	}
}

func (f *FragmentSource) Fragment(ctx context.Context, name string) (string, error) {
	f.mu.Lock()
	if html, ok := f.cache[name]; ok {
		f.mu.Unlock()
		return html, nil
	}
	f.mu.Unlock()

	url := f.base + "/screen/fragments/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build fragment request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch fragment %q: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch fragment %q: status %d", name, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read fragment %q: %w", name, err)
	}

	html := string(body)
	f.mu.Lock()
	f.cache[name] = html
	f.mu.Unlock()
	return html, nil
}
