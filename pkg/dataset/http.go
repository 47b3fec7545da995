package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// maxDocumentSize bounds a single downloaded document.
var maxDocumentSize int64 = 64 << 20

// HTTPSource downloads both documents over http(s).
type HTTPSource struct {
	client          *http.Client
	ProfilesURL     string
	ClosingRanksURL string
}

// NewHTTPSource creates a new HTTP source. A zero timeout means 30s.
func NewHTTPSource(profilesURL, closingRanksURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		client:          &http.Client{Timeout: timeout},
		ProfilesURL:     profilesURL,
		ClosingRanksURL: closingRanksURL,
	}
}

func (h *HTTPSource) Name() SourceType { return SourceHTTP }

// Fetch downloads the two documents concurrently.
func (h *HTTPSource) Fetch(ctx context.Context) (*Documents, error) {
	var profiles, closing []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := h.get(gctx, "college profiles", h.ProfilesURL)
		profiles = b
		return err
	})
	g.Go(func() error {
		b, err := h.get(gctx, "closing ranks", h.ClosingRanksURL)
		closing = b
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Decode(profiles, closing)
}

func (h *HTTPSource) get(ctx context.Context, name, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "collegeadvisor/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s status %d", name, resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(b)) > maxDocumentSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, maxDocumentSize)
	}
	return b, nil
}
