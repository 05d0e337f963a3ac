package downloader

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Prober does a cheap availability check on a video page before the
// expensive yt-dlp invocation, and pulls the page title while it is there.
type Prober struct {
	client *http.Client
}

func NewProber() *Prober {
	return &Prober{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Probe fetches the watch page and extracts its og:title (falling back to
// the <title> element). An unreachable or non-200 page is an error; the
// caller decides whether that is fatal.
func (p *Prober) Probe(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; v2md)")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("video page unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse video page: %w", err)
	}

	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && title != "" {
		return strings.TrimSpace(title), nil
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}
