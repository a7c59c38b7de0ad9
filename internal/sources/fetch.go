package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ObiAU/contentagents/internal/cache"
	"github.com/ObiAU/contentagents/internal/textutil"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const (
	// MaxTextChars bounds the extracted text of a single page.
	MaxTextChars = 100000

	maxBodyBytes = 5 << 20
)

var blankLines = regexp.MustCompile(`\n[ \t]*\n+`)

// TextFetcher downloads a page and returns its readable text, or "" on failure.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) string
}

type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	pages   *cache.Cache
}

func NewFetcher(timeout, interval time.Duration) *Fetcher {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		pages:   cache.New(0),
	}
}

func (f *Fetcher) FetchText(ctx context.Context, url string) string {
	if text, ok := f.pages.Get(url); ok {
		return text
	}

	text, err := f.fetch(ctx, url)
	if err != nil {
		log.Printf("Failed to fetch %s: %v", url, err)
		text = ""
	}
	f.pages.Put(url, text)
	return text
}

func (f *Fetcher) CacheStats() map[string]interface{} {
	return f.pages.Stats()
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "contentagents/1.0 (+research)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(contentType, "text/plain"), strings.Contains(contentType, "text/markdown"):
		return textutil.Truncate(cleanWhitespace(string(body)), MaxTextChars), nil
	case contentType == "", strings.Contains(contentType, "html"):
		text, err := ExtractText(body)
		if err != nil {
			return "", err
		}
		return textutil.Truncate(text, MaxTextChars), nil
	default:
		return "", fmt.Errorf("unsupported content-type: %s", contentType)
	}
}

// ExtractText pulls the readable text out of an HTML page: headings,
// paragraphs and list items inside main/article, or the whole document when
// the page has neither.
func ExtractText(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, nav, header, footer").Remove()

	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}

	var parts []string
	sel.Find("h1, h2, h3, h4, p, li, pre, blockquote").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		if t := strings.TrimSpace(doc.Find("body").Text()); t != "" {
			parts = append(parts, t)
		}
	}

	return cleanWhitespace(strings.Join(parts, "\n")), nil
}

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = blankLines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
