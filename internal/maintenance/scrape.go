package maintenance

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/01moynul/storefront-golang/internal/models"
)

// ScrapeTimeout bounds the single GET a scrape performs.
const ScrapeTimeout = 15 * time.Second

const maxScrapeBody = 8 << 20

// NewScrapeClient returns the HTTP client used by `storectl scrape`.
func NewScrapeClient() *http.Client {
	return &http.Client{Timeout: ScrapeTimeout}
}

// Scrape fetches url once and returns capture group 1 of every match of
// pattern, HTML-unescaped, trimmed and de-duplicated in first-seen order.
func Scrape(ctx context.Context, client *http.Client, url, pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return nil, errors.New("pattern must contain a capture group")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "storectl/1.0")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScrapeBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	seen := map[string]bool{}
	var names []string
	for _, m := range re.FindAllStringSubmatch(string(body), -1) {
		name := strings.TrimSpace(html.UnescapeString(m[1]))
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		names = append(names, name)
	}
	return names, nil
}

// BrandList is a `brands:` fragment in the fallback dataset format, ready to
// paste into internal/catalog/fallback.yaml.
type BrandList struct {
	Brands []models.Brand `json:"brands" yaml:"brands"`
}

func NewBrandList(names []string) BrandList {
	d := BrandList{Brands: make([]models.Brand, len(names))}
	for i, name := range names {
		d.Brands[i] = models.Brand{
			Name:      name,
			Slug:      slug.Make(name),
			IsActive:  true,
			SortOrder: i + 1,
		}
	}
	return d
}
