package dataflows

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"tradedesk/config"
	"tradedesk/models"
)

// NewsScraperClient scrapes Google News search results as a fallback
// news source when no Finnhub key is configured.
type NewsScraperClient struct {
	client *resty.Client
	cache  *CacheManager
}

func NewNewsScraperClient(cfg *config.Config) *NewsScraperClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "news_scraper")
	cache := NewCacheManager(cacheDir, 2*time.Hour, cfg.CacheEnabled)

	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; tradedesk/1.0)")

	return &NewsScraperClient{client: client, cache: cache}
}

// GetGoogleNews searches Google News for a query and returns up to
// maxResults articles.
func (ns *NewsScraperClient) GetGoogleNews(query string, maxResults int) ([]*models.NewsArticle, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if maxResults <= 0 {
		maxResults = 20
	}

	cacheKey := map[string]any{"query": query, "max": maxResults}
	var cached []*models.NewsArticle
	if ns.cache.Get("google_news", "search", cacheKey, &cached) {
		return cached, nil
	}

	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en&gl=US&ceid=US:en",
		url.QueryEscape(query))

	var result []*models.NewsArticle
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := ns.client.R().Get(searchURL)
		if err != nil {
			return fmt.Errorf("failed to fetch Google News: %w", err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching Google News", resp.StatusCode())
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
		if err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}

		result = parseGoogleNewsHTML(doc)
		if len(result) > maxResults {
			result = result[:maxResults]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ns.cache.Set("google_news", "search", cacheKey, result)
	return result, nil
}

func parseGoogleNewsHTML(doc *goquery.Document) []*models.NewsArticle {
	var articles []*models.NewsArticle

	doc.Find("article").Each(func(i int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("h4").Text())
		}
		if title == "" {
			return
		}

		link := s.Find("a").First()
		href, exists := link.Attr("href")
		if !exists {
			return
		}

		source := strings.TrimSpace(s.Find("div[data-n-tid]").Text())
		if source == "" {
			source = "Google News"
		}

		articles = append(articles, &models.NewsArticle{
			Title:       title,
			Summary:     strings.TrimSpace(s.Find("span").Last().Text()),
			URL:         cleanGoogleNewsURL(href),
			Source:      source,
			PublishedAt: time.Now(),
		})
	})

	return articles
}

// cleanGoogleNewsURL unwraps Google News redirect links and makes
// relative URLs absolute.
func cleanGoogleNewsURL(googleURL string) string {
	if strings.Contains(googleURL, "url=") {
		parts := strings.Split(googleURL, "url=")
		if len(parts) > 1 {
			if decoded, err := url.QueryUnescape(parts[1]); err == nil {
				return decoded
			}
		}
	}
	if strings.HasPrefix(googleURL, "./") {
		return "https://news.google.com" + googleURL[1:]
	}
	if strings.HasPrefix(googleURL, "/") {
		return "https://news.google.com" + googleURL
	}
	return googleURL
}
