// Package news fetches recent finance headlines for a symbol. It backs the
// optional `headlines` capability so market-data questions can be answered
// with context beyond quotes.
package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"ib-assistant/internal/logger"
)

// Headline is one scraped article reference.
type Headline struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Source describes one site to scrape.
type Source struct {
	Name       string
	BaseURL    string
	SearchPath string // {symbol} is replaced with the uppercased symbol
	Selectors  Selectors
	RateLimit  time.Duration
}

// Selectors are the CSS selectors locating headline links on a source.
type Selectors struct {
	Container string
	Title     string
	Link      string
}

type Scraper struct {
	sources []Source
	timeout time.Duration
}

// NewScraper creates a scraper with the default finance sources.
func NewScraper(timeout time.Duration) *Scraper {
	return NewScraperWithSources(timeout, defaultSources())
}

// NewScraperWithSources creates a scraper against explicit sources.
func NewScraperWithSources(timeout time.Duration, sources []Source) *Scraper {
	return &Scraper{sources: sources, timeout: timeout}
}

func defaultSources() []Source {
	return []Source{
		{
			Name:       "YahooFinance",
			BaseURL:    "https://finance.yahoo.com",
			SearchPath: "/quote/{symbol}/news",
			Selectors: Selectors{
				Container: "li.stream-item",
				Title:     "h3",
				Link:      "a",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:       "MarketWatch",
			BaseURL:    "https://www.marketwatch.com",
			SearchPath: "/investing/stock/{symbol}",
			Selectors: Selectors{
				Container: "div.article__content",
				Title:     "h3.article__headline",
				Link:      "a.link",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// Headlines fetches up to limit headlines for the symbol across all sources.
// A source that fails is skipped; an error is returned only when every
// source failed.
func (s *Scraper) Headlines(ctx context.Context, symbol string, limit int) ([]Headline, error) {
	if limit < 1 {
		limit = 1
	}

	perSource := limit / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	var all []Headline
	var lastErr error
	for i, source := range s.sources {
		if ctx.Err() != nil {
			return all, ctx.Err()
		}

		found, err := s.scrapeSource(ctx, source, symbol, perSource)
		if err != nil {
			logger.Warn(ctx, "Headline source failed", "source", source.Name, "error", err)
			lastErr = err
			continue
		}
		all = append(all, found...)
		if len(all) >= limit {
			all = all[:limit]
			break
		}

		if i < len(s.sources)-1 {
			time.Sleep(source.RateLimit)
		}
	}

	if len(all) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all headline sources failed: %w", lastErr)
	}
	return all, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, source Source, symbol string, limit int) ([]Headline, error) {
	var headlines []Headline

	c := colly.NewCollector(colly.MaxDepth(1), colly.Async(false))
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	c.OnHTML(source.Selectors.Container, func(e *colly.HTMLElement) {
		if len(headlines) >= limit {
			return
		}

		title := headlineTitle(e.DOM, source.Selectors.Title)
		if title == "" {
			return
		}

		link, _ := e.DOM.Find(source.Selectors.Link).Attr("href")
		if link == "" {
			return
		}
		if !strings.HasPrefix(link, "http") {
			link = source.BaseURL + link
		}

		headlines = append(headlines, Headline{Title: title, URL: link, Source: source.Name})
	})

	url := source.BaseURL + strings.ReplaceAll(source.SearchPath, "{symbol}", strings.ToUpper(symbol))
	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("visit %s: %w", url, err)
	}
	c.Wait()

	return headlines, nil
}

// headlineTitle extracts and normalizes the first matching title text.
func headlineTitle(sel *goquery.Selection, titleSelector string) string {
	text := sel.Find(titleSelector).First().Text()
	return strings.Join(strings.Fields(text), " ")
}
