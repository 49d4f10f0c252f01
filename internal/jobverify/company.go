package jobverify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/proconnect/trust-engine/internal/ai"
	"github.com/proconnect/trust-engine/internal/memo"
)

const (
	fetchTimeout    = 5 * time.Second
	fetchUserAgent  = "ProConnect-AI-Verification-Bot/1.0"
	maxPageBytes    = 1 << 20
	minAIConfidence = 0.7
)

// PageFetcher retrieves a company website for content matching.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Registry answers lookups against a known-company list.
type Registry interface {
	LookupKnownCompany(name string) (*CompanyData, bool)
}

// CompanyVerifier resolves whether a company exists using three best-effort
// paths in priority order: website content match, known-company lookup, AI
// opinion. Results are memoized by company name for the process lifetime.
type CompanyVerifier struct {
	fetcher   PageFetcher
	registry  Registry
	generator ai.Generator
	cache     *memo.Cache
	logger    *zap.Logger
}

// NewCompanyVerifier creates a verifier. Any dependency may be nil; its path
// is then skipped.
func NewCompanyVerifier(fetcher PageFetcher, registry Registry, generator ai.Generator, cache *memo.Cache, logger *zap.Logger) *CompanyVerifier {
	if cache == nil {
		cache = memo.NewCache(0)
	}
	return &CompanyVerifier{
		fetcher:   fetcher,
		registry:  registry,
		generator: generator,
		cache:     cache,
		logger:    logger,
	}
}

// Verify reports whether the company appears to exist, with the resolved
// record when a path produced one. Every path is best-effort: a failure
// falls through to the next method instead of failing the evaluation.
func (v *CompanyVerifier) Verify(ctx context.Context, name, url string) (bool, *CompanyData) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	if exists, ok := v.cache.GetBool(name); ok {
		return exists, nil
	}

	if url != "" && v.fetcher != nil {
		if v.websiteMatches(ctx, url, name) {
			v.cache.Set(name, true)
			return true, &CompanyData{Name: name, Website: url, Verified: true}
		}
	}

	if v.registry != nil {
		if data, ok := v.registry.LookupKnownCompany(name); ok {
			v.cache.Set(name, true)
			return true, data
		}
	}

	exists := v.aiOpinion(ctx, name)
	v.cache.Set(name, exists)

	if !exists {
		return false, nil
	}
	return true, &CompanyData{Name: name, Verified: false}
}

// websiteMatches fetches the company URL and checks whether the company
// name appears in the page title or meta description.
func (v *CompanyVerifier) websiteMatches(ctx context.Context, url, name string) bool {
	page, err := v.fetcher.FetchPage(ctx, url)
	if err != nil {
		if v.logger != nil {
			v.logger.Warn("failed to verify company website",
				zap.String("url", url),
				zap.Error(err),
			)
		}
		return false
	}

	title, description := extractTitleAndDescription(page)
	lowerName := strings.ToLower(name)

	return strings.Contains(strings.ToLower(title), lowerName) ||
		strings.Contains(strings.ToLower(description), lowerName)
}

func (v *CompanyVerifier) aiOpinion(ctx context.Context, name string) bool {
	if v.generator == nil {
		return false
	}

	opinion, err := ai.AssessCompany(ctx, v.generator, name)
	if err != nil {
		if v.logger != nil {
			v.logger.Warn("ai company verification failed",
				zap.String("company", name),
				zap.Error(err),
			)
		}
		return false
	}

	return opinion.Legitimate && opinion.Confidence > minAIConfidence
}

// extractTitleAndDescription pulls <title> text and the description meta
// tag out of an HTML document. Parse errors yield empty results.
func extractTitleAndDescription(page string) (title, description string) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", ""
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var name, content string
				for _, attr := range n.Attr {
					switch strings.ToLower(attr.Key) {
					case "name":
						name = strings.ToLower(attr.Val)
					case "content":
						content = attr.Val
					}
				}
				if name == "description" {
					description = strings.TrimSpace(content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, description
}

// HTTPFetcher fetches pages with a short fixed timeout and an identifying
// User-Agent.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates an HTTPFetcher with the default timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: fetchTimeout},
		userAgent: fetchUserAgent,
	}
}

// FetchPage retrieves the page body, bounded to a sane size.
func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// majorCompanies stands in for a comprehensive company database.
var majorCompanies = []string{
	"Google", "Microsoft", "Apple", "Amazon", "Meta", "Netflix",
	"Tesla", "IBM", "Oracle", "Salesforce", "Adobe", "Intel",
}

// StaticRegistry matches company names against the built-in list.
type StaticRegistry struct{}

// LookupKnownCompany reports a match when the name contains a known company.
func (StaticRegistry) LookupKnownCompany(name string) (*CompanyData, bool) {
	normalized := strings.ToLower(name)
	for _, company := range majorCompanies {
		if strings.Contains(normalized, strings.ToLower(company)) {
			return &CompanyData{Name: name, Verified: true, Industry: "Technology"}, true
		}
	}
	return nil, false
}
