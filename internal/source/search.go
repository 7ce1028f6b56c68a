package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/mkravets/citecheck/internal/cite"
	"github.com/mkravets/citecheck/internal/model"
	"github.com/mkravets/citecheck/internal/util"
)

// SearchAdapter resolves citations by scraping a search engine's HTML
// results. One type serves the scholarly, general, and privacy fallbacks;
// only the endpoint shape and priority differ.
type SearchAdapter struct {
	name      string
	priority  int
	endpoint  string // printf template receiving the escaped query
	client    *http.Client
	robots    *util.RobotsChecker
	userAgent string
	maxBytes  int64
}

// Name implements Adapter.
func (a *SearchAdapter) Name() string { return a.name }

// Priority implements Adapter.
func (a *SearchAdapter) Priority() int { return a.priority }

// searchResult is one extracted organic result.
type searchResult struct {
	title string
	href  string
}

// Resolve queries the engine for the cluster's case name and citation and
// accepts the first result that looks like a case-law record.
func (a *SearchAdapter) Resolve(ctx context.Context, cluster *model.CitationCluster) (*model.CanonicalResult, error) {
	query := buildQuery(cluster)
	searchURL := fmt.Sprintf(a.endpoint, url.QueryEscape(query))

	if a.robots != nil {
		allowed, delay, _ := a.robots.CanFetch(ctx, searchURL)
		if !allowed {
			return nil, &PermanentError{Source: a.name, Err: fmt.Errorf("disallowed by robots.txt")}
		}
		if delay > 0 {
			select {
			case <-ctx.Done():
				return nil, &TransientError{Source: a.name, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, &PermanentError{Source: a.name, Err: err}
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &TransientError{Source: a.name, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(a.name, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, a.maxBytes))
	if err != nil {
		return nil, &TransientError{Source: a.name, Err: fmt.Errorf("parse results: %w", err)}
	}

	own, _ := url.Parse(searchURL)
	results := collectResults(doc, own.Host)
	normalized := cite.NormalizeCitation(cluster.Primary)

	for _, r := range results {
		if !looksLikeCase(r.title, normalized) {
			continue
		}
		return &model.CanonicalResult{
			CaseName: cleanTitle(r.title),
			Date:     yearIn(r.title),
			Source:   a.name,
			URL:      r.href,
		}, nil
	}
	return nil, ErrNotFound
}

// buildQuery quotes the case name (when extracted) and the normalized
// citation so engines match the exact reporter string.
func buildQuery(cluster *model.CitationCluster) string {
	normalized := cite.NormalizeCitation(cluster.Primary)
	if name := cluster.CaseName(); name != "" {
		return fmt.Sprintf("%q %q", name, normalized)
	}
	return fmt.Sprintf("%q", normalized)
}

// collectResults walks the parsed page for outbound anchors with visible
// text. Engine-internal links (same host, relative paths, javascript) are
// skipped; redirect wrappers are unwrapped when the target is a query
// parameter.
func collectResults(doc *html.Node, ownHost string) []searchResult {
	var out []searchResult
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attr(n, "href")
			if target, ok := outboundTarget(href, ownHost); ok {
				title := strings.TrimSpace(nodeText(n))
				if title != "" {
					out = append(out, searchResult{title: title, href: target})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

// outboundTarget validates an anchor target and unwraps engine redirect
// parameters ("uddg", "u", "url", "q").
func outboundTarget(href, ownHost string) (string, bool) {
	if href == "" {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	for _, param := range []string{"uddg", "u", "url", "q"} {
		if wrapped := u.Query().Get(param); strings.HasPrefix(wrapped, "http") {
			if inner, err := url.Parse(wrapped); err == nil && inner.Host != "" && inner.Host != ownHost {
				return wrapped, true
			}
		}
	}
	if u.Host == "" || u.Host == ownHost {
		return "", false
	}
	return href, true
}

// looksLikeCase filters navigation links and ads: a usable result title
// mentions the citation or reads like a case name.
func looksLikeCase(title, normalized string) bool {
	if len(title) < 6 {
		return false
	}
	if strings.Contains(title, normalized) {
		return true
	}
	lower := strings.ToLower(title)
	return strings.Contains(lower, " v. ") || strings.Contains(lower, " v ") ||
		strings.HasPrefix(lower, "in re ") || strings.HasPrefix(lower, "matter of ")
}

// cleanTitle strips the site suffix search engines append to titles.
func cleanTitle(title string) string {
	for _, sep := range []string{" - ", " | ", " :: ", " — "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
		}
	}
	return strings.TrimSpace(title)
}

// yearIn pulls a four-digit year out of a result title, if present.
func yearIn(title string) string {
	for i := 0; i+4 <= len(title); i++ {
		c := title[i]
		if c != '1' && c != '2' {
			continue
		}
		if allDigits(title[i:i+4]) && (i+4 == len(title) || !isDigit(title[i+4])) && (i == 0 || !isDigit(title[i-1])) {
			return title[i : i+4]
		}
	}
	return ""
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
