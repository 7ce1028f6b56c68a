package source

import (
	"strings"

	"github.com/mkravets/citecheck/internal/model"
	"github.com/mkravets/citecheck/internal/util"
)

const searchMaxBytes = 2 << 20

func newSearchAdapter(name string, priority int, endpointPath string, cfg model.AdapterConfig, httpCfg model.HTTPConfig, robots *util.RobotsChecker) *SearchAdapter {
	return &SearchAdapter{
		name:      name,
		priority:  priority,
		endpoint:  strings.TrimRight(cfg.BaseURL, "/") + endpointPath,
		client:    newHTTPClient(httpCfg),
		robots:    robots,
		userAgent: httpCfg.UserAgent,
		maxBytes:  searchMaxBytes,
	}
}

// NewScholar is the scholarly-search fallback, consulted when the
// authoritative source reports NotFound.
func NewScholar(cfg model.AdapterConfig, httpCfg model.HTTPConfig, robots *util.RobotsChecker) *SearchAdapter {
	return newSearchAdapter("scholar", 2, "/scholar?hl=en&q=%s", cfg, httpCfg, robots)
}

// NewWebSearch is the general web-search fallback.
func NewWebSearch(cfg model.AdapterConfig, httpCfg model.HTTPConfig, robots *util.RobotsChecker) *SearchAdapter {
	return newSearchAdapter("websearch", 3, "/search?q=%s", cfg, httpCfg, robots)
}

// NewPrivacySearch is the last-resort privacy-search fallback.
func NewPrivacySearch(cfg model.AdapterConfig, httpCfg model.HTTPConfig, robots *util.RobotsChecker) *SearchAdapter {
	return newSearchAdapter("privacysearch", 4, "/html/?q=%s", cfg, httpCfg, robots)
}
