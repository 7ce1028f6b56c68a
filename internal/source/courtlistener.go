package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mkravets/citecheck/internal/cite"
	"github.com/mkravets/citecheck/internal/model"
)

// CourtListener is the authoritative structured case-law lookup. When it
// returns a hit no further adapter is consulted.
type CourtListener struct {
	client    *http.Client
	baseURL   string
	token     string
	userAgent string
}

// NewCourtListener builds the adapter from its config section.
func NewCourtListener(cfg model.AdapterConfig, httpCfg model.HTTPConfig) *CourtListener {
	return &CourtListener{
		client:    newHTTPClient(httpCfg),
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		token:     cfg.APIKey,
		userAgent: httpCfg.UserAgent,
	}
}

// Name implements Adapter.
func (a *CourtListener) Name() string { return "courtlistener" }

// Priority implements Adapter.
func (a *CourtListener) Priority() int { return 1 }

// lookupResponse mirrors the citation-lookup endpoint's shape; only the
// fields we consume are declared.
type lookupResponse []struct {
	Citation string `json:"citation"`
	Status   int    `json:"status"`
	Clusters []struct {
		CaseName    string `json:"case_name"`
		DateFiled   string `json:"date_filed"`
		Court       string `json:"court"`
		AbsoluteURL string `json:"absolute_url"`
	} `json:"clusters"`
}

// Resolve posts the cluster's citations to the citation-lookup endpoint.
func (a *CourtListener) Resolve(ctx context.Context, cluster *model.CitationCluster) (*model.CanonicalResult, error) {
	var texts []string
	for _, c := range cluster.Citations {
		texts = append(texts, cite.NormalizeCitation(c))
	}
	form := url.Values{"text": {strings.Join(texts, "; ")}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/api/rest/v4/citation-lookup/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &PermanentError{Source: a.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", a.userAgent)
	if a.token != "" {
		req.Header.Set("Authorization", "Token "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &TransientError{Source: a.Name(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(a.Name(), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &TransientError{Source: a.Name(), Err: err}
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &PermanentError{Source: a.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}

	for _, hit := range parsed {
		for _, cl := range hit.Clusters {
			if cl.CaseName == "" {
				continue
			}
			res := &model.CanonicalResult{
				CaseName:      cl.CaseName,
				Date:          cl.DateFiled,
				Court:         cl.Court,
				Source:        a.Name(),
				Authoritative: true,
			}
			if cl.AbsoluteURL != "" {
				res.URL = a.baseURL + cl.AbsoluteURL
			}
			return res, nil
		}
	}
	return nil, ErrNotFound
}
