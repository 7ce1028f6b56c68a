package source

import (
	"fmt"
	"net/http"

	"github.com/mkravets/citecheck/internal/model"
	"github.com/mkravets/citecheck/internal/util"
)

// newHTTPClient builds the outbound client all adapters share the shape
// of: bounded timeout, proxy support, capped redirects.
func newHTTPClient(cfg model.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}
}
