package llm

import (
	"fmt"

	"github.com/mkravets/citecheck/internal/model"
)

// NewProvider builds the configured provider. An empty provider name
// disables summaries and returns (nil, nil).
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
