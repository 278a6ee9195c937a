package collector

import (
	"fmt"
	"os"

	"github.com/halverson/reddit-user-crawler/internal/domain"
)

// NewCollector selects the correct implementation based on CRAWLER_MODE.
// The default is the authenticated API client.
func NewCollector(creds domain.Credentials) (domain.Collector, error) {
	mode := os.Getenv("CRAWLER_MODE")

	switch mode {
	case "", "api":
		return NewAPIClient(creds)
	case "public":
		return NewPublicClient(creds.UserAgent)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown CRAWLER_MODE: %s (use 'api', 'public', or 'mock')", mode)
	}
}
