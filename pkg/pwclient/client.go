package pwclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/prosperworks/internal/client"
	"github.com/fivetwenty-io/prosperworks/internal/constants"
	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

// New creates a ProsperWorks client from config. Missing credentials are not
// an error here: every request made without them fails with
// prosperworks.ErrNotConfigured.
func New(ctx context.Context, config *prosperworks.Config) (prosperworks.Client, error) {
	if config == nil {
		config = &prosperworks.Config{}
	}

	normalized := *config
	normalized.Email = strings.TrimSpace(normalized.Email)
	normalized.AccessToken = strings.TrimSpace(normalized.AccessToken)

	if normalized.APIVersion == "" {
		normalized.APIVersion = constants.DefaultAPIVersion
	}

	if normalized.CacheLife <= 0 {
		normalized.CacheLife = constants.DefaultCacheLife
	}

	if normalized.HTTPTimeout <= 0 {
		normalized.HTTPTimeout = constants.DefaultHTTPTimeout
	}

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithCredentials creates a client for an access token and user email with
// default settings.
func NewWithCredentials(ctx context.Context, accessToken, email string) (prosperworks.Client, error) {
	return New(ctx, &prosperworks.Config{
		AccessToken: accessToken,
		Email:       email,
	})
}
