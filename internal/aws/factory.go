package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/support"
)

// CreateClient creates a real AWS Support client with authentication and
// rate limiting applied
func CreateClient(ctx context.Context, auth AuthConfig) (*Client, error) {
	if auth.Region == "" {
		auth.Region = SupportRegion
	}

	cfg, err := loadBaseConfig(ctx, auth)
	if err != nil {
		return nil, err
	}

	if auth.AssumeRole != nil {
		cfg = applyAssumeRole(cfg, auth.AssumeRole)
	}

	supportClient := support.NewFromConfig(cfg)

	return NewClient(NewRateLimitedClient(supportClient, auth.Region), auth.Region), nil
}
