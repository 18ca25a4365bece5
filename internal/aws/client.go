package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/support"
	"github.com/aws/aws-sdk-go-v2/service/support/types"
)

// SupportAPI defines the Trusted Advisor operations of the AWS Support service.
// This interface enables mocking for testing
type SupportAPI interface {
	RefreshTrustedAdvisorCheck(ctx context.Context, params *support.RefreshTrustedAdvisorCheckInput, optFns ...func(*support.Options)) (*support.RefreshTrustedAdvisorCheckOutput, error)
	DescribeTrustedAdvisorCheckResult(ctx context.Context, params *support.DescribeTrustedAdvisorCheckResultInput, optFns ...func(*support.Options)) (*support.DescribeTrustedAdvisorCheckResultOutput, error)
}

// Client wraps the AWS Support client with Trusted Advisor helpers
type Client struct {
	support SupportAPI
	region  string
}

// NewClient creates a new AWS client wrapper
func NewClient(api SupportAPI, region string) *Client {
	return &Client{
		support: api,
		region:  region,
	}
}

// RefreshCheck asks Trusted Advisor to recompute the given check so the next
// result fetch is not stale.
func (c *Client) RefreshCheck(ctx context.Context, checkID string) (*types.TrustedAdvisorCheckRefreshStatus, error) {
	output, err := c.support.RefreshTrustedAdvisorCheck(ctx, &support.RefreshTrustedAdvisorCheckInput{
		CheckId: aws.String(checkID),
	})
	if err != nil {
		return nil, err
	}

	return output.Status, nil
}

// GetCheckResult returns the latest result of the given check, with
// human-readable fields in the requested language.
func (c *Client) GetCheckResult(ctx context.Context, checkID, language string) (*types.TrustedAdvisorCheckResult, error) {
	input := &support.DescribeTrustedAdvisorCheckResultInput{
		CheckId: aws.String(checkID),
	}
	if language != "" {
		input.Language = aws.String(language)
	}

	output, err := c.support.DescribeTrustedAdvisorCheckResult(ctx, input)
	if err != nil {
		return nil, err
	}

	return output.Result, nil
}
