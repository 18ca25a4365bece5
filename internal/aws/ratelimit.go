package aws

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/support"
	"github.com/aws/smithy-go"
	"golang.org/x/time/rate"
)

// RateLimitedClient wraps the Support API with rate limiting and error classification
type RateLimitedClient struct {
	client  SupportAPI
	limiter *rate.Limiter
	region  string
}

// NewRateLimitedClient creates a new rate-limited client.
// Trusted Advisor throttles refresh requests well below the general API limits.
func NewRateLimitedClient(client SupportAPI, region string) *RateLimitedClient {
	limiter := rate.NewLimiter(rate.Limit(2), 2)

	return &RateLimitedClient{
		client:  client,
		limiter: limiter,
		region:  region,
	}
}

// RefreshTrustedAdvisorCheck implements SupportAPI with rate limiting
func (r *RateLimitedClient) RefreshTrustedAdvisorCheck(ctx context.Context, params *support.RefreshTrustedAdvisorCheckInput, optFns ...func(*support.Options)) (*support.RefreshTrustedAdvisorCheckOutput, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}

	output, err := r.client.RefreshTrustedAdvisorCheck(ctx, params, optFns...)
	return output, r.handleError(err)
}

// DescribeTrustedAdvisorCheckResult implements SupportAPI with rate limiting
func (r *RateLimitedClient) DescribeTrustedAdvisorCheckResult(ctx context.Context, params *support.DescribeTrustedAdvisorCheckResultInput, optFns ...func(*support.Options)) (*support.DescribeTrustedAdvisorCheckResultOutput, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}

	output, err := r.client.DescribeTrustedAdvisorCheckResult(ctx, params, optFns...)
	return output, r.handleError(err)
}

func (r *RateLimitedClient) wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return &Error{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit context cancelled",
			Cause:   err,
		}
	}
	return nil
}

// handleError converts AWS errors to our custom error types
func (r *RateLimitedClient) handleError(err error) error {
	if err == nil {
		return nil
	}

	var awsErr smithy.APIError
	if errors.As(err, &awsErr) {
		switch awsErr.ErrorCode() {
		case "AccessDenied", "AccessDeniedException", "SubscriptionRequiredException",
			"ExpiredToken", "ExpiredTokenException", "UnrecognizedClientException", "InvalidClientTokenId":
			return &Error{
				Type:    ErrorTypePermission,
				Message: "insufficient AWS permissions",
				Cause:   err,
			}
		case "Throttling", "ThrottlingException", "TooManyRequestsException":
			return &Error{
				Type:    ErrorTypeRateLimit,
				Message: "AWS API rate limit exceeded",
				Cause:   err,
			}
		case "InvalidParameterValueException":
			if strings.Contains(awsErr.ErrorMessage(), "region") {
				return &Error{
					Type:    ErrorTypeInvalidRegion,
					Message: "invalid AWS region: " + r.region,
					Cause:   err,
				}
			}
			return &Error{
				Type:    ErrorTypeInvalidInput,
				Message: "invalid Trusted Advisor request",
				Cause:   err,
			}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{
			Type:    ErrorTypeNetwork,
			Message: "request timeout or cancelled",
			Cause:   err,
		}
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "no such host") ||
		strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "timeout") {
		return &Error{
			Type:    ErrorTypeNetwork,
			Message: "network connectivity issue",
			Cause:   err,
		}
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return err
	}

	return &Error{
		Type:    ErrorTypeUnknown,
		Message: "unexpected AWS API error",
		Cause:   err,
	}
}
