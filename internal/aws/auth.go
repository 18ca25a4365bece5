package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// SupportRegion is the only region serving the AWS Support API in the
// commercial partition.
const SupportRegion = "us-east-1"

// AuthConfig holds authentication configuration
type AuthConfig struct {
	Profile string
	Region  string

	AssumeRole *AssumeRoleCredentials
}

// AssumeRoleCredentials holds AssumeRole-specific configuration
type AssumeRoleCredentials struct {
	RoleARN     string
	SessionName string
	Duration    int32
	ExternalID  string
}

func validateAuthConfig(authConfig AuthConfig) error {
	if authConfig.Region == "" {
		return &Error{
			Type:    ErrorTypeInvalidRegion,
			Message: "region is required",
		}
	}
	return nil
}

// loadBaseConfig loads the base AWS configuration without AssumeRole
func loadBaseConfig(ctx context.Context, authConfig AuthConfig) (aws.Config, error) {
	if err := validateAuthConfig(authConfig); err != nil {
		return aws.Config{}, err
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(authConfig.Region),
	}

	// The default profile is resolved by the SDK itself, including AWS_PROFILE
	if authConfig.Profile != "" && authConfig.Profile != "default" {
		opts = append(opts, config.WithSharedConfigProfile(authConfig.Profile))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, &Error{
			Type:    ErrorTypePermission,
			Message: fmt.Sprintf("failed to load AWS config for profile '%s' in region '%s'", authConfig.Profile, authConfig.Region),
			Cause:   err,
		}
	}

	return awsConfig, nil
}

// applyAssumeRole applies AssumeRole configuration to the AWS config
func applyAssumeRole(awsConfig aws.Config, roleConfig *AssumeRoleCredentials) aws.Config {
	stsClient := sts.NewFromConfig(awsConfig)

	provider := stscreds.NewAssumeRoleProvider(stsClient, roleConfig.RoleARN, func(o *stscreds.AssumeRoleOptions) {
		o.RoleSessionName = roleConfig.SessionName
		o.Duration = time.Duration(roleConfig.Duration) * time.Second
		if roleConfig.ExternalID != "" {
			o.ExternalID = aws.String(roleConfig.ExternalID)
		}
	})

	assumedConfig := awsConfig.Copy()
	assumedConfig.Credentials = aws.NewCredentialsCache(provider)

	return assumedConfig
}
