package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/guikcd/sensu-plugins-aws/internal/aws"
	"github.com/guikcd/sensu-plugins-aws/internal/checker"
	"github.com/guikcd/sensu-plugins-aws/internal/config"
	"github.com/guikcd/sensu-plugins-aws/internal/log"
	"github.com/guikcd/sensu-plugins-aws/internal/models"
	"github.com/guikcd/sensu-plugins-aws/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// clientFactory builds the Trusted Advisor client for a validated configuration
type clientFactory func(ctx context.Context, cfg config.Config) (checker.AWSClient, error)

// cli carries the state of one invocation
type cli struct {
	v          *viper.Viper
	stdout     io.Writer
	stderr     io.Writer
	configFile string
	newClient  clientFactory
	exitCode   int
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{
		v:         config.NewViper(),
		stdout:    stdout,
		stderr:    stderr,
		newClient: createAWSClient,
	}
}

func main() {
	c := newCLI(os.Stdout, os.Stderr)

	if err := c.createRootCommand().Execute(); err != nil {
		// Flag parsing errors still follow the plugin output contract
		c.emit(models.Unknown(err.Error()), config.DefaultOutputFormat)
	}

	os.Exit(c.exitCode)
}

func (c *cli) createRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check_trustedadvisor_asg_resources",
		Short: "Check Auto Scaling Group resources with AWS Trusted Advisor",
		Long: `check_trustedadvisor_asg_resources refreshes the Trusted Advisor "Auto Scaling Group Resources"
check and reports CRITICAL for every launch configuration resource that is not healthy.
A resource is healthy when its status exactly matches --healthy-status, which defaults
to "Green" as returned by the AWS API.

Requires an AWS Business or Enterprise support plan and the AWSSupportAccess policy.
Exit codes follow the monitoring plugin convention: 0 OK, 2 CRITICAL, 3 UNKNOWN.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runCommand,
	}

	flags := cmd.Flags()
	flags.StringP(config.KeyLanguage, "l", config.DefaultLanguage, "ISO 639-1 language code for Trusted Advisor text (en, ja)")
	flags.StringP(config.KeyProfile, "p", "default", "AWS profile name")
	flags.StringP(config.KeyRegion, "r", config.DefaultRegion, "AWS Support endpoint region")
	flags.String(config.KeyCheckID, config.DefaultCheckID, "Trusted Advisor check ID")
	flags.String(config.KeyHealthyStatus, config.DefaultHealthyStatus, "Resource status considered healthy (exact match)")
	flags.StringP(config.KeyOutput, "o", config.DefaultOutputFormat, "Output format (plugin, json)")
	flags.Duration(config.KeyTimeout, config.DefaultTimeout, "Overall timeout for Trusted Advisor API calls")
	flags.BoolP(config.KeyVerbose, "v", false, "Write debug logs to stderr")
	flags.StringVarP(&c.configFile, "config", "c", "", "Config file (yaml, toml or json)")

	// AssumeRole flags
	flags.String(config.KeyAssumeRole, "", "ARN of the IAM role to assume")
	flags.String(config.KeySessionName, "check-trustedadvisor-asg-session", "Session name for the assumed role session")
	flags.Int32(config.KeyDuration, 3600, "Session duration in seconds (900-43200)")
	flags.String(config.KeyExternalID, "", "External ID for AssumeRole (required by some roles for security)")

	flags.SetNormalizeFunc(normalizeFlagName)

	// Binding only fails for a nil flag set
	_ = c.v.BindPFlags(flags)

	return cmd
}

// normalizeFlagName keeps the original --aws-language spelling working
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "aws-language" {
		name = config.KeyLanguage
	}
	return pflag.NormalizedName(name)
}

func (c *cli) runCommand(cmd *cobra.Command, args []string) error {
	if c.configFile != "" {
		if err := config.ReadFile(c.v, c.configFile); err != nil {
			c.emit(models.Unknown(err.Error()), config.DefaultOutputFormat)
			return nil
		}
	}

	cfg := config.FromViper(c.v)

	// Invalid settings are rejected before any network call
	if err := cfg.Validate(); err != nil {
		format := cfg.OutputFormat
		if !config.ValidateOutputFormat(format) {
			format = config.DefaultOutputFormat
		}
		c.emit(models.Unknown(err.Error()), format)
		return nil
	}

	logger := log.New(c.stderr, cfg.Verbose)
	logger.WithField("region", cfg.Region).Debug("starting Trusted Advisor check")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client, err := c.newClient(ctx, cfg)
	if err != nil {
		logger.WithError(err).Debug("failed to create AWS client")
		c.emit(checker.ErrorOutcome(err), cfg.OutputFormat)
		return nil
	}

	outcome := checker.NewRunner(client, cfg.Request()).WithLogger(logger).Run(ctx)
	c.emit(outcome, cfg.OutputFormat)
	return nil
}

// emit writes the single status line and records the exit code
func (c *cli) emit(outcome models.CheckOutcome, format string) {
	formatter, err := output.FormatterFactory(format)
	if err != nil {
		formatter = &output.PluginFormatter{}
	}

	line, err := formatter.Format(outcome)
	if err != nil {
		outcome = models.Unknown(err.Error())
		line, _ = (&output.PluginFormatter{}).Format(outcome)
	}

	fmt.Fprintln(c.stdout, line)
	c.exitCode = outcome.Status.ExitCode()
}

// createAWSClient creates an AWS Support client for the configured credentials
func createAWSClient(ctx context.Context, cfg config.Config) (checker.AWSClient, error) {
	auth := aws.AuthConfig{
		Profile: cfg.Profile,
		Region:  cfg.Region,
	}

	if cfg.AssumeRole != nil {
		auth.AssumeRole = &aws.AssumeRoleCredentials{
			RoleARN:     cfg.AssumeRole.RoleARN,
			SessionName: cfg.AssumeRole.SessionName,
			Duration:    cfg.AssumeRole.Duration,
			ExternalID:  cfg.AssumeRole.ExternalID,
		}
	}

	// Errors are already classified by the aws package and reported as-is
	client, err := aws.CreateClient(ctx, auth)
	if err != nil {
		return nil, err
	}

	return client, nil
}
