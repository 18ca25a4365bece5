package checker

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/support/types"
	"github.com/aws/smithy-go"
	awsclient "github.com/guikcd/sensu-plugins-aws/internal/aws"
	"github.com/guikcd/sensu-plugins-aws/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	criticalPrefix = "ASG resources not found: "
	unknownPrefix  = "An error occurred processing AWS TrustedAdvisor API: "
)

// AWSClient defines the interface for AWS operations needed by the runner
type AWSClient interface {
	RefreshCheck(ctx context.Context, checkID string) (*types.TrustedAdvisorCheckRefreshStatus, error)
	GetCheckResult(ctx context.Context, checkID, language string) (*types.TrustedAdvisorCheckResult, error)
}

// Runner refreshes a Trusted Advisor check, fetches its result and reports
// every resource that is not in the healthy state.
type Runner struct {
	client     AWSClient
	request    models.CheckRequest
	ruleEngine *RuleEngine
	log        logrus.FieldLogger
}

// NewRunner creates a new check runner
func NewRunner(client AWSClient, request models.CheckRequest) *Runner {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	return &Runner{
		client:     client,
		request:    request,
		ruleEngine: NewRuleEngine(request.HealthyStatus),
		log:        silent,
	}
}

// WithLogger sets the logger used for debug output
func (r *Runner) WithLogger(log logrus.FieldLogger) *Runner {
	r.log = log.WithFields(logrus.Fields{
		"check_id": r.request.CheckID,
		"language": r.request.Language,
	})
	return r
}

// Run performs the check. Errors never escape: they become an UNKNOWN outcome.
func (r *Runner) Run(ctx context.Context) models.CheckOutcome {
	flagged, err := r.collect(ctx)
	if err != nil {
		outcome := ErrorOutcome(err)
		r.log.WithError(err).WithField("error_type", outcome.ErrorType).Debug("check failed")
		return outcome
	}

	if len(flagged) == 0 {
		r.log.Debug("no unhealthy resources")
		return models.OK()
	}

	problems := make([]string, 0, len(flagged))
	for _, resource := range flagged {
		problems = append(problems, resource.Describe())
	}

	return models.Critical(criticalPrefix+strings.Join(problems, ", "), problems, flagged)
}

// collect returns the unhealthy resources in API order
func (r *Runner) collect(ctx context.Context) ([]models.FlaggedResource, error) {
	checkID := r.request.CheckID

	status, err := r.client.RefreshCheck(ctx, checkID)
	if err != nil {
		return nil, NewCheckError(checkID, "refresh", err)
	}
	if status != nil {
		r.log.WithField("refresh_status", aws.ToString(status.Status)).Debug("check refresh requested")
	}

	result, err := r.client.GetCheckResult(ctx, checkID, r.request.Language)
	if err != nil {
		return nil, NewCheckError(checkID, "describe result", err)
	}

	resources, err := parseFlaggedResources(result)
	if err != nil {
		return nil, NewCheckError(checkID, "parse result", err)
	}
	r.log.WithFields(logrus.Fields{
		"result_status": aws.ToString(result.Status),
		"flagged":       len(resources),
	}).Debug("check result fetched")

	var unhealthy []models.FlaggedResource
	for _, resource := range resources {
		flagged, reasons := r.ruleEngine.Evaluate(resource)
		if !flagged {
			continue
		}
		r.log.WithFields(logrus.Fields{
			"asg":     resource.AutoScalingGroupName,
			"reasons": reasons,
		}).Debug("resource flagged")
		unhealthy = append(unhealthy, resource)
	}

	return unhealthy, nil
}

// ErrorOutcome converts a failure talking to Trusted Advisor into an UNKNOWN
// outcome tagged with the AWS error class, if one was assigned
func ErrorOutcome(err error) models.CheckOutcome {
	var errorType string
	var awsErr *awsclient.Error
	if errors.As(err, &awsErr) {
		errorType = string(awsErr.Type)
	}
	return models.UnknownWithType(unknownPrefix+errorText(err), errorType)
}

// errorText extracts the message of the underlying failure. Only this
// module's own wrappers are peeled off; SDK and network errors keep their
// full text. Service errors report their own message.
func errorText(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}

	for {
		switch e := err.(type) {
		case *CheckError:
			if e.Cause == nil {
				return e.Error()
			}
			err = e.Cause
		case *awsclient.Error:
			if e.Cause == nil {
				return e.Message
			}
			err = e.Cause
		default:
			return err.Error()
		}
	}
}
