package checker

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/support/types"
	"github.com/guikcd/sensu-plugins-aws/internal/models"
)

// metadataFields is the column count of the Auto Scaling Group Resources check:
// region, group, launch configuration, resource type, resource name, status, reason
const metadataFields = 7

// parseFlaggedResources decodes the metadata rows of a check result in API order
func parseFlaggedResources(result *types.TrustedAdvisorCheckResult) ([]models.FlaggedResource, error) {
	if result == nil {
		return nil, &MalformedResponseError{Index: -1, Reason: "missing check result"}
	}

	resources := make([]models.FlaggedResource, 0, len(result.FlaggedResources))
	for i, detail := range result.FlaggedResources {
		resource, err := parseFlaggedResource(i, detail)
		if err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}

	return resources, nil
}

func parseFlaggedResource(index int, detail types.TrustedAdvisorResourceDetail) (models.FlaggedResource, error) {
	if len(detail.Metadata) != metadataFields {
		return models.FlaggedResource{}, &MalformedResponseError{
			Index:  index,
			Reason: fmt.Sprintf("expected %d metadata fields, got %d", metadataFields, len(detail.Metadata)),
		}
	}

	m := detail.Metadata
	return models.FlaggedResource{
		Region:                  m[0],
		AutoScalingGroupName:    m[1],
		LaunchConfigurationName: m[2],
		ResourceType:            m[3],
		ResourceName:            m[4],
		Status:                  m[5],
		Reason:                  m[6],
	}, nil
}
