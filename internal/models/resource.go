package models

import "fmt"

// FlaggedResource is one row of the Auto Scaling Group Resources check result
type FlaggedResource struct {
	Region                  string `json:"region"`
	AutoScalingGroupName    string `json:"autoScalingGroupName"`
	LaunchConfigurationName string `json:"launchConfigurationName"`
	ResourceType            string `json:"resourceType"`
	ResourceName            string `json:"resourceName"`
	Status                  string `json:"status"`
	Reason                  string `json:"reason"`
}

// Describe renders the resource as a single problem line
func (r FlaggedResource) Describe() string {
	return fmt.Sprintf("%s (%s) launch configuration %s missing %s %s: %s",
		r.AutoScalingGroupName,
		r.Region,
		r.LaunchConfigurationName,
		r.ResourceType,
		r.ResourceName,
		r.Reason,
	)
}

// CheckRequest identifies the advisory check to query
type CheckRequest struct {
	CheckID       string
	Language      string
	HealthyStatus string
}
