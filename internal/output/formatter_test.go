package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/guikcd/sensu-plugins-aws/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func criticalOutcome() models.CheckOutcome {
	resource := models.FlaggedResource{
		Region:                  "us-east-1",
		AutoScalingGroupName:    "my-asg",
		LaunchConfigurationName: "lc1",
		ResourceType:            "InstanceType",
		ResourceName:            "m1.small",
		Status:                  "Yellow",
		Reason:                  "Deprecated",
	}
	line := resource.Describe()
	return models.Critical("ASG resources not found: "+line, []string{line}, []models.FlaggedResource{resource})
}

func TestPluginFormatter_Format(t *testing.T) {
	formatter := &PluginFormatter{}

	tests := []struct {
		name     string
		outcome  models.CheckOutcome
		expected string
	}{
		{
			name:     "ok without message",
			outcome:  models.OK(),
			expected: "OK",
		},
		{
			name:     "critical with flagged resource",
			outcome:  criticalOutcome(),
			expected: "CRITICAL: ASG resources not found: my-asg (us-east-1) launch configuration lc1 missing InstanceType m1.small: Deprecated",
		},
		{
			name:     "unknown with error",
			outcome:  models.Unknown("An error occurred processing AWS TrustedAdvisor API: expired token"),
			expected: "UNKNOWN: An error occurred processing AWS TrustedAdvisor API: expired token",
		},
		{
			name:     "warning severity",
			outcome:  models.CheckOutcome{Status: models.StatusWarning, Message: "something"},
			expected: "WARNING: something",
		},
		{
			name:     "multi-line message is kept on one line",
			outcome:  models.Unknown("first\nsecond\r\nthird"),
			expected: "UNKNOWN: first\\nsecond\\r\\nthird",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := formatter.Format(tt.outcome)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, output)
			assert.False(t, strings.Contains(output, "\n"))
		})
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	formatter := &JSONFormatter{}

	t.Run("critical outcome", func(t *testing.T) {
		output, err := formatter.Format(criticalOutcome())
		require.NoError(t, err)

		assert.False(t, strings.Contains(output, "\n"))

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(output), &decoded))
		assert.Equal(t, "CRITICAL", decoded["status"])
		assert.Equal(t, float64(2), decoded["exitCode"])
		assert.Contains(t, decoded["output"], "CRITICAL: ASG resources not found: my-asg")
		assert.Len(t, decoded["problems"], 1)
		assert.Contains(t, output, `"autoScalingGroupName":"my-asg"`)
	})

	t.Run("ok outcome has empty arrays", func(t *testing.T) {
		output, err := formatter.Format(models.OK())
		require.NoError(t, err)

		assert.Contains(t, output, `"status":"OK"`)
		assert.Contains(t, output, `"exitCode":0`)
		assert.Contains(t, output, `"problems":[]`)
		assert.Contains(t, output, `"resources":[]`)
	})

	t.Run("unknown outcome", func(t *testing.T) {
		output, err := formatter.Format(models.Unknown("boom"))
		require.NoError(t, err)

		assert.Contains(t, output, `"status":"UNKNOWN"`)
		assert.Contains(t, output, `"exitCode":3`)
		assert.Contains(t, output, `"output":"UNKNOWN: boom"`)
		assert.NotContains(t, output, `"errorType"`)
	})

	t.Run("unknown outcome with error type", func(t *testing.T) {
		output, err := formatter.Format(models.UnknownWithType("Rate exceeded", "RATE_LIMIT"))
		require.NoError(t, err)

		assert.Contains(t, output, `"errorType":"RATE_LIMIT"`)
		assert.Contains(t, output, `"output":"UNKNOWN: Rate exceeded"`)
	})
}

func TestFormatterFactory(t *testing.T) {
	tests := []struct {
		format      string
		expectType  Formatter
		expectError bool
	}{
		{format: "plugin", expectType: &PluginFormatter{}},
		{format: "json", expectType: &JSONFormatter{}},
		{format: "tsv", expectError: true},
		{format: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			formatter, err := FormatterFactory(tt.format)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported output format")
				assert.Nil(t, formatter)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.expectType, formatter)
		})
	}
}
