package survey

import (
	"strings"
	"testing"
	"time"

	"NYCU-SDC/photo-survey-backend/internal/fingerprint"

	"github.com/stretchr/testify/require"
)

func fieldValue(fields []SummaryField, title string) (string, bool) {
	for _, field := range fields {
		if field.Title == title {
			return field.Value, true
		}
	}
	return "", false
}

func TestSubmission_Summary(t *testing.T) {
	longAgent := "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
	visitor := fingerprint.Visitor{Fingerprint: "abc", IP: "203.0.113.7", UserAgent: longAgent}
	showcase := 4
	yes := true

	testCases := []struct {
		name     string
		summary  func() Summary
		validate func(t *testing.T, summary Summary)
	}{
		{
			name: "Photographer",
			summary: func() Summary {
				return NewSubmission(visitor, PhotographerAnswers{
					Specialty:        "Wedding",
					ExperienceYears:  "1-3",
					CurrentPlatforms: []string{"Instagram", "Flickr"},
					Interests:        &Interests{Showcase: &showcase},
				}, time.Now()).Summary()
			},
			validate: func(t *testing.T, summary Summary) {
				require.Equal(t, VariantPhotographer, summary.Variant)
				require.Equal(t, "📸 New Photographer Survey Submission", summary.Title)
				require.Equal(t, "New photographer survey from 203.0.113.7", summary.Text)
				require.False(t, summary.PairFields)

				platforms, ok := fieldValue(summary.Fields, "Current Platforms")
				require.True(t, ok)
				require.Equal(t, "Instagram, Flickr", platforms)

				interests, _ := fieldValue(summary.Fields, "Interests")
				require.Equal(t, "showcase: 4", interests)

				concerns, _ := fieldValue(summary.Fields, "Main Concerns")
				require.Equal(t, "None", concerns)

				require.Equal(t, []SummaryField{{Title: "Additional Notes", Value: "None provided"}}, summary.Notes)
			},
		},
		{
			name: "User",
			summary: func() Summary {
				return NewSubmission(visitor, UserAnswers{
					UsageFrequency:        "rarely",
					WillingToPay:          &yes,
					AgeRange:              "25-34",
					PlatformFeaturesOther: "dark mode",
				}, time.Now()).Summary()
			},
			validate: func(t *testing.T, summary Summary) {
				require.Equal(t, VariantUser, summary.Variant)
				require.Equal(t, "👤 New User Survey Submission", summary.Title)
				require.True(t, summary.PairFields)
				require.Len(t, summary.Fields, 13)

				willing, _ := fieldValue(summary.Fields, "Willing to Pay")
				require.Equal(t, "✅ Yes", willing)

				price, _ := fieldValue(summary.Fields, "Max Price")
				require.Equal(t, "Not specified", price)

				agent, ok := fieldValue(summary.Context, "User Agent")
				require.True(t, ok)
				require.True(t, strings.HasSuffix(agent, "..."))
				require.Equal(t, longAgent[:30]+"...", agent)

				require.Equal(t, []SummaryField{{Title: "Other Platform Features", Value: "dark mode"}}, summary.Notes)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.validate(t, tc.summary())
		})
	}
}
