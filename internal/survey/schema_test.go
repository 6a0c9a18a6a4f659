package survey

import (
	"testing"

	"NYCU-SDC/photo-survey-backend/internal"

	"github.com/stretchr/testify/require"
)

func photographerPayload() map[string]any {
	return map[string]any{
		"specialty":            "Wedding",
		"experienceYears":      "1-3",
		"currentPlatforms":     []any{"Instagram"},
		"interests":            map[string]any{"showcase": 4},
		"premiumFeatures":      map[string]any{"featured": 3},
		"commissionAcceptance": "20%",
	}
}

func userPayload() map[string]any {
	return map[string]any{
		"usageFrequency":           "rarely",
		"useCases":                 []any{},
		"selfPhotographyFrequency": "never",
		"willingToPay":             false,
		"contestParticipation":     "none",
		"ageRange":                 "25-34",
		"occupation":               "x",
	}
}

func TestDecode_Photographer(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(payload map[string]any)
		validate func(t *testing.T, answers PhotographerAnswers, violations Violations)
	}{
		{
			name:   "Valid payload",
			mutate: func(payload map[string]any) {},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Nil(t, violations)
				require.Equal(t, "Wedding", answers.Specialty)
				require.Equal(t, []string{"Instagram"}, answers.CurrentPlatforms)
				require.NotNil(t, answers.Interests)
				require.Equal(t, 4, *answers.Interests.Showcase)
				require.Nil(t, answers.Interests.Sell)
			},
		},
		{
			name: "Unknown keys are dropped",
			mutate: func(payload map[string]any) {
				payload["favouriteColor"] = "blue"
			},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Nil(t, violations)
			},
		},
		{
			name: "Enum value outside the allowed set",
			mutate: func(payload map[string]any) {
				payload["specialty"] = "Astro"
			},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Len(t, violations, 1)
				require.Equal(t, "specialty", violations[0].Path)
				require.Equal(t, "Invalid enum value. Expected 'Wedding' | 'Portrait' | 'Landscape' | 'Events' | 'Commercial' | 'Other', received 'Astro'", violations[0].Message)
			},
		},
		{
			name: "Empty current platforms",
			mutate: func(payload map[string]any) {
				payload["currentPlatforms"] = []any{}
			},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Equal(t, Violations{{Path: "currentPlatforms", Message: "Array must contain at least 1 element(s)"}}, violations)
			},
		},
		{
			name: "Nested rating out of range",
			mutate: func(payload map[string]any) {
				payload["interests"] = map[string]any{"showcase": 6}
			},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Equal(t, Violations{{Path: "interests > showcase", Message: "Number must be less than or equal to 5"}}, violations)
			},
		},
		{
			name: "Missing required objects are reported in declaration order",
			mutate: func(payload map[string]any) {
				delete(payload, "commissionAcceptance")
				delete(payload, "interests")
				delete(payload, "specialty")
			},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Equal(t, Violations{
					{Path: "specialty", Message: "Required"},
					{Path: "interests", Message: "Required"},
					{Path: "commissionAcceptance", Message: "Required"},
				}, violations)
			},
		},
		{
			name: "Wrong JSON type replaces the field violation",
			mutate: func(payload map[string]any) {
				payload["specialty"] = 42
			},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Equal(t, Violations{{Path: "specialty", Message: "Expected string, received number"}}, violations)
			},
		},
		{
			name: "Every mistyped field is reported in declaration order",
			mutate: func(payload map[string]any) {
				payload["specialty"] = 5
				payload["experienceYears"] = true
				payload["sellingPlatforms"] = "Etsy"
				delete(payload, "commissionAcceptance")
			},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Equal(t, Violations{
					{Path: "specialty", Message: "Expected string, received number"},
					{Path: "experienceYears", Message: "Expected string, received boolean"},
					{Path: "sellingPlatforms", Message: "Expected array, received string"},
					{Path: "commissionAcceptance", Message: "Required"},
				}, violations)
			},
		},
		{
			name: "Mistyped optional field keeps its declared position",
			mutate: func(payload map[string]any) {
				delete(payload, "specialty")
				payload["sellingPlatforms"] = "x"
			},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Equal(t, Violations{
					{Path: "specialty", Message: "Required"},
					{Path: "sellingPlatforms", Message: "Expected array, received string"},
				}, violations)
			},
		},
		{
			name: "Mistyped nested object and nested rating",
			mutate: func(payload map[string]any) {
				payload["interests"] = "lots"
				payload["premiumFeatures"] = map[string]any{"storage": "high"}
			},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Equal(t, Violations{
					{Path: "interests", Message: "Expected object, received string"},
					{Path: "premiumFeatures > storage", Message: "Expected integer, received string"},
				}, violations)
				require.NotNil(t, answers.PremiumFeatures)
				require.Nil(t, answers.PremiumFeatures.Storage)
			},
		},
		{
			name: "Empty optional enum is rejected",
			mutate: func(payload map[string]any) {
				payload["additionalFeatureOpinions"] = map[string]any{"importance": ""}
			},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Equal(t, Violations{{
					Path:    "additionalFeatureOpinions > importance",
					Message: "Invalid enum value. Expected 'low' | 'medium' | 'high', received ''",
				}}, violations)
			},
		},
		{
			name: "Optional enum may be omitted",
			mutate: func(payload map[string]any) {
				payload["additionalFeatureOpinions"] = map[string]any{"importance": "high", "desiredFeatures": "print shop"}
			},
			validate: func(t *testing.T, answers PhotographerAnswers, violations Violations) {
				require.Nil(t, violations)
				require.Equal(t, "high", *answers.AdditionalFeatureOpinions.Importance)
			},
		},
	}

	v := internal.NewValidator()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := photographerPayload()
			tc.mutate(payload)

			answers, violations := Decode[PhotographerAnswers](v, payload)
			tc.validate(t, answers, violations)
		})
	}
}

func TestDecode_User(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(payload map[string]any)
		validate func(t *testing.T, answers UserAnswers, violations Violations)
	}{
		{
			name:   "Valid payload with empty use cases",
			mutate: func(payload map[string]any) {},
			validate: func(t *testing.T, answers UserAnswers, violations Violations) {
				require.Nil(t, violations)
				require.NotNil(t, answers.WillingToPay)
				require.False(t, *answers.WillingToPay)
				require.Empty(t, answers.UseCases)
			},
		},
		{
			name: "Quoted enum option",
			mutate: func(payload map[string]any) {
				payload["ageRange"] = "Under 18"
			},
			validate: func(t *testing.T, answers UserAnswers, violations Violations) {
				require.Nil(t, violations)
				require.Equal(t, "Under 18", answers.AgeRange)
			},
		},
		{
			name: "Missing age range",
			mutate: func(payload map[string]any) {
				delete(payload, "ageRange")
			},
			validate: func(t *testing.T, answers UserAnswers, violations Violations) {
				require.Equal(t, Violations{{Path: "ageRange", Message: "Required"}}, violations)
			},
		},
		{
			name: "Missing boolean is reported even though false is valid",
			mutate: func(payload map[string]any) {
				delete(payload, "willingToPay")
			},
			validate: func(t *testing.T, answers UserAnswers, violations Violations) {
				require.Equal(t, Violations{{Path: "willingToPay", Message: "Required"}}, violations)
			},
		},
		{
			name: "Optional enum is checked when present",
			mutate: func(payload map[string]any) {
				payload["paymentPreference"] = "barter"
			},
			validate: func(t *testing.T, answers UserAnswers, violations Violations) {
				require.Len(t, violations, 1)
				require.Equal(t, "paymentPreference", violations[0].Path)
			},
		},
		{
			name: "String given for a boolean",
			mutate: func(payload map[string]any) {
				payload["willingToPay"] = "yes"
			},
			validate: func(t *testing.T, answers UserAnswers, violations Violations) {
				require.Equal(t, Violations{{Path: "willingToPay", Message: "Expected boolean, received string"}}, violations)
			},
		},
		{
			name: "Empty payment preference and location interest are rejected",
			mutate: func(payload map[string]any) {
				payload["paymentPreference"] = ""
				payload["locationPlatformInterest"] = ""
			},
			validate: func(t *testing.T, answers UserAnswers, violations Violations) {
				require.Len(t, violations, 2)
				require.Equal(t, "paymentPreference", violations[0].Path)
				require.Equal(t, "locationPlatformInterest", violations[1].Path)
			},
		},
		{
			name: "Omitted optional enums stay unset",
			mutate: func(payload map[string]any) {},
			validate: func(t *testing.T, answers UserAnswers, violations Violations) {
				require.Nil(t, violations)
				require.Nil(t, answers.PaymentPreference)
				require.Nil(t, answers.LocationPlatformInterest)
			},
		},
	}

	v := internal.NewValidator()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := userPayload()
			tc.mutate(payload)

			answers, violations := Decode[UserAnswers](v, payload)
			tc.validate(t, answers, violations)
		})
	}
}

func TestDecode_EmptyPayload(t *testing.T) {
	_, violations := Decode[UserAnswers](internal.NewValidator(), nil)
	require.NotEmpty(t, violations)
	require.Equal(t, "usageFrequency", violations[0].Path)
	require.Contains(t, violations.Error(), "ageRange: Required")
}
