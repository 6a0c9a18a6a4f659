package testdata

import (
	"fmt"

	"NYCU-SDC/photo-survey-backend/internal/fingerprint"
	"NYCU-SDC/photo-survey-backend/internal/survey"

	"github.com/brianvoe/gofakeit/v7"
)

func RandomEmail() string {
	return gofakeit.Email()
}

func RandomFullName() string {
	return gofakeit.Name()
}

func RandomDescription() string {
	return gofakeit.Sentence(10)
}

func RandomFingerprint() string {
	return gofakeit.UUID()
}

func RandomVisitor() fingerprint.Visitor {
	return fingerprint.Visitor{
		Fingerprint: RandomFingerprint(),
		IP:          gofakeit.IPv4Address(),
		UserAgent:   gofakeit.UserAgent(),
	}
}

func randomScale() *int {
	v := gofakeit.IntRange(1, 5)
	return &v
}

func randomBool() *bool {
	v := gofakeit.Bool()
	return &v
}

func randomPick(options ...string) string {
	return gofakeit.RandomString(options)
}

func randomOption(options ...string) *string {
	v := randomPick(options...)
	return &v
}

// RandomPhotographerAnswers returns answers that pass the photographer schema.
func RandomPhotographerAnswers() survey.PhotographerAnswers {
	return survey.PhotographerAnswers{
		Specialty:        randomPick("Wedding", "Portrait", "Landscape", "Events", "Commercial", "Other"),
		ExperienceYears:  randomPick("<1", "1-3", "3-5", "5+"),
		CurrentPlatforms: []string{randomPick("Instagram", "Flickr", "500px", "Behance")},
		SellingPlatforms: []string{randomPick("Etsy", "Shutterstock", "Own website")},
		Interests: &survey.Interests{
			Showcase:  randomScale(),
			Sell:      randomScale(),
			Discovery: randomScale(),
			Contests:  randomScale(),
		},
		PremiumFeatures: &survey.PremiumFeatures{
			Featured:       randomScale(),
			Storage:        randomScale(),
			ContestEntries: randomScale(),
		},
		CommissionAcceptance: randomPick("10%", "20%", "30%", "flat"),
		Concerns:             []string{gofakeit.Word()},
		FeatureRequests:      []string{gofakeit.Word(), gofakeit.Word()},
		FeatureRequestsOther: RandomDescription(),
		AdditionalFeatureOpinions: &survey.AdditionalFeatureOpinions{
			DesiredFeatures: RandomDescription(),
			Importance:      randomOption("low", "medium", "high"),
			WillingToPay:    randomBool(),
		},
	}
}

// RandomUserAnswers returns answers that pass the user schema.
func RandomUserAnswers() survey.UserAnswers {
	return survey.UserAnswers{
		UsageFrequency:           randomPick("never", "rarely", "occasionally", "frequently"),
		UseCases:                 []string{randomPick("travel", "events", "family", "social")},
		SelfPhotographyFrequency: randomPick("never", "rarely", "occasionally", "frequently"),
		WillingToPay:             randomBool(),
		MaxPrice:                 fmt.Sprintf("$%.0f", gofakeit.Price(1, 50)),
		PaymentPreference:        randomOption("per_photo", "subscription", "credits"),
		Barriers:                 []string{gofakeit.Word()},
		ContestParticipation:     randomPick("voter", "submitter", "none"),
		AgeRange:                 randomPick("Under 18", "18-24", "25-34", "35-44", "45-54", "55+"),
		Occupation:               gofakeit.JobTitle(),
		LocationPlatformInterest: randomOption("yes", "no", "maybe"),
		PlatformFeatures:         []string{gofakeit.Word()},
	}
}
