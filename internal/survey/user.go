package survey

type UserAnswers struct {
	// Photography consumption habits
	UsageFrequency           string   `json:"usageFrequency"           bson:"usageFrequency"           validate:"required,oneof=never rarely occasionally frequently"`
	UseCases                 []string `json:"useCases"                 bson:"useCases"                 validate:"required"`
	SelfPhotographyFrequency string   `json:"selfPhotographyFrequency" bson:"selfPhotographyFrequency" validate:"required,oneof=never rarely occasionally frequently"`

	// Willingness to pay
	WillingToPay      *bool   `json:"willingToPay"                bson:"willingToPay"                validate:"required"`
	MaxPrice          string  `json:"maxPrice,omitempty"          bson:"maxPrice,omitempty"`
	PaymentPreference *string `json:"paymentPreference,omitempty" bson:"paymentPreference,omitempty" validate:"omitnil,oneof=per_photo subscription credits"`

	Barriers                   []string `json:"barriers,omitempty"                   bson:"barriers,omitempty"`
	ConversionFactors          []string `json:"conversionFactors,omitempty"          bson:"conversionFactors,omitempty"`
	ConversionOtherExplanation string   `json:"conversionOtherExplanation,omitempty" bson:"conversionOtherExplanation,omitempty"`

	ContestParticipation string `json:"contestParticipation" bson:"contestParticipation" validate:"required,oneof=voter submitter none"`

	// Demographics
	AgeRange   string `json:"ageRange"   bson:"ageRange"   validate:"required,oneof='Under 18' 18-24 25-34 35-44 45-54 55+"`
	Occupation string `json:"occupation" bson:"occupation" validate:"required"`

	// Platform features and location based ideas
	LocationPlatformInterest    *string  `json:"locationPlatformInterest,omitempty"    bson:"locationPlatformInterest,omitempty"    validate:"omitnil,oneof=yes no maybe"`
	LocationPlatformExplanation string   `json:"locationPlatformExplanation,omitempty" bson:"locationPlatformExplanation,omitempty"`
	PlatformFeatures            []string `json:"platformFeatures,omitempty"            bson:"platformFeatures,omitempty"`
	PlatformFeaturesOther       string   `json:"platformFeaturesOther,omitempty"       bson:"platformFeaturesOther,omitempty"`
}

func (UserAnswers) Variant() Variant { return VariantUser }

func (a UserAnswers) summaryFields() []SummaryField {
	return []SummaryField{
		{Title: "Usage Frequency", Value: a.UsageFrequency},
		{Title: "Use Cases", Value: formatList(a.UseCases)},
		{Title: "Self Photography Frequency", Value: a.SelfPhotographyFrequency},
		{Title: "Willing to Pay", Value: formatBool(a.WillingToPay)},
		{Title: "Max Price", Value: orDefault(a.MaxPrice, "Not specified")},
		{Title: "Payment Preference", Value: optionalString(a.PaymentPreference, "Not specified")},
		{Title: "Barriers", Value: formatList(a.Barriers)},
		{Title: "Conversion Factors", Value: formatList(a.ConversionFactors)},
		{Title: "Contest Participation", Value: orDefault(a.ContestParticipation, "None")},
		{Title: "Age Range", Value: a.AgeRange},
		{Title: "Occupation", Value: a.Occupation},
		{Title: "Location Platform Interest", Value: optionalString(a.LocationPlatformInterest, "Not specified")},
		{Title: "Platform Features", Value: formatList(a.PlatformFeatures)},
	}
}

func (a UserAnswers) summaryNotes() []SummaryField {
	var notes []SummaryField
	if a.ConversionOtherExplanation != "" {
		notes = append(notes, SummaryField{Title: "Other Conversion Explanation", Value: a.ConversionOtherExplanation})
	}
	if a.LocationPlatformExplanation != "" {
		notes = append(notes, SummaryField{Title: "Location Platform Explanation", Value: a.LocationPlatformExplanation})
	}
	if a.PlatformFeaturesOther != "" {
		notes = append(notes, SummaryField{Title: "Other Platform Features", Value: a.PlatformFeaturesOther})
	}
	return notes
}
