package survey

type Interests struct {
	Showcase  *int `json:"showcase,omitempty"  bson:"showcase,omitempty"  validate:"omitempty,min=1,max=5"`
	Sell      *int `json:"sell,omitempty"      bson:"sell,omitempty"      validate:"omitempty,min=1,max=5"`
	Discovery *int `json:"discovery,omitempty" bson:"discovery,omitempty" validate:"omitempty,min=1,max=5"`
	Contests  *int `json:"contests,omitempty"  bson:"contests,omitempty"  validate:"omitempty,min=1,max=5"`
}

type PremiumFeatures struct {
	Featured       *int `json:"featured,omitempty"       bson:"featured,omitempty"       validate:"omitempty,min=1,max=5"`
	Storage        *int `json:"storage,omitempty"        bson:"storage,omitempty"        validate:"omitempty,min=1,max=5"`
	ContestEntries *int `json:"contestEntries,omitempty" bson:"contestEntries,omitempty" validate:"omitempty,min=1,max=5"`
}

type AdditionalFeatureOpinions struct {
	DesiredFeatures string  `json:"desiredFeatures,omitempty" bson:"desiredFeatures,omitempty"`
	Importance      *string `json:"importance,omitempty"      bson:"importance,omitempty"      validate:"omitnil,oneof=low medium high"`
	WillingToPay    *bool   `json:"willingToPay,omitempty"    bson:"willingToPay,omitempty"`
}

type PhotographerAnswers struct {
	// Professional background
	Specialty       string `json:"specialty"       bson:"specialty"       validate:"required,oneof=Wedding Portrait Landscape Events Commercial Other"`
	ExperienceYears string `json:"experienceYears" bson:"experienceYears" validate:"required,oneof=<1 1-3 3-5 5+"`

	// Current online presence
	CurrentPlatforms      []string `json:"currentPlatforms"                bson:"currentPlatforms"                validate:"required,min=1"`
	SellingPlatforms      []string `json:"sellingPlatforms,omitempty"      bson:"sellingPlatforms,omitempty"`
	SellingPlatformsOther string   `json:"sellingPlatformsOther,omitempty" bson:"sellingPlatformsOther,omitempty"`

	Interests            *Interests       `json:"interests"            bson:"interests"            validate:"required"`
	PremiumFeatures      *PremiumFeatures `json:"premiumFeatures"      bson:"premiumFeatures"      validate:"required"`
	CommissionAcceptance string           `json:"commissionAcceptance" bson:"commissionAcceptance" validate:"required,oneof=10% 20% 30% flat"`

	Concerns             []string `json:"concerns,omitempty"             bson:"concerns,omitempty"`
	FeatureRequests      []string `json:"featureRequests,omitempty"      bson:"featureRequests,omitempty"`
	FeatureRequestsOther string   `json:"featureRequestsOther,omitempty" bson:"featureRequestsOther,omitempty"`
	CollaborationPrefs   []string `json:"collaborationPrefs,omitempty"   bson:"collaborationPrefs,omitempty"`

	AdditionalFeatureOpinions *AdditionalFeatureOpinions `json:"additionalFeatureOpinions,omitempty" bson:"additionalFeatureOpinions,omitempty"`
}

func (PhotographerAnswers) Variant() Variant { return VariantPhotographer }

func (a PhotographerAnswers) summaryFields() []SummaryField {
	var opinions []SummaryField
	if a.AdditionalFeatureOpinions != nil {
		opinions = []SummaryField{
			{Title: "desiredFeatures", Value: a.AdditionalFeatureOpinions.DesiredFeatures},
			{Title: "importance", Value: optionalString(a.AdditionalFeatureOpinions.Importance, "")},
			{Title: "willingToPay", Value: optionalBool(a.AdditionalFeatureOpinions.WillingToPay)},
		}
	}

	var interests, premium []SummaryField
	if a.Interests != nil {
		interests = []SummaryField{
			{Title: "showcase", Value: formatScale(a.Interests.Showcase)},
			{Title: "sell", Value: formatScale(a.Interests.Sell)},
			{Title: "discovery", Value: formatScale(a.Interests.Discovery)},
			{Title: "contests", Value: formatScale(a.Interests.Contests)},
		}
	}
	if a.PremiumFeatures != nil {
		premium = []SummaryField{
			{Title: "featured", Value: formatScale(a.PremiumFeatures.Featured)},
			{Title: "storage", Value: formatScale(a.PremiumFeatures.Storage)},
			{Title: "contestEntries", Value: formatScale(a.PremiumFeatures.ContestEntries)},
		}
	}

	return []SummaryField{
		{Title: "Specialty", Value: a.Specialty},
		{Title: "Experience", Value: a.ExperienceYears},
		{Title: "Current Platforms", Value: formatList(a.CurrentPlatforms)},
		{Title: "Selling Platforms", Value: formatList(a.SellingPlatforms)},
		{Title: "Commission Acceptance", Value: a.CommissionAcceptance},
		{Title: "Main Concerns", Value: formatList(a.Concerns)},
		{Title: "Feature Requests", Value: formatList(a.FeatureRequests)},
		{Title: "Collaboration Preferences", Value: formatList(a.CollaborationPrefs)},
		{Title: "Interests", Value: formatGroup(interests)},
		{Title: "Premium Features", Value: formatGroup(premium)},
		{Title: "Additional Opinions", Value: formatGroup(opinions)},
	}
}

func (a PhotographerAnswers) summaryNotes() []SummaryField {
	notes := a.FeatureRequestsOther
	if notes == "" {
		notes = "None provided"
	}
	return []SummaryField{{Title: "Additional Notes", Value: notes}}
}
