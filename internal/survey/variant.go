package survey

// Variant names one survey shape. Each variant has its own answer schema and
// its own storage collection.
type Variant string

const (
	VariantPhotographer Variant = "photographer"
	VariantUser         Variant = "user"
)

func (v Variant) String() string {
	return string(v)
}

// Answers is the type set of the per-variant answer documents.
type Answers interface {
	PhotographerAnswers | UserAnswers

	Variant() Variant
	summaryFields() []SummaryField
	summaryNotes() []SummaryField
}
