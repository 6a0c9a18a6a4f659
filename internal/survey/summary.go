package survey

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const userAgentPreviewLength = 30

type SummaryField struct {
	Title string
	Value string
}

// Summary is the human readable digest of a stored submission that is handed
// to notifiers.
type Summary struct {
	Variant Variant
	Title   string
	Text    string

	// Context describes who submitted and when.
	Context []SummaryField
	Fields  []SummaryField
	Notes   []SummaryField

	// PairFields asks renderers to lay the answer fields out two per row.
	PairFields bool
}

// Summary renders the submission for notification channels.
func (s Submission[A]) Summary() Summary {
	variant := s.Answers.Variant()

	summary := Summary{
		Variant: variant,
		Context: []SummaryField{
			{Title: "Submitted At", Value: s.CreatedAt.Format(time.RFC1123)},
			{Title: "IP", Value: s.Metadata.IP},
		},
		Fields: s.Answers.summaryFields(),
		Notes:  s.Answers.summaryNotes(),
	}

	switch variant {
	case VariantPhotographer:
		summary.Title = "📸 New Photographer Survey Submission"
		summary.Text = fmt.Sprintf("New photographer survey from %s", s.Metadata.IP)
	case VariantUser:
		summary.Title = "👤 New User Survey Submission"
		summary.Text = fmt.Sprintf("New user survey submission from %s", s.Metadata.IP)
		summary.PairFields = true
		summary.Context = append(summary.Context, SummaryField{Title: "User Agent", Value: previewUserAgent(s.Metadata.UserAgent)})
	}

	return summary
}

func previewUserAgent(userAgent string) string {
	runes := []rune(userAgent)
	if len(runes) > userAgentPreviewLength {
		runes = runes[:userAgentPreviewLength]
	}
	return string(runes) + "..."
}

func formatList(values []string) string {
	if len(values) == 0 {
		return "None"
	}
	return strings.Join(values, ", ")
}

func formatBool(value *bool) string {
	if value == nil {
		return "Not provided"
	}
	if *value {
		return "✅ Yes"
	}
	return "❌ No"
}

func optionalBool(value *bool) string {
	if value == nil {
		return ""
	}
	return formatBool(value)
}

func formatScale(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func optionalString(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return orDefault(*value, fallback)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// formatGroup renders nested answers as "key: value" lines, skipping the ones
// that were not answered.
func formatGroup(fields []SummaryField) string {
	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.Value == "" {
			continue
		}
		lines = append(lines, field.Title+": "+field.Value)
	}
	if len(lines) == 0 {
		return "None"
	}
	return strings.Join(lines, "\n")
}
