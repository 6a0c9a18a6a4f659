package slack

import (
	"context"
	"fmt"
	"net/http"

	"NYCU-SDC/photo-survey-backend/internal/survey"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// Notifier posts submission summaries to a Slack incoming webhook.
type Notifier struct {
	logger     *zap.Logger
	webhookURL string
	client     *http.Client
}

func NewNotifier(logger *zap.Logger, webhookURL string) *Notifier {
	return &Notifier{
		logger:     logger,
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

// Notify sends one message. A missing webhook URL is not an error: the
// notification is skipped with a warning.
func (n *Notifier) Notify(ctx context.Context, summary survey.Summary) error {
	if n.webhookURL == "" {
		n.logger.Warn("Slack webhook URL not configured, skipping notification", zap.String("variant", summary.Variant.String()))
		return nil
	}

	message := BuildMessage(summary)
	err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.client, &message)
	if err != nil {
		return fmt.Errorf("failed to post %s survey notification: %w", summary.Variant, err)
	}

	n.logger.Info("Sent Slack notification", zap.String("variant", summary.Variant.String()))
	return nil
}

// BuildMessage lays out a summary as Block Kit blocks: a header, the context
// fields, the answers and finally the free-text notes.
func BuildMessage(summary survey.Summary) slack.WebhookMessage {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, summary.Title, true, false)),
		slack.NewSectionBlock(nil, fieldObjects(summary.Context), nil),
		slack.NewDividerBlock(),
	}

	if summary.PairFields {
		for i := 0; i < len(summary.Fields); i += 2 {
			end := min(i+2, len(summary.Fields))
			blocks = append(blocks, slack.NewSectionBlock(nil, fieldObjects(summary.Fields[i:end]), nil))
		}
	} else {
		for _, field := range summary.Fields {
			blocks = append(blocks, slack.NewSectionBlock(markdown(field), nil, nil))
		}
	}

	if len(summary.Notes) > 0 {
		blocks = append(blocks, slack.NewDividerBlock())
		for _, note := range summary.Notes {
			blocks = append(blocks, slack.NewSectionBlock(markdown(note), nil, nil))
		}
	}

	return slack.WebhookMessage{
		Text:   summary.Text,
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
}

func fieldObjects(fields []survey.SummaryField) []*slack.TextBlockObject {
	objects := make([]*slack.TextBlockObject, 0, len(fields))
	for _, field := range fields {
		objects = append(objects, markdown(field))
	}
	return objects
}

func markdown(field survey.SummaryField) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*%s:*\n%s", field.Title, field.Value), false, false)
}
