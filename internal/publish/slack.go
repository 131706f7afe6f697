package publish

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"github.com/hangarhub/hangarctl/internal/catalog"
	"github.com/hangarhub/hangarctl/internal/config"
)

func init() {
	Register("slack", func(cfg *config.Config, logger *log.Logger) (Platform, error) {
		return NewSlack(cfg.Slack, logger)
	})
}

// slackPayload is the chat-endpoint request body
type slackPayload struct {
	Channel string `json:"channel,omitempty"`
	Text    string `json:"text"`
}

// Slack publishes the selected addon set to a Slack-style chat endpoint
type Slack struct {
	webhookURL string
	channel    string
	client     *resty.Client
	log        *log.Logger
}

// NewSlack builds the chat-endpoint platform. The endpoint URL comes from
// the injected config or the HANGARCTL_SLACK_WEBHOOK_URL environment
// variable; with neither set construction fails immediately.
func NewSlack(cfg config.SlackConfig, logger *log.Logger) (*Slack, error) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" {
		webhookURL = os.Getenv("HANGARCTL_SLACK_WEBHOOK_URL")
	}
	if webhookURL == "" {
		return nil, fmt.Errorf("%w: slack webhook", ErrNoEndpoint)
	}

	channel := cfg.Channel
	if channel == "" {
		channel = os.Getenv("HANGARCTL_SLACK_CHANNEL")
	}

	return &Slack{
		webhookURL: webhookURL,
		channel:    channel,
		client:     newClient(),
		log:        logger,
	}, nil
}

func (s *Slack) Name() string {
	return "Slack"
}

// Publish POSTs the rendered addon list to the chat endpoint, with the same
// success and failure semantics as the webhook variant
func (s *Slack) Publish(ctx context.Context, addons []*catalog.Addon) (catalog.PublishResult, error) {
	if result, err, done := checkInput(addons); done {
		return result, err
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(slackPayload{Channel: s.channel, Text: formatLines(addons)}).
		Post(s.webhookURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return catalog.PublishResult{}, ctxErr
		}
		s.log.Error("Slack publish failed", "error", err)
		return catalog.PublishFailure(fmt.Sprintf("Failed to reach Slack endpoint: %v", err), err.Error()), nil
	}

	if resp.IsError() {
		s.log.Warn("Slack endpoint rejected publish", "status", resp.StatusCode())
		return catalog.PublishFailure(
			fmt.Sprintf("Slack endpoint returned %d %s: %s",
				resp.StatusCode(), http.StatusText(resp.StatusCode()), resp.String()),
			resp.Status(),
		), nil
	}

	s.log.Info("Published to Slack", "addons", len(addons))
	return catalog.PublishSuccess(len(addons)), nil
}

// ValidateCredentials probes the endpoint without posting a message. Slack
// incoming webhooks answer HEAD/GET with a non-404 status when the hook
// exists, so reachability plus a non-404 answer counts as valid.
func (s *Slack) ValidateCredentials(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	resp, err := s.client.R().SetContext(ctx).Head(s.webhookURL)
	if err != nil {
		s.log.Debug("Slack credential probe failed", "error", err)
		return false
	}
	return resp.StatusCode() != http.StatusNotFound
}
