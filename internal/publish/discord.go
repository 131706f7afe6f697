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
	Register("discord", func(cfg *config.Config, logger *log.Logger) (Platform, error) {
		return NewDiscord(cfg.Discord, logger)
	})
}

// discordPayload is the webhook request body
type discordPayload struct {
	Username string `json:"username,omitempty"`
	Content  string `json:"content"`
}

// Discord publishes the selected addon set to a Discord-style webhook
type Discord struct {
	webhookURL string
	username   string
	client     *resty.Client
	log        *log.Logger
}

// NewDiscord builds the webhook platform. The webhook URL comes from the
// injected config or, as a fallback, the HANGARCTL_DISCORD_WEBHOOK_URL
// environment variable; with neither set construction fails immediately.
func NewDiscord(cfg config.DiscordConfig, logger *log.Logger) (*Discord, error) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" {
		webhookURL = os.Getenv("HANGARCTL_DISCORD_WEBHOOK_URL")
	}
	if webhookURL == "" {
		return nil, fmt.Errorf("%w: discord webhook", ErrNoEndpoint)
	}

	username := cfg.Username
	if username == "" {
		username = os.Getenv("HANGARCTL_DISCORD_USERNAME")
	}

	return &Discord{
		webhookURL: webhookURL,
		username:   username,
		client:     newClient(),
		log:        logger,
	}, nil
}

func (d *Discord) Name() string {
	return "Discord"
}

// Publish POSTs the rendered addon list to the webhook. Non-2xx responses
// and transport errors come back as failure results; cancellation
// propagates as the context's error.
func (d *Discord) Publish(ctx context.Context, addons []*catalog.Addon) (catalog.PublishResult, error) {
	if result, err, done := checkInput(addons); done {
		return result, err
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(discordPayload{Username: d.username, Content: formatLines(addons)}).
		Post(d.webhookURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return catalog.PublishResult{}, ctxErr
		}
		d.log.Error("Discord publish failed", "error", err)
		return catalog.PublishFailure(fmt.Sprintf("Failed to reach Discord webhook: %v", err), err.Error()), nil
	}

	if resp.IsError() {
		d.log.Warn("Discord webhook rejected publish", "status", resp.StatusCode())
		return catalog.PublishFailure(
			fmt.Sprintf("Discord webhook returned %d %s: %s",
				resp.StatusCode(), http.StatusText(resp.StatusCode()), resp.String()),
			resp.Status(),
		), nil
	}

	d.log.Info("Published to Discord", "addons", len(addons))
	return catalog.PublishSuccess(len(addons)), nil
}

// ValidateCredentials fetches the webhook object, which Discord serves on a
// plain GET of the webhook URL. Bounded by its own timeout.
func (d *Discord) ValidateCredentials(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	resp, err := d.client.R().SetContext(ctx).Get(d.webhookURL)
	if err != nil {
		d.log.Debug("Discord credential probe failed", "error", err)
		return false
	}
	return resp.IsSuccess()
}
