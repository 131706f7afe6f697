package publish

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarhub/hangarctl/internal/catalog"
	"github.com/hangarhub/hangarctl/internal/config"
)

func testLogger() *log.Logger {
	logger := log.Default()
	logger.SetLevel(log.FatalLevel)
	return logger
}

func publishAddon(t *testing.T, id, title, version string, contentType catalog.ContentType) *catalog.Addon {
	t.Helper()

	meta, err := catalog.NewAddonMetadata(title, "Test Creator", version, contentType, version, "1.30.0", nil)
	require.NoError(t, err)

	addon, err := catalog.NewAddon(id, meta, "/sim/Community/"+id, time.Now())
	require.NoError(t, err)
	return addon
}

func TestFormatLinesPreservesOrder(t *testing.T) {
	addons := []*catalog.Addon{
		publishAddon(t, "b", "ZZ Livery Pack", "2.1", catalog.ContentTypeLivery),
		publishAddon(t, "a", "A32NX", "0.12.1", catalog.ContentTypeAircraft),
	}

	rendered := formatLines(addons)
	expected := "• ZZ Livery Pack (Livery) v2.1\n• A32NX (Aircraft) v0.12.1"
	assert.Equal(t, expected, rendered)

	// Deterministic for the same sequence
	assert.Equal(t, rendered, formatLines(addons))
}

func TestNewDiscordFailsFastWithoutEndpoint(t *testing.T) {
	t.Setenv("HANGARCTL_DISCORD_WEBHOOK_URL", "")

	_, err := NewDiscord(config.DiscordConfig{}, testLogger())
	assert.ErrorIs(t, err, ErrNoEndpoint)
}

func TestNewDiscordFallsBackToEnvironment(t *testing.T) {
	t.Setenv("HANGARCTL_DISCORD_WEBHOOK_URL", "https://discord.test/webhook")

	platform, err := NewDiscord(config.DiscordConfig{}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "Discord", platform.Name())
}

func TestDiscordPublishRejectsNilSequence(t *testing.T) {
	platform, err := NewDiscord(config.DiscordConfig{WebhookURL: "https://discord.test/webhook"}, testLogger())
	require.NoError(t, err)

	_, err = platform.Publish(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilAddons)
}

func TestDiscordPublishEmptySequenceIsFailureResult(t *testing.T) {
	platform, err := NewDiscord(config.DiscordConfig{WebhookURL: "https://discord.test/webhook"}, testLogger())
	require.NoError(t, err)

	result, err := platform.Publish(context.Background(), []*catalog.Addon{})
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 0, result.PublishedCount())
	assert.Contains(t, result.Message(), "No addons provided")
}

func TestDiscordPublishSuccess(t *testing.T) {
	var received discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	platform, err := NewDiscord(config.DiscordConfig{WebhookURL: srv.URL, Username: "hangarctl"}, testLogger())
	require.NoError(t, err)

	addons := []*catalog.Addon{
		publishAddon(t, "a", "A32NX", "0.12.1", catalog.ContentTypeAircraft),
		publishAddon(t, "b", "EDDF", "2.0", catalog.ContentTypeScenery),
	}

	result, err := platform.Publish(context.Background(), addons)
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Equal(t, 2, result.PublishedCount())
	assert.Empty(t, result.Errors())

	assert.Equal(t, "hangarctl", received.Username)
	assert.Equal(t, "• A32NX (Aircraft) v0.12.1\n• EDDF (Scenery) v2.0", received.Content)
}

func TestDiscordPublishRemoteRejectionIsFailureResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "Cannot send an empty message"}`))
	}))
	defer srv.Close()

	platform, err := NewDiscord(config.DiscordConfig{WebhookURL: srv.URL}, testLogger())
	require.NoError(t, err)

	result, err := platform.Publish(context.Background(),
		[]*catalog.Addon{publishAddon(t, "a", "A32NX", "0.12.1", catalog.ContentTypeAircraft)})
	require.NoError(t, err)

	assert.False(t, result.Success())
	assert.Equal(t, 0, result.PublishedCount())
	assert.Contains(t, result.Message(), "400")
	assert.Contains(t, result.Message(), "Cannot send an empty message")
	assert.NotEmpty(t, result.Errors())
}

func TestDiscordPublishNetworkErrorIsFailureResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	platform, err := NewDiscord(config.DiscordConfig{WebhookURL: srv.URL}, testLogger())
	require.NoError(t, err)

	result, err := platform.Publish(context.Background(),
		[]*catalog.Addon{publishAddon(t, "a", "A32NX", "0.12.1", catalog.ContentTypeAircraft)})
	require.NoError(t, err)

	assert.False(t, result.Success())
	assert.NotEmpty(t, result.Errors())
}

func TestDiscordPublishPropagatesCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	platform, err := NewDiscord(config.DiscordConfig{WebhookURL: srv.URL}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = platform.Publish(ctx,
		[]*catalog.Addon{publishAddon(t, "a", "A32NX", "0.12.1", catalog.ContentTypeAircraft)})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSlackPublishSuccess(t *testing.T) {
	var received slackPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &received))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	platform, err := NewSlack(config.SlackConfig{WebhookURL: srv.URL, Channel: "#hangar"}, testLogger())
	require.NoError(t, err)

	result, err := platform.Publish(context.Background(),
		[]*catalog.Addon{publishAddon(t, "a", "A32NX", "0.12.1", catalog.ContentTypeAircraft)})
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Equal(t, 1, result.PublishedCount())
	assert.Equal(t, "#hangar", received.Channel)
	assert.Equal(t, "• A32NX (Aircraft) v0.12.1", received.Text)
}

func TestNewSlackFailsFastWithoutEndpoint(t *testing.T) {
	t.Setenv("HANGARCTL_SLACK_WEBHOOK_URL", "")

	_, err := NewSlack(config.SlackConfig{}, testLogger())
	assert.ErrorIs(t, err, ErrNoEndpoint)
}

func TestDiscordValidateCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"id": "1"}`))
	}))
	defer srv.Close()

	platform, err := NewDiscord(config.DiscordConfig{WebhookURL: srv.URL}, testLogger())
	require.NoError(t, err)
	assert.True(t, platform.ValidateCredentials(context.Background()))
}

func TestValidateCredentialsCollapsesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	discord, err := NewDiscord(config.DiscordConfig{WebhookURL: srv.URL}, testLogger())
	require.NoError(t, err)
	assert.False(t, discord.ValidateCredentials(context.Background()))

	slack, err := NewSlack(config.SlackConfig{WebhookURL: srv.URL}, testLogger())
	require.NoError(t, err)
	assert.False(t, slack.ValidateCredentials(context.Background()))
}

func TestRegistry(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "discord")
	assert.Contains(t, names, "slack")

	cfg := &config.Config{Discord: config.DiscordConfig{WebhookURL: "https://discord.test/webhook"}}
	platform, err := New("discord", cfg, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "Discord", platform.Name())

	_, err = New("teams", cfg, testLogger())
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}
