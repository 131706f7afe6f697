package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hangarhub/hangarctl/internal/catalog"
)

var (
	// ErrNilAddons is returned when a nil addon sequence is handed to Publish.
	// An empty (but non-nil) sequence is a recoverable condition and yields a
	// failure result instead.
	ErrNilAddons = errors.New("addon sequence must not be nil")

	// ErrNoEndpoint is returned at construction when neither the injected
	// config nor the documented environment fallback supplies an endpoint URL
	ErrNoEndpoint = errors.New("no endpoint URL configured")
)

const (
	// publishTimeout bounds a single publish call
	publishTimeout = 30 * time.Second

	// validateTimeout bounds a credential probe independently of the caller's
	// cancellation, so a hung probe cannot block the UI
	validateTimeout = 10 * time.Second

	// emptyInputMessage is the failure message for an empty addon sequence
	emptyInputMessage = "No addons provided to publish."
)

// Platform is one external target capable of receiving a formatted
// notification of selected addons. Remote and transport failures are
// reported as a failed PublishResult, never as a Go error; only a nil input
// sequence and context cancellation surface as errors.
type Platform interface {
	// Name is the stable display identifier of the platform
	Name() string

	// Publish delivers the addon sequence to the platform's endpoint
	Publish(ctx context.Context, addons []*catalog.Addon) (catalog.PublishResult, error)

	// ValidateCredentials probes connectivity and credentials. It never
	// fails hard: any error collapses to false.
	ValidateCredentials(ctx context.Context) bool
}

// formatLines renders one line per addon, preserving input order. The output
// is deterministic for a given sequence.
func formatLines(addons []*catalog.Addon) string {
	lines := make([]string, 0, len(addons))
	for _, addon := range addons {
		meta := addon.Metadata()
		lines = append(lines, fmt.Sprintf("• %s (%s) v%s", meta.Title(), meta.ContentType(), meta.Version()))
	}
	return strings.Join(lines, "\n")
}

// newClient builds the resty client shared by the concrete platforms
func newClient() *resty.Client {
	return resty.New().
		SetTimeout(publishTimeout).
		SetHeader("User-Agent", "hangarctl/1.0 (flight-sim addon catalog)")
}

// checkInput applies the shared input contract. done reports whether result
// or err already answer the call.
func checkInput(addons []*catalog.Addon) (result catalog.PublishResult, err error, done bool) {
	if addons == nil {
		return catalog.PublishResult{}, ErrNilAddons, true
	}
	if len(addons) == 0 {
		return catalog.PublishFailure(emptyInputMessage), nil, true
	}
	return catalog.PublishResult{}, nil, false
}
