package catalog

import "fmt"

// PublishResult is the outcome of one publish attempt. Remote failures are
// carried here as data; a platform never surfaces them as Go errors.
type PublishResult struct {
	success        bool
	message        string
	publishedCount int
	errs           []string
}

// PublishSuccess reports a fully successful attempt
func PublishSuccess(count int) PublishResult {
	return PublishResult{
		success:        true,
		message:        fmt.Sprintf("Successfully published %d addon(s).", count),
		publishedCount: count,
	}
}

// PublishFailure reports a fully failed attempt. The published count is
// forced to zero.
func PublishFailure(message string, errs ...string) PublishResult {
	if message == "" {
		message = "Publish failed."
	}
	return PublishResult{
		success: false,
		message: message,
		errs:    append([]string(nil), errs...),
	}
}

// PublishPartial reports an attempt where only some addons went through.
// Partial success is still an overall failure, reported with both counts so
// the caller can show attempted vs. succeeded.
func PublishPartial(published, attempted int, errs []string) PublishResult {
	return PublishResult{
		success:        false,
		message:        fmt.Sprintf("Published %d of %d addon(s).", published, attempted),
		publishedCount: published,
		errs:           append([]string(nil), errs...),
	}
}

func (r PublishResult) Success() bool       { return r.success }
func (r PublishResult) Message() string     { return r.message }
func (r PublishResult) PublishedCount() int { return r.publishedCount }

// Errors returns a copy of the per-addon error list, in order
func (r PublishResult) Errors() []string {
	return append([]string(nil), r.errs...)
}
