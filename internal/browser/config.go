package browser

import (
	"time"

	"github.com/raysh454/kumo/internal/model"
)

// Fixed desktop profile presented by every browser context.
const (
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36"
	viewportWidth  = 1920
	viewportHeight = 1080
)

// BrowseConfig configures one Fetch call.
type BrowseConfig struct {
	// Timeout bounds the whole call, converted to milliseconds at the
	// devtools boundary.
	Timeout time.Duration

	// Proxy routes the browser through an upstream proxy when set.
	Proxy *model.ProxySettings

	// Headless runs the browser without a visible window.
	Headless bool

	// BrowserWait is slept unconditionally after load (and after
	// PageEvaluation) before the page content is captured.
	BrowserWait time.Duration

	// PageEvaluation is an optional script evaluated in page context after
	// navigation completes.
	PageEvaluation string

	// Cookies are installed in the browser context before navigation.
	Cookies []model.Cookie

	// ExtraHeaders are attached to every request the page issues.
	ExtraHeaders map[string]string
}

// DefaultBrowseConfig returns the defaults for a headless fetch.
func DefaultBrowseConfig() BrowseConfig {
	return BrowseConfig{
		Timeout:  30 * time.Second,
		Headless: true,
	}
}

// CaptureConfig configures one CaptureHeaders call.
type CaptureConfig struct {
	Timeout  time.Duration
	Proxy    *model.ProxySettings
	Headless bool

	// ContinueOnError makes a navigation failure return the partial
	// capture without an error, after logging. When false the error
	// propagates alongside the partial capture.
	ContinueOnError bool

	// Handler optionally filters intercepted requests. Requests it allows
	// are recorded; requests it fails are dropped from the capture. Nil
	// allows everything.
	Handler RouteHandler
}

// DefaultCaptureConfig matches the historical capture behavior: headless,
// navigation failures swallowed.
func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		Timeout:         30 * time.Second,
		Headless:        true,
		ContinueOnError: true,
	}
}

// timeoutMillis converts the configured timeout to the millisecond value
// applied as the devtools navigation deadline.
func timeoutMillis(d time.Duration) int64 {
	return d.Milliseconds()
}
