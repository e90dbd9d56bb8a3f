package httpfetch

import "time"

// DefaultUserAgent is sent when the caller supplies no User-Agent header.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36"

// Config holds the client-level defaults applied to every fetch.
type Config struct {
	// Timeout is the fallback deadline for calls whose RequestConfig does
	// not set one.
	Timeout time.Duration

	// UserAgent overrides DefaultUserAgent when set.
	UserAgent string
}

// DefaultConfig returns the client defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		UserAgent: DefaultUserAgent,
	}
}

// RequestConfig is the per-call configuration. It is read, never written:
// a fetch leaves both the config and the client untouched.
type RequestConfig struct {
	// Headers is applied to the outgoing request.
	Headers map[string]string

	// Proxy is an optional scheme://[user:pass@]host:port address applied
	// identically for http and https targets.
	Proxy string

	// Timeout bounds the whole call. Zero falls back to the client default.
	Timeout time.Duration
}
