package browser

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/raysh454/kumo/internal/interfaces"
	"github.com/raysh454/kumo/internal/logging"
	"github.com/raysh454/kumo/internal/model"
)

// Browser runs single-call headless browser fetches. Every call launches its
// own browser process and tears it down before returning, so a Browser value
// holds no state and may be shared.
type Browser struct {
	logger interfaces.Logger
}

// New creates a Browser. A nil logger disables logging.
func New(logger interfaces.Logger) *Browser {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Browser{
		logger: logger.With(interfaces.Field{Key: "component", Value: "browser"}),
	}
}

// Fetch navigates a fresh browser to rawURL and returns the rendered page as
// a normalized result. The context gets a fixed 1920x1080 viewport and
// desktop user agent. After load, cfg.PageEvaluation (if any) runs in page
// context, then cfg.BrowserWait elapses, then content, status, final URL and
// status text are captured. Any navigation or evaluation failure propagates.
func (b *Browser) Fetch(ctx context.Context, rawURL string, cfg BrowseConfig) (*model.FetchResult, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultBrowseConfig().Timeout
	}

	requestID := uuid.NewString()[:8]
	logger := b.logger.With(interfaces.Field{Key: "request_id", Value: requestID})
	logger.Debug("launching browser",
		interfaces.Field{Key: "url", Value: rawURL},
		interfaces.Field{Key: "headless", Value: cfg.Headless})

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(cfg.Headless, cfg.Proxy)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	navCtx, cancelNav := context.WithTimeout(browserCtx,
		time.Duration(timeoutMillis(cfg.Timeout))*time.Millisecond)
	defer cancelNav()

	status := watchMainResponse(navCtx)

	needsAuth := cfg.Proxy != nil && (cfg.Proxy.Username != "" || cfg.Proxy.Password != "")
	if needsAuth {
		installRouting(navCtx, AllowAll, cfg.Proxy)
	}

	actions := []chromedp.Action{
		network.Enable(),
		emulation.SetUserAgentOverride(userAgent),
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
	}
	if needsAuth {
		actions = append(actions, fetch.Enable().WithHandleAuthRequests(true))
	}
	if len(cfg.ExtraHeaders) > 0 {
		actions = append(actions, network.SetExtraHTTPHeaders(toNetworkHeaders(cfg.ExtraHeaders)))
	}
	if len(cfg.Cookies) > 0 {
		actions = append(actions, setCookies(rawURL, cfg.Cookies))
	}
	actions = append(actions, chromedp.Navigate(rawURL))
	if cfg.PageEvaluation != "" {
		actions = append(actions, chromedp.Evaluate(cfg.PageEvaluation, nil))
	}
	if cfg.BrowserWait > 0 {
		actions = append(actions, chromedp.Sleep(cfg.BrowserWait))
	}

	var content, finalURL string
	actions = append(actions,
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &content),
	)

	if err := chromedp.Run(navCtx, actions...); err != nil {
		return nil, fmt.Errorf("browse %s: %w", rawURL, err)
	}

	statusCode, statusText := status.result()
	return &model.FetchResult{
		Content:    content,
		StatusCode: statusCode,
		URL:        finalURL,
		OK:         statusCode >= 200 && statusCode < 300,
		Reason:     statusText,
	}, nil
}

// CaptureHeaders launches a fresh browser, intercepts every request issued
// while loading rawURL, and returns the observed headers keyed by request
// URL. Requests are always continued (unless cfg.Handler blocks them), so
// recording never starves the page of a sub-resource. With
// cfg.ContinueOnError set, a navigation failure is logged and the partial
// capture is returned without error.
func (b *Browser) CaptureHeaders(ctx context.Context, rawURL string, cfg CaptureConfig) (model.HeaderCapture, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultCaptureConfig().Timeout
	}
	handler := cfg.Handler
	if handler == nil {
		handler = AllowAll
	}
	recorder := NewHeaderRecorder()

	requestID := uuid.NewString()[:8]
	logger := b.logger.With(interfaces.Field{Key: "request_id", Value: requestID})
	logger.Debug("capturing request headers",
		interfaces.Field{Key: "url", Value: rawURL})

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(cfg.Headless, cfg.Proxy)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	navCtx, cancelNav := context.WithTimeout(browserCtx,
		time.Duration(timeoutMillis(cfg.Timeout))*time.Millisecond)
	defer cancelNav()

	installRouting(navCtx, recordAllowed(handler, recorder), cfg.Proxy)

	err := chromedp.Run(navCtx,
		fetch.Enable().WithHandleAuthRequests(true),
		emulation.SetUserAgentOverride(userAgent),
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate(rawURL),
	)
	if err != nil {
		if cfg.ContinueOnError {
			logger.Error("fail to load headers",
				interfaces.Field{Key: "url", Value: rawURL},
				interfaces.Field{Key: "error", Value: err.Error()})
			return recorder.Capture(), nil
		}
		return recorder.Capture(), fmt.Errorf("capture headers of %s: %w", rawURL, err)
	}

	return recorder.Capture(), nil
}

// allocatorOptions builds the exec allocator flags for one call: the fixed
// window size, the desktop user agent, and the proxy/headless switches.
func allocatorOptions(headless bool, proxy *model.ProxySettings) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(viewportWidth, viewportHeight),
	)
	if !headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if proxy != nil && proxy.Server != "" {
		opts = append(opts, chromedp.ProxyServer(proxy.Server))
		if proxy.Bypass != "" {
			opts = append(opts, chromedp.Flag("proxy-bypass-list", proxy.Bypass))
		}
	}
	return opts
}

// statusWatcher tracks the most recent main-document response seen on a
// browser context.
type statusWatcher struct {
	mu         sync.Mutex
	statusCode int
	statusText string
}

// watchMainResponse subscribes to network responses on ctx and keeps the
// status of the last document response, which after redirects is the one the
// page settled on.
func watchMainResponse(ctx context.Context) *statusWatcher {
	w := &statusWatcher{}
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		res, ok := ev.(*network.EventResponseReceived)
		if !ok || res.Type != network.ResourceTypeDocument {
			return
		}
		w.mu.Lock()
		w.statusCode = int(res.Response.Status)
		w.statusText = res.Response.StatusText
		w.mu.Unlock()
	})
	return w
}

// result returns the captured status, falling back to the canonical status
// text when the server sent none (HTTP/2 has no reason phrase on the wire).
func (w *statusWatcher) result() (int, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	text := w.statusText
	if text == "" {
		text = http.StatusText(w.statusCode)
	}
	return w.statusCode, text
}

// setCookies installs the given cookies in the browser context. The devtools
// call requires a domain or a URL, so cookies without a Domain are scoped to
// the navigation target.
func setCookies(rawURL string, cookies []model.Cookie) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for _, ck := range cookies {
			p := network.SetCookie(ck.Name, ck.Value)
			if ck.Domain != "" {
				p = p.WithDomain(ck.Domain)
			} else {
				p = p.WithURL(rawURL)
			}
			if err := p.Do(ctx); err != nil {
				return fmt.Errorf("set cookie %s: %w", ck.Name, err)
			}
		}
		return nil
	})
}

func toNetworkHeaders(headers map[string]string) network.Headers {
	out := make(network.Headers, len(headers))
	for k, v := range headers {
		out[k] = v
	}
	return out
}
