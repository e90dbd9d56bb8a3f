package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/raysh454/kumo/internal/model"
)

// Decision is the explicit verdict a RouteHandler must return before an
// intercepted request proceeds.
type Decision int

const (
	// DecisionContinue lets the request go out unmodified.
	DecisionContinue Decision = iota

	// DecisionFail aborts the request with a blocked-by-client error.
	DecisionFail
)

// InterceptedRequest is the read-only view of a paused request handed to a
// RouteHandler.
type InterceptedRequest struct {
	URL     string
	Method  string
	Headers map[string]string
}

// RouteHandler inspects an intercepted request and decides whether it
// proceeds. Handlers run off the event loop and must not block on browser
// actions.
type RouteHandler func(req *InterceptedRequest) Decision

// AllowAll continues every request.
func AllowAll(*InterceptedRequest) Decision {
	return DecisionContinue
}

// HeaderRecorder accumulates the headers of every request it sees, keyed by
// request URL.
type HeaderRecorder struct {
	mu      sync.Mutex
	capture model.HeaderCapture
}

// NewHeaderRecorder creates an empty recorder.
func NewHeaderRecorder() *HeaderRecorder {
	return &HeaderRecorder{capture: make(model.HeaderCapture)}
}

// Record stores the request's headers under its URL.
func (hr *HeaderRecorder) Record(req *InterceptedRequest) {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	hr.capture.Add(req.URL, req.Headers)
}

// Capture returns a copy of everything recorded so far.
func (hr *HeaderRecorder) Capture() model.HeaderCapture {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	out := make(model.HeaderCapture, len(hr.capture))
	for url, headers := range hr.capture {
		out.Add(url, headers)
	}
	return out
}

// recordAllowed wraps handler so that every request it allows is also
// recorded. Blocked requests stay out of the capture.
func recordAllowed(handler RouteHandler, recorder *HeaderRecorder) RouteHandler {
	return func(req *InterceptedRequest) Decision {
		decision := handler(req)
		if decision == DecisionContinue {
			recorder.Record(req)
		}
		return decision
	}
}

// installRouting subscribes to the fetch domain's paused-request and auth
// events on ctx. Each paused request is run through handler and explicitly
// continued or failed; auth challenges are answered with the proxy
// credentials. fetch.Enable must run on the same context before navigation.
func installRouting(ctx context.Context, handler RouteHandler, proxy *model.ProxySettings) {
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		switch ev := ev.(type) {
		case *fetch.EventRequestPaused:
			go func() {
				execCtx := executorContext(ctx)
				req := newInterceptedRequest(ev)
				if handler(req) == DecisionContinue {
					_ = fetch.ContinueRequest(ev.RequestID).Do(execCtx)
				} else {
					_ = fetch.FailRequest(ev.RequestID, network.ErrorReasonBlockedByClient).Do(execCtx)
				}
			}()
		case *fetch.EventAuthRequired:
			go func() {
				execCtx := executorContext(ctx)
				_ = fetch.ContinueWithAuth(ev.RequestID, authResponse(proxy)).Do(execCtx)
			}()
		}
	})
}

// authResponse builds the answer for a devtools auth challenge. Proxy
// credentials are supplied when configured; otherwise the browser's default
// handling applies.
func authResponse(proxy *model.ProxySettings) *fetch.AuthChallengeResponse {
	if proxy == nil || (proxy.Username == "" && proxy.Password == "") {
		return &fetch.AuthChallengeResponse{
			Response: fetch.AuthChallengeResponseResponseDefault,
		}
	}
	return &fetch.AuthChallengeResponse{
		Response: fetch.AuthChallengeResponseResponseProvideCredentials,
		Username: proxy.Username,
		Password: proxy.Password,
	}
}

func newInterceptedRequest(ev *fetch.EventRequestPaused) *InterceptedRequest {
	headers := make(map[string]string, len(ev.Request.Headers))
	for k, v := range ev.Request.Headers {
		headers[k] = fmt.Sprint(v)
	}
	return &InterceptedRequest{
		URL:     ev.Request.URL,
		Method:  ev.Request.Method,
		Headers: headers,
	}
}

func executorContext(ctx context.Context) context.Context {
	c := chromedp.FromContext(ctx)
	return cdp.WithExecutor(ctx, c.Target)
}
