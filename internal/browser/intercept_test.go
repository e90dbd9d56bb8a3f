package browser

import (
	"strings"
	"testing"

	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"

	"github.com/raysh454/kumo/internal/model"
)

func TestHeaderRecorderCopiesAndContinues(t *testing.T) {
	t.Parallel()
	recorder := NewHeaderRecorder()
	handler := recordAllowed(AllowAll, recorder)

	req := &InterceptedRequest{
		URL:     "https://example.com/app.js",
		Method:  "GET",
		Headers: map[string]string{"Accept": "*/*"},
	}
	if got := handler(req); got != DecisionContinue {
		t.Fatalf("handler decision = %v, want DecisionContinue", got)
	}

	req.Headers["Accept"] = "mutated"
	capture := recorder.Capture()
	if capture["https://example.com/app.js"]["Accept"] != "*/*" {
		t.Error("recorder shares the request's header map")
	}
}

func TestRecordAllowedSkipsBlockedRequests(t *testing.T) {
	t.Parallel()
	recorder := NewHeaderRecorder()
	blockTrackers := func(req *InterceptedRequest) Decision {
		if strings.Contains(req.URL, "tracker") {
			return DecisionFail
		}
		return DecisionContinue
	}
	handler := recordAllowed(blockTrackers, recorder)

	allowed := &InterceptedRequest{URL: "https://example.com/", Headers: map[string]string{}}
	blocked := &InterceptedRequest{URL: "https://tracker.example.com/px", Headers: map[string]string{}}

	if handler(allowed) != DecisionContinue {
		t.Error("allowed request was not continued")
	}
	if handler(blocked) != DecisionFail {
		t.Error("blocked request was not failed")
	}

	capture := recorder.Capture()
	if _, ok := capture["https://example.com/"]; !ok {
		t.Error("allowed request missing from capture")
	}
	if _, ok := capture["https://tracker.example.com/px"]; ok {
		t.Error("blocked request must stay out of the capture")
	}
}

func TestNewInterceptedRequestFlattensHeaders(t *testing.T) {
	t.Parallel()
	ev := &fetch.EventRequestPaused{
		RequestID: "interception-1",
		Request: &network.Request{
			URL:    "https://example.com/",
			Method: "GET",
			Headers: network.Headers{
				"Accept":  "text/html",
				"X-Count": 42,
			},
		},
	}

	req := newInterceptedRequest(ev)
	if req.URL != "https://example.com/" || req.Method != "GET" {
		t.Errorf("request = %+v, want URL and method from the event", req)
	}
	if req.Headers["Accept"] != "text/html" {
		t.Errorf("Accept = %q, want %q", req.Headers["Accept"], "text/html")
	}
	if req.Headers["X-Count"] != "42" {
		t.Errorf("non-string header value not flattened: %q", req.Headers["X-Count"])
	}
}

func TestAuthResponseSuppliesProxyCredentials(t *testing.T) {
	t.Parallel()
	resp := authResponse(&model.ProxySettings{
		Server:   "http://proxy.example.com:3128",
		Username: "alice",
		Password: "secret",
	})
	if resp.Response != fetch.AuthChallengeResponseResponseProvideCredentials {
		t.Errorf("Response = %q, want ProvideCredentials", resp.Response)
	}
	if resp.Username != "alice" || resp.Password != "secret" {
		t.Errorf("credentials = %q/%q, want the proxy's", resp.Username, resp.Password)
	}
}

func TestAuthResponseWithoutCredentials(t *testing.T) {
	t.Parallel()
	for _, proxy := range []*model.ProxySettings{
		nil,
		{Server: "http://proxy.example.com:3128"},
	} {
		resp := authResponse(proxy)
		if resp.Response != fetch.AuthChallengeResponseResponseDefault {
			t.Errorf("authResponse(%+v).Response = %q, want Default", proxy, resp.Response)
		}
		if resp.Username != "" || resp.Password != "" {
			t.Errorf("authResponse(%+v) must not fabricate credentials", proxy)
		}
	}
}

func TestCaptureReturnsCopy(t *testing.T) {
	t.Parallel()
	recorder := NewHeaderRecorder()
	recorder.Record(&InterceptedRequest{URL: "https://example.com/", Headers: map[string]string{"A": "1"}})

	first := recorder.Capture()
	first["https://example.com/"]["A"] = "mutated"

	second := recorder.Capture()
	if second["https://example.com/"]["A"] != "1" {
		t.Error("Capture exposes internal state")
	}
}
