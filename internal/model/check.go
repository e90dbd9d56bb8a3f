package model

// CheckResult classifies a response status for callers deciding whether a
// fetched page is usable.
type CheckResult int

const (
	// CheckOK means the response is usable.
	CheckOK CheckResult = iota

	// CheckErrContinue means the failure looks transient — the server side
	// is erroring — and trying again later may succeed.
	CheckErrContinue

	// CheckErrTerminate means the request was rejected outright (blocked,
	// missing, unauthorized); repeating it will not change the outcome.
	CheckErrTerminate
)

func (c CheckResult) String() string {
	switch c {
	case CheckOK:
		return "ok"
	case CheckErrContinue:
		return "continue"
	case CheckErrTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// CheckStatus classifies an HTTP status code. Redirect statuses count as OK
// because the adapters resolve redirects before the result is built. Server
// errors classify as transient; every other non-success status terminates,
// since a blocked or missing resource stays that way on a retry.
func CheckStatus(statusCode int) CheckResult {
	switch {
	case statusCode >= 200 && statusCode < 400:
		return CheckOK
	case statusCode >= 500:
		return CheckErrContinue
	default:
		return CheckErrTerminate
	}
}
