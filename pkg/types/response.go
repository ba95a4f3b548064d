// Package types holds the JSON envelopes every endpoint responds
// with. Successful calls wrap their payload in "data"; failures carry
// a code, a safe message, and optional details under "error".
package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError mirrors the coded errors from pkg/errors. Code is one of
// the wire constants there; Details appears only for codes that allow
// it, such as field-level validation failures.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
