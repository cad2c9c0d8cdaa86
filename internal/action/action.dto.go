package action

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// InvokeRequest is the raw body of the action endpoint. Action stays raw so
// a non-string value can be told apart from a missing one.
type InvokeRequest struct {
	Action  json.RawMessage `json:"action"`
	Params  json.RawMessage `json:"params"`
	Context *InvokeContext  `json:"context"`
}

type InvokeContext struct {
	UserID           json.RawMessage `json:"userId"`
	Scopes           json.RawMessage `json:"scopes"`
	UTCOffsetMinutes json.RawMessage `json:"utcOffsetMinutes"`
}

// CallerHeaders are the identity headers set by the gateway in front of the
// service.
type CallerHeaders struct {
	UserID           string
	Scopes           string
	UTCOffsetMinutes string
}

// Name returns the action name and whether it was a JSON string.
func (r *InvokeRequest) Name() (string, bool) {
	if len(r.Action) == 0 {
		return "", false
	}
	var name string
	if err := json.Unmarshal(r.Action, &name); err != nil {
		return "", false
	}
	return name, name != ""
}

// Response is the uniform envelope returned by the action endpoint.
type Response struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func OK(result interface{}) *Response {
	return &Response{Success: true, Result: result}
}

func Fail(code, message string) *Response {
	return &Response{Success: false, Error: &Error{Code: code, Message: message}}
}

// FiniteNumber reports the value of raw when it is a JSON number. Strings,
// booleans and null are not numbers.
func FiniteNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FiniteHeaderNumber parses a numeric header value. An empty header is
// absent; surrounding spaces are ignored.
func FiniteHeaderNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, !math.IsNaN(v) && !math.IsInf(v, 0)
}
