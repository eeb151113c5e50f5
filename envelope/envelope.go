// Package envelope implements the {code, message, data} wrapper shared by
// every endpoint. Failures travel in-band: callers branch on Code, never on
// the transport status.
package envelope

import (
	"encoding/json"
	"fmt"
)

// Envelope codes
const (
	CodeOK           = 0
	CodeValidation   = 400
	CodeUnauthorized = 401
	CodeNotFound     = 404
	CodeInternal     = 500
	CodeLoginFailed  = 1001
)

// MessageOK is the message of every successful envelope
const MessageOK = "ok"

// Envelope is the wire shape of every response
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Success wraps a payload
func Success(data any) Envelope {
	return Envelope{Code: CodeOK, Message: MessageOK, Data: data}
}

// Failure builds a non-zero envelope. data may be nil.
func Failure(code int, message string, data any) Envelope {
	return Envelope{Code: code, Message: message, Data: data}
}

// Error is the domain error a client raises for a non-zero envelope
type Error struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

type raw struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode unwraps body into out when code is 0. A non-zero code yields an
// *Error. out may be nil when the payload is not needed.
func Decode(body []byte, out any) error {
	var env raw
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to decode envelope: %w", err)
	}
	if env.Code == nil {
		return fmt.Errorf("failed to decode envelope: missing code")
	}

	if *env.Code != CodeOK {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return &Error{Code: *env.Code, Message: msg, Data: env.Data}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode envelope data: %w", err)
	}
	return nil
}
