package identity

import "fmt"

// Keys read from a vendor error payload.
const (
	CodeKey    = "__type"
	MessageKey = "message"
)

// ErrorPayload is the untyped error information a vendor attaches to a failed operation.
type ErrorPayload interface {
	Lookup(key string) (string, bool)
}

// UserInfo is a flat ErrorPayload, as decoded from a vendor error body.
type UserInfo map[string]string

var _ ErrorPayload = UserInfo{}

func (u UserInfo) Lookup(key string) (string, bool) {
	v, ok := u[key]
	return v, ok
}

// ErrorObject is the only failure shape surfaced to callers.
type ErrorObject struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorObject extracts the code and message from a vendor payload.
// Absent keys leave the corresponding field empty.
func NewErrorObject(payload ErrorPayload) *ErrorObject {
	if payload == nil {
		return &ErrorObject{}
	}
	code, _ := payload.Lookup(CodeKey)
	message, _ := payload.Lookup(MessageKey)
	return &ErrorObject{Code: code, Message: message}
}

func (e *ErrorObject) Error() string {
	switch {
	case e.Code == "":
		return e.Message
	case e.Message == "":
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
