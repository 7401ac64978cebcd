package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/vovakirdan/nlweb-api/internal/proto"
)

// ParseChatRequest decodes a raw chat body.
//
// Malformed JSON and blank messages produce a *ValidationError. A body that is valid JSON
// but not an object, or whose message is not a string, is reported as a plain error so the
// transport answers it as an internal failure.
func ParseChatRequest(body []byte) (proto.ChatRequest, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return proto.ChatRequest{}, errInvalidJSON(err)
	}

	fields, ok := raw.(map[string]any)
	if !ok {
		return proto.ChatRequest{}, fmt.Errorf("%w: got %T", ErrUnexpectedPayload, raw)
	}

	var req proto.ChatRequest
	if value, present := fields["message"]; present {
		msg, isString := value.(string)
		if !isString {
			return proto.ChatRequest{}, fmt.Errorf("%w: got %T", ErrMessageType, value)
		}
		req.Message = msg
	}

	if IsBlank(req.Message) {
		return proto.ChatRequest{}, errEmptyMessage()
	}
	return req, nil
}

// IsBlank reports whether message has nothing left after trimming whitespace.
// The file, group, record and unit separators (0x1c-0x1f) count as whitespace too.
func IsBlank(message string) bool {
	return strings.TrimFunc(message, isSpace) == ""
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
