package relay

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dukerupert/folio/internal/domain"
)

// Client-facing failure messages.
const (
	MsgRequired       = "Email and message are required."
	MsgInvalidPayload = "Invalid payload."
	MsgConfiguration  = "Server email configuration error."
	MsgDelivery       = "Failed to send email."
	MsgTooLarge       = "Request body too large"
)

// errTrailingData rejects bodies with anything but whitespace after the object.
var errTrailingData = errors.New("trailing data after JSON body")

// decodeSubmission checks the payload shape. A body that is not exactly one
// JSON object counts as an empty payload. Falsy values (null, "", false, 0) count as
// missing; anything else that is not a string is an invalid payload.
func decodeSubmission(body io.Reader) (Submission, error) {
	const op = "relay.decodeSubmission"

	raw, err := decodeObject(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Submission{}, domain.Errorf(domain.ETOOLARGE, op, "%s", MsgTooLarge)
		}
		raw = nil
	}

	emailVal, messageVal := raw["email"], raw["message"]
	if isMissing(emailVal) || isMissing(messageVal) {
		return Submission{}, domain.Invalid(op, MsgRequired)
	}

	addr, ok := emailVal.(string)
	if !ok {
		return Submission{}, domain.Invalid(op, MsgInvalidPayload)
	}
	message, ok := messageVal.(string)
	if !ok {
		return Submission{}, domain.Invalid(op, MsgInvalidPayload)
	}

	// Non-string names are treated as absent
	name, _ := raw["name"].(string)

	return Submission{
		Name:    NormalizeName(name),
		Email:   addr,
		Message: message,
	}, nil
}

func decodeObject(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(body)

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return nil, err
	}
	return raw, nil
}

func isMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	}
	return false
}
