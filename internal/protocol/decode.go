package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMalformedMessage marks inbound frames that are not valid JSON or
	// lack the envelope shape. They are logged and dropped.
	ErrMalformedMessage = errors.New("malformed message")
	// ErrInvalidPayload marks envelopes whose payload fails the schema for
	// their event tag.
	ErrInvalidPayload = errors.New("invalid payload")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseEnvelope decodes the outer `{event, payload}` shape.
func ParseEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if env.Event == "" {
		return Envelope{}, fmt.Errorf("%w: missing event tag", ErrMalformedMessage)
	}
	return env, nil
}

// DecodePayload unmarshals the envelope payload into dest and checks it
// against dest's validation schema. Missing or wrong-typed fields produce a
// typed error instead of silently defaulting.
func (e Envelope) DecodePayload(dest any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("%w: empty payload for %q", ErrInvalidPayload, e.Event)
	}
	if err := json.Unmarshal(e.Payload, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := validate.Struct(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
