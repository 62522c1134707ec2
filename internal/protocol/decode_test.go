package protocol

import (
	"errors"
	"testing"
)

func TestParseEnvelope(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"event":"show_final","payload":{"scoreboard":[]}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Event != EventShowFinal {
		t.Fatalf("event = %q", env.Event)
	}
}

func TestParseEnvelopeMalformed(t *testing.T) {
	for _, raw := range []string{"not json", "{}", `{"payload":{}}`} {
		_, err := ParseEnvelope([]byte(raw))
		if !errors.Is(err, ErrMalformedMessage) {
			t.Errorf("ParseEnvelope(%q) = %v, want ErrMalformedMessage", raw, err)
		}
	}
}

func TestDecodePayloadValidates(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"event":"show_question","payload":{"question":{"text":"?"},"question_number":2,"total_questions":5}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var payload ShowQuestionPayload
	if err := env.DecodePayload(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.QuestionNumber != 2 || payload.Question.Text != "?" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDecodePayloadRejectsMissingFields(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"event":"show_question","payload":{"question":{"text":"?"}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var payload ShowQuestionPayload
	if err := env.DecodePayload(&payload); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("decode = %v, want ErrInvalidPayload", err)
	}

	env, err = ParseEnvelope([]byte(`{"event":"error"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var msg ErrorPayload
	if err := env.DecodePayload(&msg); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("empty payload = %v, want ErrInvalidPayload", err)
	}
}
