package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// EnvelopeVersion is the current version of the mini-app payload.
const EnvelopeVersion = 1

// Reserved envelope keys; everything else is a field value.
const (
	EnvelopeKeyType        = "applicationType"
	EnvelopeKeySubmittedAt = "submittedAt"
	EnvelopeKeyVersion     = "schemaVersion"
)

// isoTimestamp matches what the mini-app produces with Date.toISOString.
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

var ErrInvalidEnvelope = errors.New("invalid submission envelope")

// envelopeSchemaV1 describes the boundary payload. Field values are open;
// the discriminator must name a known branch.
const envelopeSchemaV1 = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["applicationType"],
  "properties": {
    "applicationType": {"type": "string", "enum": ["company", "participant"]},
    "submittedAt": {"type": "string"},
    "schemaVersion": {"type": "integer", "enum": [1]}
  },
  "additionalProperties": true
}`

var envelopeSchema = mustLoadSchema(envelopeSchemaV1)

func mustLoadSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("form: invalid envelope schema: %v", err))
	}
	return schema
}

// Envelope is the payload handed from the mini-app to the bot on submit.
type Envelope struct {
	Version         int
	ApplicationType Branch
	SubmittedAt     time.Time
	Fields          Values
}

// BuildEnvelope packages the entered values, the branch and the submit time.
func BuildEnvelope(branch Branch, fields Values, now time.Time) Envelope {
	return Envelope{
		Version:         EnvelopeVersion,
		ApplicationType: branch,
		SubmittedAt:     now,
		Fields:          maps.Clone(fields),
	}
}

// MarshalJSON flattens the field values next to the reserved keys.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+3)
	for k, v := range e.Fields {
		out[k] = v
	}
	out[EnvelopeKeyType] = e.ApplicationType
	out[EnvelopeKeySubmittedAt] = e.SubmittedAt.UTC().Format(isoTimestamp)
	out[EnvelopeKeyVersion] = e.Version
	return json.Marshal(out)
}

// ParseEnvelope validates raw against the envelope schema and splits it
// into metadata and field values. Field values are kept as decoded.
func ParseEnvelope(raw string) (Envelope, error) {
	if strings.TrimSpace(raw) == "" {
		return Envelope{}, fmt.Errorf("%w: empty payload", ErrInvalidEnvelope)
	}

	result, err := envelopeSchema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return Envelope{}, fmt.Errorf("%w: %s", ErrInvalidEnvelope, strings.Join(msgs, "; "))
	}

	dec := json.NewDecoder(bytes.NewBufferString(raw))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	env := Envelope{
		Version:         EnvelopeVersion,
		ApplicationType: Branch(AsString(payload[EnvelopeKeyType])),
		Fields:          make(Values, len(payload)),
	}
	if ts := AsString(payload[EnvelopeKeySubmittedAt]); ts != "" {
		if at, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			env.SubmittedAt = at
		}
	}
	for k, v := range payload {
		switch k {
		case EnvelopeKeyType, EnvelopeKeySubmittedAt, EnvelopeKeyVersion:
			continue
		}
		env.Fields[k] = v
	}
	return env, nil
}
