// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// wireEncoder builds a transformer for the device's legacy single-byte text
// encoding. Runes Windows-1252 cannot carry are replaced with character
// references. Encoders are stateful, so each Encode gets a fresh one.
func wireEncoder() *encoding.Encoder {
	return encoding.HTMLEscapeUnsupported(charmap.Windows1252.NewEncoder())
}

// Encode serializes one command record against this schema. Provided args
// win over defaults on key collision; keys match case-insensitively. Fields
// are emitted in schema order, required fields must resolve to a value, and
// optional absent fields are omitted entirely.
//
// The record is fully serialized before the caller sees any bytes, so a
// failed encode never leaves a transport partially written.
func (s *Schema) Encode(args, defaults map[string]any) ([]byte, error) {
	merged := make(map[string]any, len(args)+len(defaults))
	for k, v := range defaults {
		merged[strings.ToLower(k)] = v
	}
	for k, v := range args {
		merged[strings.ToLower(k)] = v
	}

	var b strings.Builder
	b.WriteString("<" + CommandTag + ">\n")
	b.WriteString("<Name>" + s.Tag + "</Name>\n")

	for i := range s.Fields {
		field := &s.Fields[i]
		value, ok := merged[strings.ToLower(field.Name)]
		if !ok {
			if field.Required {
				return nil, fmt.Errorf("%w: %s", ErrMissingArgument, field.Name)
			}
			continue
		}
		text, err := field.EncodeValue(value)
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", s.Tag, err)
		}
		b.WriteString("<" + field.Name + ">" + text + "</" + field.Name + ">\n")
	}

	b.WriteString("</" + CommandTag + ">\n")

	wire, err := wireEncoder().Bytes([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("command %s: %w: %v", s.Tag, ErrMalformedValue, err)
	}
	return wire, nil
}

// MarshalCommand serializes the named catalog command with the given
// arguments and no defaults.
func MarshalCommand(name string, args map[string]any) ([]byte, error) {
	schema, err := CommandSchema(name)
	if err != nil {
		return nil, err
	}
	return schema.Encode(args, nil)
}
