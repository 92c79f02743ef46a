// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DecodeOptions is the small, fixed set of toggles threaded through decode.
type DecodeOptions struct {
	// UseFormatting renders scaled numeric fields to fixed-width text using
	// the record's DigitsLeft/DigitsRight/SuppressLeadingZero hints instead
	// of leaving them as decimal values.
	UseFormatting bool
}

// RecordField is one decoded entry: a field name and its typed value (or
// ordered slice of values for sequence fields).
type RecordField struct {
	Name  string
	Value any
}

// Record is a decoded notification: an ordered mapping from field name to
// typed value, owned solely by the consumer once emitted.
type Record struct {
	Tag    string
	Fields []RecordField
}

// Get returns the first value stored under name.
func (r *Record) Get(name string) (any, bool) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return r.Fields[i].Value, true
		}
	}
	return nil, false
}

func (r *Record) set(name string, value any) {
	r.Fields = append(r.Fields, RecordField{Name: name, Value: value})
}

// pop removes and returns the first value stored under name.
func (r *Record) pop(name string) (any, bool) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			value := r.Fields[i].Value
			r.Fields = append(r.Fields[:i], r.Fields[i+1:]...)
			return value, true
		}
	}
	return nil, false
}

// element is one flat (name, text) pair extracted from a framed record.
type element struct {
	name string
	text string
}

// parseFlat extracts the flat element list from a framed record. The record
// shape is strictly flat: no attributes, no namespaces, no nesting. Element
// text is entity-escaped on the wire so it never contains angle brackets,
// which keeps the scan unambiguous.
func parseFlat(raw *RawRecord) ([]element, error) {
	body := strings.TrimSpace(strings.Join(raw.Lines, "\n"))

	openTag := "<" + raw.Tag + ">"
	closeTag := "</" + raw.Tag + ">"
	if !strings.HasPrefix(body, openTag) || !strings.HasSuffix(body, closeTag) {
		return nil, fmt.Errorf("%w: %s: record delimiters not found", ErrMalformedRecord, raw.Tag)
	}
	body = body[len(openTag) : len(body)-len(closeTag)]

	var elements []element
	rest := strings.TrimSpace(body)
	for rest != "" {
		if rest[0] != '<' {
			return nil, fmt.Errorf("%w: %s: stray text %q", ErrMalformedRecord, raw.Tag, clip(rest))
		}
		gt := strings.IndexByte(rest, '>')
		if gt < 0 {
			return nil, fmt.Errorf("%w: %s: unterminated tag %q", ErrMalformedRecord, raw.Tag, clip(rest))
		}
		name := rest[1:gt]
		if name == "" || strings.HasPrefix(name, "/") {
			return nil, fmt.Errorf("%w: %s: unexpected tag %q", ErrMalformedRecord, raw.Tag, name)
		}
		rest = rest[gt+1:]

		end := "</" + name + ">"
		stop := strings.Index(rest, end)
		if stop < 0 {
			return nil, fmt.Errorf("%w: %s: element %s not closed", ErrMalformedRecord, raw.Tag, name)
		}
		elements = append(elements, element{name: name, text: strings.TrimSpace(rest[:stop])})
		rest = strings.TrimSpace(rest[stop+len(end):])
	}
	return elements, nil
}

func clip(s string) string {
	if len(s) > 24 {
		return s[:24] + "…"
	}
	return s
}

// Decode converts one framed record into a typed Record against this schema.
//
// Outcomes: a Record; ErrSkipRecord when a skip-on-missing field resolved to
// no value (the record is intentionally blank, not erroneous); or an error
// from the §7 taxonomy. No outcome affects the resynchronizer's ability to
// parse the next record.
func (s *Schema) Decode(raw *RawRecord, opts DecodeOptions) (*Record, error) {
	elements, err := parseFlat(raw)
	if err != nil {
		return nil, err
	}

	// Group collected text by element name, preserving order within each
	// group and the order in which names first appeared.
	groups := make(map[string][]string)
	var names []string
	for _, el := range elements {
		if _, seen := groups[el.name]; !seen {
			names = append(names, el.name)
		}
		groups[el.name] = append(groups[el.name], el.text)
	}

	record := &Record{Tag: s.Tag}
	record.set(ResponseTypeField, s.Tag)

	// Each descriptor consumes its name's group independently; duplicate
	// descriptors for one wire name both see the same values.
	consumed := make(map[string]bool, len(s.Fields))
	for i := range s.Fields {
		field := &s.Fields[i]
		group := groups[field.Name]
		consumed[field.Name] = true

		if !field.Sequence && len(group) > 1 {
			return nil, fmt.Errorf("record %s: %w: %d values for %s",
				s.Tag, ErrUnexpectedSequence, len(group), field.Name)
		}

		values := group
		if field.Sentinel != "" {
			values = values[:0:0]
			for _, v := range group {
				if v != field.Sentinel {
					values = append(values, v)
				}
			}
		}

		if len(values) == 0 {
			switch {
			case field.SkipOnMissing:
				return nil, fmt.Errorf("record %s: field %s blank: %w", s.Tag, field.Name, ErrSkipRecord)
			case field.Required:
				return nil, fmt.Errorf("record %s: %w: %s", s.Tag, ErrMissingField, field.Name)
			}
			// Optional and absent: no entry at all, never a placeholder.
			continue
		}

		if field.Sequence {
			list := make([]any, 0, len(values))
			for _, text := range values {
				value, err := field.DecodeValue(text)
				if err != nil {
					return nil, fmt.Errorf("record %s: %w", s.Tag, err)
				}
				list = append(list, value)
			}
			record.set(field.Name, list)
			continue
		}

		value, err := field.DecodeValue(values[0])
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", s.Tag, err)
		}
		record.set(field.Name, value)
	}

	// Drift guard: anything the schema did not consume is a protocol
	// mismatch, never silently dropped.
	var unparsed []string
	for _, name := range names {
		if !consumed[name] {
			unparsed = append(unparsed, name)
		}
	}
	if len(unparsed) > 0 {
		return nil, &UnparsedFieldsError{Tag: s.Tag, Fields: unparsed}
	}

	if len(s.Scaled) > 0 {
		if err := s.applyScaling(record, opts); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// applyScaling is the consumption-record extension layered strictly after
// field decode: rescale the named fields by Multiplier/Divisor and
// optionally render them using the record's formatting hints.
func (s *Schema) applyScaling(record *Record, opts DecodeOptions) error {
	multiplier := popScaleFactor(record, "Multiplier")
	divisor := popScaleFactor(record, "Divisor")

	digitsRight, _ := popUint(record, "DigitsRight")
	digitsLeft, _ := popUint(record, "DigitsLeft")
	suppressZero, _ := popBool(record, "SuppressLeadingZero")

	for _, name := range s.Scaled {
		raw, ok := record.pop(name)
		if !ok {
			continue
		}
		n, ok := raw.(uint64)
		if !ok {
			return fmt.Errorf("record %s: %w: %s is not numeric", s.Tag, ErrMalformedValue, name)
		}
		scaled := decimal.NewFromUint64(n).Mul(multiplier).Div(divisor)
		if opts.UseFormatting {
			record.set(name, formatScaled(scaled, int(digitsLeft), int(digitsRight), suppressZero))
		} else {
			record.set(name, scaled)
		}
	}
	return nil
}

// popScaleFactor extracts Multiplier or Divisor. Zero means "not set" on
// this device and must not scale (or divide), so it maps to one.
func popScaleFactor(record *Record, name string) decimal.Decimal {
	n, ok := popUint(record, name)
	if !ok || n == 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromUint64(n)
}

func popUint(record *Record, name string) (uint64, bool) {
	value, ok := record.pop(name)
	if !ok {
		return 0, false
	}
	n, ok := value.(uint64)
	return n, ok
}

func popBool(record *Record, name string) (bool, bool) {
	value, ok := record.pop(name)
	if !ok {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// formatScaled renders a scaled value to the fixed-width textual form the
// meter's display would use: digitsRight fractional digits, and the integer
// part zero-padded to digitsLeft unless suppression is requested.
func formatScaled(d decimal.Decimal, digitsLeft, digitsRight int, suppressZero bool) string {
	text := d.StringFixed(int32(digitsRight))

	negative := strings.HasPrefix(text, "-")
	text = strings.TrimPrefix(text, "-")

	intPart := text
	fracPart := ""
	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		intPart, fracPart = text[:dot], text[dot:]
	}
	if !suppressZero && len(intPart) < digitsLeft {
		intPart = strings.Repeat("0", digitsLeft-len(intPart)) + intPart
	}
	if negative {
		intPart = "-" + intPart
	}
	return intPart + fracPart
}
