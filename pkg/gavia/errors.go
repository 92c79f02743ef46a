// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classifying every failure the engine can produce. Callers
// test with errors.Is; the concrete error values carry field/tag context.
var (
	// ErrOutOfRange reports a numeric value outside a field's inclusive bound.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnknownVariant reports an enumeration symbol, ordinal or wire token
	// absent from the vocabulary.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrInvalidCurrency reports a currency code missing from the shipped
	// ISO 4217 table. Distinct from ErrMalformedValue: it points at table
	// staleness rather than wire corruption.
	ErrInvalidCurrency = errors.New("unknown currency")

	// ErrMalformedValue reports wire text that cannot be parsed as the
	// field's type.
	ErrMalformedValue = errors.New("malformed value")

	// ErrMalformedRecord reports record markup that cannot be parsed into
	// flat element/text pairs.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMissingField reports a required field absent from a notification.
	ErrMissingField = errors.New("missing field")

	// ErrMissingArgument reports a required command argument the caller did
	// not supply.
	ErrMissingArgument = errors.New("missing argument")

	// ErrUnexpectedSequence reports multiple values for a single-valued field.
	ErrUnexpectedSequence = errors.New("unexpected sequence")

	// ErrUnknownTag reports a record or command name with no catalog entry.
	ErrUnknownTag = errors.New("unknown tag")
)

// ErrSkipRecord signals that a record was intentionally blank and should be
// ignored. It is an expected outcome, not a failure: callers must check for
// it with errors.Is before treating a decode error as a fault.
var ErrSkipRecord = errors.New("record skipped")

// FieldError annotates a field-level codec failure with the field it
// concerns. Unwrap exposes the classifying sentinel.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// UnparsedFieldsError reports elements present on the wire that no schema
// descriptor consumed. It is the protocol-drift guard: a populated list means
// the device speaks a newer dialect than the catalog.
type UnparsedFieldsError struct {
	Tag    string
	Fields []string
}

func (e *UnparsedFieldsError) Error() string {
	return fmt.Sprintf("record %s: unparsed fields: %s", e.Tag, strings.Join(e.Fields, ", "))
}

// TruncationDiagnostic is the advisory outcome of the frame resynchronizer
// discarding an incomplete fragment. It is self-healing: the next correctly
// bounded record is unaffected.
type TruncationDiagnostic struct {
	Reason  string // "missing start" or "missing end"
	Dropped int    // lines discarded
}

func (d *TruncationDiagnostic) Error() string {
	return fmt.Sprintf("truncated record (%s): %d line(s) dropped", d.Reason, d.Dropped)
}
