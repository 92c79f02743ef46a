// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import (
	"encoding/base64"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies a field's wire representation.
type Kind int

// Field kinds.
const (
	KindString Kind = iota
	KindBase64
	KindInteger
	KindHex
	KindDecimal
	KindDate
	KindCurrency
	KindBoolean
	KindEnumeration
	KindIntervalPeriod
)

var kindNames = [...]string{
	KindString:         "string",
	KindBase64:         "base64",
	KindInteger:        "integer",
	KindHex:            "hex",
	KindDecimal:        "decimal",
	KindDate:           "date",
	KindCurrency:       "currency",
	KindBoolean:        "boolean",
	KindEnumeration:    "enumeration",
	KindIntervalPeriod: "interval",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Default inclusive ranges, matching the widest value each wire encoding
// can carry.
const (
	defaultIntegerMax = 0xffffffff
	defaultHexMax     = 0xffffffffffffffff
	dateMax           = 0xffffffff
)

// Field describes one named element of a record: its wire type, cardinality
// and constraints. Fields are pure data; the same descriptor drives both
// encode and decode.
type Field struct {
	Name     string
	Kind     Kind
	Required bool

	// Sentinel, when non-empty, is wire text standing in for "no value",
	// distinct from the element being absent entirely.
	Sentinel string

	// SkipOnMissing aborts decoding of the whole record with ErrSkipRecord
	// when the field resolves to no value. Requires Sentinel.
	SkipOnMissing bool

	// Sequence allows the element to appear 0..N times; decode yields an
	// ordered slice.
	Sequence bool

	// Min and Max bound Integer/Hex/Date values inclusively, checked on
	// encode only.
	Min, Max uint64

	// Vocab is the enumeration vocabulary (KindEnumeration only).
	Vocab Vocab
}

// FieldOption adjusts a field descriptor at construction.
type FieldOption func(*Field)

// Required marks the field mandatory on decode (or on encode, for command
// arguments).
func Required() FieldOption { return func(f *Field) { f.Required = true } }

// Range sets the inclusive numeric bound for Integer/Hex fields.
func Range(min, max uint64) FieldOption {
	return func(f *Field) { f.Min, f.Max = min, max }
}

// Sentinel declares wire text to be treated as "no value observed".
func Sentinel(text string) FieldOption {
	return func(f *Field) { f.Sentinel = text }
}

// SkipOnMissing makes a sentinel-valued field abort the whole record with a
// skip outcome instead of an error.
func SkipOnMissing() FieldOption {
	return func(f *Field) { f.SkipOnMissing = true }
}

// Sequence allows the field to repeat.
func Sequence() FieldOption { return func(f *Field) { f.Sequence = true } }

// Descriptor constructors, one per kind. The catalog reads as data.

// String declares a free-text field.
func String(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindString}, opts)
}

// Base64 declares a raw-bytes field carried as Base64 text.
func Base64(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindBase64}, opts)
}

// Integer declares a decimal-encoded integer field.
func Integer(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindInteger, Max: defaultIntegerMax}, opts)
}

// Hex declares a hexadecimal-encoded integer field.
func Hex(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindHex, Max: defaultHexMax}, opts)
}

// Decimal declares a fixed-point field with five fractional digits.
func Decimal(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindDecimal}, opts)
}

// Date declares a UTC instant carried as hex seconds since Epoch.
func Date(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindDate, Max: dateMax}, opts)
}

// Currency declares an ISO 4217 currency carried as a hex numeric code.
func Currency(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindCurrency, Max: defaultIntegerMax}, opts)
}

// Boolean declares a Y/N flag field.
func Boolean(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindBoolean}, opts)
}

// Enumeration declares a closed-vocabulary field.
func Enumeration(name string, vocab Vocab, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindEnumeration, Vocab: vocab}, opts)
}

// IntervalPeriod declares a field carrying an index into the standard
// interval-length table.
func IntervalPeriod(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindIntervalPeriod, Max: uint64(len(intervalPeriods) - 1)}, opts)
}

func build(f Field, opts []FieldOption) Field {
	for _, opt := range opts {
		opt(&f)
	}
	if err := f.validate(); err != nil {
		panic(fmt.Sprintf("gavia: invalid field %s: %v", f.Name, err))
	}
	return f
}

// validate enforces the descriptor invariants. Descriptors are static
// catalog data, so violations are programming errors.
func (f *Field) validate() error {
	if f.SkipOnMissing && f.Sentinel == "" {
		return fmt.Errorf("skip-on-missing requires a sentinel")
	}
	if f.Required && f.Sentinel != "" && !f.SkipOnMissing && !f.Sequence {
		return fmt.Errorf("required field with a sentinel must skip or aggregate")
	}
	return nil
}

// EncodeValue converts a typed value to its wire text. Numeric values are
// range-checked here; decode trusts the wire. The result is entity-escaped.
func (f *Field) EncodeValue(value any) (string, error) {
	text, err := f.encodeValue(value)
	if err != nil {
		return "", &FieldError{Field: f.Name, Err: err}
	}
	return html.EscapeString(text), nil
}

func (f *Field) encodeValue(value any) (string, error) {
	switch f.Kind {
	case KindString:
		switch s := value.(type) {
		case string:
			return s, nil
		case fmt.Stringer:
			return s.String(), nil
		}
		return fmt.Sprintf("%v", value), nil

	case KindBase64:
		b, ok := value.([]byte)
		if !ok {
			return "", fmt.Errorf("%w: want []byte, got %T", ErrMalformedValue, value)
		}
		return base64.StdEncoding.EncodeToString(b), nil

	case KindInteger:
		n, err := f.boundedUint(value)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(n, 10), nil

	case KindHex:
		n, err := f.boundedUint(value)
		if err != nil {
			return "", err
		}
		return "0x" + strconv.FormatUint(n, 16), nil

	case KindDecimal:
		d, err := toDecimal(value)
		if err != nil {
			return "", err
		}
		return d.StringFixed(5), nil

	case KindDate:
		t, ok := value.(time.Time)
		if !ok {
			return "", fmt.Errorf("%w: want time.Time, got %T", ErrMalformedValue, value)
		}
		seconds := t.UTC().Unix() - Epoch.Unix()
		if seconds < 0 || uint64(seconds) > f.Max {
			return "", fmt.Errorf("%w: %v not representable", ErrOutOfRange, t)
		}
		return "0x" + strconv.FormatUint(uint64(seconds), 16), nil

	case KindCurrency:
		code, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("%w: want alphabetic code, got %T", ErrInvalidCurrency, value)
		}
		number, err := CurrencyNumber(code)
		if err != nil {
			return "", err
		}
		return "0x" + strconv.FormatUint(uint64(number), 16), nil

	case KindBoolean:
		b, ok := value.(bool)
		if !ok {
			return "", fmt.Errorf("%w: want bool, got %T", ErrMalformedValue, value)
		}
		if b {
			return "Y", nil
		}
		return "N", nil

	case KindEnumeration:
		return f.Vocab.Token(value)

	case KindIntervalPeriod:
		seconds, err := toSeconds(value)
		if err != nil {
			return "", err
		}
		index, err := intervalIndex(seconds)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(index), nil
	}
	return "", fmt.Errorf("%w: unhandled kind %d", ErrMalformedValue, f.Kind)
}

// DecodeValue converts entity-escaped wire text to a typed value.
func (f *Field) DecodeValue(text string) (any, error) {
	value, err := f.decodeValue(html.UnescapeString(text))
	if err != nil {
		return nil, &FieldError{Field: f.Name, Err: err}
	}
	return value, nil
}

func (f *Field) decodeValue(text string) (any, error) {
	switch f.Kind {
	case KindString:
		return text, nil

	case KindBase64:
		b, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedValue, err)
		}
		return b, nil

	case KindInteger:
		n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a decimal integer", ErrMalformedValue, text)
		}
		return n, nil

	case KindHex:
		return parseHex(text)

	case KindDecimal:
		d, err := decimal.NewFromString(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a decimal number", ErrMalformedValue, text)
		}
		return d, nil

	case KindDate:
		seconds, err := parseHex(text)
		if err != nil {
			return nil, err
		}
		return Epoch.Add(time.Duration(seconds) * time.Second), nil

	case KindCurrency:
		number, err := parseHex(text)
		if err != nil {
			return nil, err
		}
		return CurrencyCode(int(number))

	case KindBoolean:
		switch text {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		}
		return nil, fmt.Errorf("%w: %q is not Y or N", ErrMalformedValue, text)

	case KindEnumeration:
		return f.Vocab.Symbol(text)

	case KindIntervalPeriod:
		index, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an interval index", ErrMalformedValue, text)
		}
		seconds, err := intervalSeconds(index)
		if err != nil {
			return nil, err
		}
		return time.Duration(seconds) * time.Second, nil
	}
	return nil, fmt.Errorf("%w: unhandled kind %d", ErrMalformedValue, f.Kind)
}

// boundedUint coerces a caller-supplied numeric value and enforces the
// field's inclusive range.
func (f *Field) boundedUint(value any) (uint64, error) {
	var n uint64
	switch x := value.(type) {
	case uint64:
		n = x
	case uint32:
		n = uint64(x)
	case uint:
		n = uint64(x)
	case int:
		if x < 0 {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, x)
		}
		n = uint64(x)
	case int64:
		if x < 0 {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, x)
		}
		n = uint64(x)
	case int32:
		if x < 0 {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, x)
		}
		n = uint64(x)
	default:
		return 0, fmt.Errorf("%w: want integer, got %T", ErrMalformedValue, value)
	}
	if n < f.Min || n > f.Max {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, n, f.Min, f.Max)
	}
	return n, nil
}

func parseHex(text string) (uint64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not hexadecimal", ErrMalformedValue, text)
	}
	return n, nil
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch x := value.(type) {
	case decimal.Decimal:
		return x, nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %q is not a decimal number", ErrMalformedValue, x)
		}
		return d, nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: want decimal, got %T", ErrMalformedValue, value)
}

func toSeconds(value any) (int64, error) {
	switch x := value.(type) {
	case time.Duration:
		return int64(x / time.Second), nil
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		return int64(x), nil
	}
	return 0, fmt.Errorf("%w: want duration, got %T", ErrMalformedValue, value)
}
