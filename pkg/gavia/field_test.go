// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Round-trip law: decode(encode(v)) == v
// ============================================================

func TestIntegerRoundTrip(t *testing.T) {
	f := Integer("Channel", Range(11, 26))

	for _, v := range []uint64{11, 15, 26} {
		text, err := f.EncodeValue(v)
		if err != nil {
			t.Fatalf("encode %d: %v", v, err)
		}
		got, err := f.DecodeValue(text)
		if err != nil {
			t.Fatalf("decode %q: %v", text, err)
		}
		if got.(uint64) != v {
			t.Errorf("round trip %d -> %q -> %v", v, text, got)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	f := Hex("DeviceMacId")

	tests := []struct {
		value uint64
		wire  string
	}{
		{0, "0x0"},
		{0xd8d5b9000000af01, "0xd8d5b9000000af01"},
		{0xffffffffffffffff, "0xffffffffffffffff"},
	}
	for _, tt := range tests {
		text, err := f.EncodeValue(tt.value)
		if err != nil {
			t.Fatalf("encode 0x%x: %v", tt.value, err)
		}
		if text != tt.wire {
			t.Errorf("encode 0x%x = %q, want %q", tt.value, text, tt.wire)
		}
		got, err := f.DecodeValue(text)
		if err != nil {
			t.Fatalf("decode %q: %v", text, err)
		}
		if got.(uint64) != tt.value {
			t.Errorf("round trip 0x%x -> %v", tt.value, got)
		}
	}
}

func TestHexDecodeAcceptsBareDigits(t *testing.T) {
	f := Hex("StatusCode")
	got, err := f.DecodeValue("1F")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.(uint64) != 0x1f {
		t.Errorf("decode 1F = %v, want 31", got)
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	f := Decimal("Price")

	d := decimal.RequireFromString("12.34567")
	text, err := f.EncodeValue(d)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if text != "12.34567" {
		t.Errorf("encode = %q, want fixed 5 fractional digits", text)
	}
	got, err := f.DecodeValue(text)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.(decimal.Decimal).Equal(d) {
		t.Errorf("round trip %v -> %v", d, got)
	}
}

func TestDecimalEncodePadsToFiveDigits(t *testing.T) {
	f := Decimal("Price")
	text, err := f.EncodeValue(decimal.NewFromInt(3))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if text != "3.00000" {
		t.Errorf("encode 3 = %q, want 3.00000", text)
	}
}

func TestDateRoundTrip(t *testing.T) {
	f := Date("TimeStamp")

	tests := []struct {
		value time.Time
		wire  string
	}{
		{Epoch, "0x0"},
		{Epoch.Add(time.Hour), "0xe10"},
		{time.Date(2013, time.June, 1, 12, 0, 0, 0, time.UTC), "0x193c9ec0"},
	}
	for _, tt := range tests {
		text, err := f.EncodeValue(tt.value)
		if err != nil {
			t.Fatalf("encode %v: %v", tt.value, err)
		}
		if text != tt.wire {
			t.Errorf("encode %v = %q, want %q", tt.value, text, tt.wire)
		}
		got, err := f.DecodeValue(text)
		if err != nil {
			t.Fatalf("decode %q: %v", text, err)
		}
		if !got.(time.Time).Equal(tt.value) {
			t.Errorf("round trip %v -> %v", tt.value, got)
		}
	}
}

func TestDateRejectsPreEpoch(t *testing.T) {
	f := Date("TimeStamp")
	_, err := f.EncodeValue(time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC))
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("pre-epoch encode: got %v, want ErrOutOfRange", err)
	}
}

func TestBooleanRoundTrip(t *testing.T) {
	f := Boolean("Enabled")

	for _, tt := range []struct {
		value bool
		wire  string
	}{{true, "Y"}, {false, "N"}} {
		text, err := f.EncodeValue(tt.value)
		if err != nil {
			t.Fatalf("encode %v: %v", tt.value, err)
		}
		if text != tt.wire {
			t.Errorf("encode %v = %q, want %q", tt.value, text, tt.wire)
		}
		got, err := f.DecodeValue(text)
		if err != nil {
			t.Fatalf("decode %q: %v", text, err)
		}
		if got.(bool) != tt.value {
			t.Errorf("round trip %v -> %v", tt.value, got)
		}
	}
}

func TestBooleanRejectsOtherTokens(t *testing.T) {
	f := Boolean("Enabled")
	for _, text := range []string{"", "y", "yes", "true", "1"} {
		if _, err := f.DecodeValue(text); !errors.Is(err, ErrMalformedValue) {
			t.Errorf("decode %q: got %v, want ErrMalformedValue", text, err)
		}
	}
}

func TestEnumerationRoundTrip(t *testing.T) {
	f := Enumeration("Status", StatusVocab)

	for _, variant := range StatusVocab {
		text, err := f.EncodeValue(variant.Symbol)
		if err != nil {
			t.Fatalf("encode %q: %v", variant.Symbol, err)
		}
		if text != variant.Token {
			t.Errorf("encode %q = %q, want %q", variant.Symbol, text, variant.Token)
		}
		got, err := f.DecodeValue(text)
		if err != nil {
			t.Fatalf("decode %q: %v", text, err)
		}
		if got.(string) != variant.Symbol {
			t.Errorf("round trip %q -> %v", variant.Symbol, got)
		}
	}
}

func TestEnumerationOrdinalAlias(t *testing.T) {
	f := Enumeration("Event", EventVocab)
	text, err := f.EncodeValue(2)
	if err != nil {
		t.Fatalf("encode ordinal: %v", err)
	}
	if text != "demand" {
		t.Errorf("encode ordinal 2 = %q, want demand", text)
	}
	if _, err := f.EncodeValue(len(EventVocab)); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("out-of-vocabulary ordinal: got %v, want ErrUnknownVariant", err)
	}
}

func TestEnumerationDecodeRejectsSymbols(t *testing.T) {
	// Only canonical wire tokens are valid inbound.
	f := Enumeration("Status", StatusVocab)
	if _, err := f.DecodeValue("JoinFail"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("decode symbol: got %v, want ErrUnknownVariant", err)
	}
	got, err := f.DecodeValue("Join: Fail")
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if got.(string) != "JoinFail" {
		t.Errorf("decode token = %v, want JoinFail", got)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	f := Base64("Payload")
	raw := []byte{0x00, 0x7e, 0xff, 0x10}

	text, err := f.EncodeValue(raw)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := f.DecodeValue(text)
	if err != nil {
		t.Fatalf("decode %q: %v", text, err)
	}
	if !bytes.Equal(got.([]byte), raw) {
		t.Errorf("round trip %v -> %v", raw, got)
	}
}

func TestIntervalPeriodRoundTrip(t *testing.T) {
	f := IntervalPeriod("ProfileIntervalPeriod")

	tests := []struct {
		seconds int64
		wire    string
	}{
		{86400, "0"},
		{3600, "1"},
		{150, "7"},
	}
	for _, tt := range tests {
		text, err := f.EncodeValue(time.Duration(tt.seconds) * time.Second)
		if err != nil {
			t.Fatalf("encode %ds: %v", tt.seconds, err)
		}
		if text != tt.wire {
			t.Errorf("encode %ds = %q, want %q", tt.seconds, text, tt.wire)
		}
		got, err := f.DecodeValue(text)
		if err != nil {
			t.Fatalf("decode %q: %v", text, err)
		}
		if got.(time.Duration) != time.Duration(tt.seconds)*time.Second {
			t.Errorf("round trip %ds -> %v", tt.seconds, got)
		}
	}
}

func TestIntervalPeriodRequiresExactMatch(t *testing.T) {
	f := IntervalPeriod("ProfileIntervalPeriod")
	if _, err := f.EncodeValue(100 * time.Second); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("inexact interval: got %v, want ErrUnknownVariant", err)
	}
	if _, err := f.DecodeValue("8"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("index past table: got %v, want ErrUnknownVariant", err)
	}
}

// ============================================================
// Range enforcement (encode only, inclusive)
// ============================================================

func TestRangeInclusiveBounds(t *testing.T) {
	f := Hex("LinkStrength", Range(0, 0x64))

	for _, v := range []uint64{0, 0x64} {
		if _, err := f.EncodeValue(v); err != nil {
			t.Errorf("boundary %d should encode: %v", v, err)
		}
	}
	if _, err := f.EncodeValue(uint64(0x65)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("above max: got %v, want ErrOutOfRange", err)
	}

	g := Integer("Channel", Range(11, 26))
	if _, err := g.EncodeValue(10); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("below min: got %v, want ErrOutOfRange", err)
	}
	if _, err := g.EncodeValue(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("negative: got %v, want ErrOutOfRange", err)
	}
}

func TestDecodeTrustsTheWire(t *testing.T) {
	// Ranges are an encode-side contract; inbound values outside them
	// still decode (downstream validation may re-check).
	f := Integer("Channel", Range(11, 26))
	got, err := f.DecodeValue("99")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.(uint64) != 99 {
		t.Errorf("decode 99 = %v", got)
	}
}

// ============================================================
// Escaping and malformed input
// ============================================================

func TestStringEscapeRoundTrip(t *testing.T) {
	f := String("Text")
	const message = `Rates <now> "2" & rising`

	text, err := f.EncodeValue(message)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if text == message {
		t.Fatalf("markup characters must be escaped, got %q", text)
	}
	got, err := f.DecodeValue(text)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.(string) != message {
		t.Errorf("round trip %q -> %q", message, got)
	}
}

func TestMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		text  string
	}{
		{"integer", Integer("N"), "twelve"},
		{"hex", Hex("N"), "0xzz"},
		{"decimal", Decimal("N"), "1.2.3"},
		{"date", Date("N"), "not-a-date"},
		{"base64", Base64("N"), "!!!"},
		{"interval", IntervalPeriod("N"), "one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.field.DecodeValue(tt.text); !errors.Is(err, ErrMalformedValue) {
				t.Errorf("decode %q: got %v, want ErrMalformedValue", tt.text, err)
			}
		})
	}
}

func TestFieldErrorNamesField(t *testing.T) {
	f := Hex("LinkStrength", Range(0, 0x64))
	_, err := f.EncodeValue(uint64(0x1000))
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("want *FieldError, got %T", err)
	}
	if fieldErr.Field != "LinkStrength" {
		t.Errorf("field = %q, want LinkStrength", fieldErr.Field)
	}
}

// ============================================================
// Descriptor invariants
// ============================================================

func TestInvalidDescriptorsPanic(t *testing.T) {
	tests := []struct {
		name  string
		build func()
	}{
		{"skip without sentinel", func() { Hex("Id", SkipOnMissing()) }},
		{"required nullable scalar", func() { Hex("Id", Required(), Sentinel("0xff")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.build()
		})
	}
}
