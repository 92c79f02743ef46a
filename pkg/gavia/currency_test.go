// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import (
	"errors"
	"testing"
)

func TestCurrencyKnownCodes(t *testing.T) {
	tests := []struct {
		code   string
		number int
	}{
		{"USD", 840},
		{"EUR", 978},
		{"GBP", 826},
		{"HUF", 348},
		{"JPY", 392},
	}
	for _, tt := range tests {
		number, err := CurrencyNumber(tt.code)
		if err != nil || number != tt.number {
			t.Errorf("CurrencyNumber(%s) = (%d, %v), want %d", tt.code, number, err, tt.number)
		}
		code, err := CurrencyCode(tt.number)
		if err != nil || code != tt.code {
			t.Errorf("CurrencyCode(%d) = (%s, %v), want %s", tt.number, code, err, tt.code)
		}
	}
}

func TestCurrencyTableRoundTrips(t *testing.T) {
	codes := CurrencyCodes()
	if len(codes) < 100 {
		t.Fatalf("table has only %d codes", len(codes))
	}
	for _, code := range codes {
		number, err := CurrencyNumber(code)
		if err != nil {
			t.Fatalf("CurrencyNumber(%s): %v", code, err)
		}
		back, err := CurrencyCode(number)
		if err != nil {
			t.Fatalf("CurrencyCode(%d): %v", number, err)
		}
		if back != code {
			t.Errorf("%s -> %d -> %s", code, number, back)
		}
	}
}

func TestCurrencyUnknown(t *testing.T) {
	if _, err := CurrencyNumber("XXX"); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("CurrencyNumber(XXX) = %v, want ErrInvalidCurrency", err)
	}
	if _, err := CurrencyCode(9999); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("CurrencyCode(9999) = %v, want ErrInvalidCurrency", err)
	}
}

func TestCurrencyFieldRoundTrip(t *testing.T) {
	field := Currency("Currency")
	text, err := field.EncodeValue("EUR")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if text != "0x3d2" {
		t.Errorf("wire = %q, want 0x3d2", text)
	}
	value, err := field.DecodeValue(text)
	if err != nil || value.(string) != "EUR" {
		t.Errorf("decode = (%v, %v), want EUR", value, err)
	}
}
