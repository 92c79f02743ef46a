// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import "fmt"

// Variant is one entry of an enumeration vocabulary: a Go-safe symbolic name
// paired with the exact token the device uses on the wire. The two differ
// only where the wire token is not a clean identifier ("Join: Fail").
type Variant struct {
	Symbol string
	Token  string
}

// Vocab is an ordered enumeration vocabulary. Order matters: encode accepts
// a 0-based ordinal index as a positional alias for the symbol.
type Vocab []Variant

// Token resolves a symbol or ordinal index to its wire token.
func (v Vocab) Token(value any) (string, error) {
	switch x := value.(type) {
	case string:
		for _, variant := range v {
			if variant.Symbol == x || variant.Token == x {
				return variant.Token, nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, x)
	case int:
		if x < 0 || x >= len(v) {
			return "", fmt.Errorf("%w: ordinal %d", ErrUnknownVariant, x)
		}
		return v[x].Token, nil
	case int64:
		return v.Token(int(x))
	case uint64:
		return v.Token(int(x))
	default:
		return "", fmt.Errorf("%w: %v (%T)", ErrUnknownVariant, value, value)
	}
}

// Symbol resolves a wire token to its symbolic name. Only the canonical
// token is accepted; symbols are not valid on the wire.
func (v Vocab) Symbol(token string) (string, error) {
	for _, variant := range v {
		if variant.Token == token {
			return variant.Symbol, nil
		}
	}
	return "", fmt.Errorf("%w: token %q", ErrUnknownVariant, token)
}

// sym builds the common case where symbol and token are identical.
func sym(s string) Variant { return Variant{Symbol: s, Token: s} }

// Standard vocabularies of the XML API.
var (
	// EventVocab names the schedulable device events.
	EventVocab = Vocab{sym("time"), sym("price"), sym("demand"), sym("summation"), sym("message")}

	// StatusVocab names the connection states reported during start-up and
	// join sequences.
	StatusVocab = Vocab{
		{Symbol: "Initializing", Token: "Initializing..."},
		sym("Network"),
		sym("Joining"),
		{Symbol: "JoinFail", Token: "Join: Fail"},
		{Symbol: "JoinSuccess", Token: "Join: Success"},
		sym("Authenticating"),
		{Symbol: "AuthenticatingSuccess", Token: "Authenticating: Success"},
		{Symbol: "AuthenticatingFail", Token: "Authenticating: Fail"},
		sym("Connected"),
		sym("Disconnected"),
		sym("Rejoining"),
	}

	// MeterTypeVocab names the supported meter classes.
	MeterTypeVocab = Vocab{sym("electric"), sym("gas"), sym("water"), sym("other")}

	// QueueVocab names the text-message queue states.
	QueueVocab = Vocab{sym("Active"), {Symbol: "CancelPending", Token: "Cancel Pending"}}

	// IntervalChannelVocab names the profile data channels.
	IntervalChannelVocab = Vocab{sym("Delivered"), sym("Received")}
)

// intervalIndex maps an interval length in seconds to its wire index.
// The table is closed: anything but an exact match is an unknown variant.
func intervalIndex(seconds int64) (int, error) {
	for i, p := range intervalPeriods {
		if p == seconds {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no interval period of %ds", ErrUnknownVariant, seconds)
}

// intervalSeconds maps a wire index to an interval length in seconds.
func intervalSeconds(index int64) (int64, error) {
	if index < 0 || index >= int64(len(intervalPeriods)) {
		return 0, fmt.Errorf("%w: interval period index %d", ErrUnknownVariant, index)
	}
	return intervalPeriods[index], nil
}
