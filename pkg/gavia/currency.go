// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed currency.yaml
var currencyTable []byte

// Bidirectional ISO 4217 mapping, built once at process start and read-only
// afterwards.
var (
	currencyNumbers map[string]int
	currencyCodes   map[int]string
)

func init() {
	if err := yaml.Unmarshal(currencyTable, &currencyNumbers); err != nil {
		panic(fmt.Sprintf("gavia: bad embedded currency table: %v", err))
	}
	currencyCodes = make(map[int]string, len(currencyNumbers))
	for code, number := range currencyNumbers {
		currencyCodes[number] = code
	}
}

// CurrencyNumber resolves an ISO 4217 alphabetic code to its numeric code.
func CurrencyNumber(code string) (int, error) {
	number, ok := currencyNumbers[code]
	if !ok {
		return 0, fmt.Errorf("%w: code %q", ErrInvalidCurrency, code)
	}
	return number, nil
}

// CurrencyCode resolves an ISO 4217 numeric code to its alphabetic code.
func CurrencyCode(number int) (string, error) {
	code, ok := currencyCodes[number]
	if !ok {
		return "", fmt.Errorf("%w: number %d", ErrInvalidCurrency, number)
	}
	return code, nil
}

// CurrencyCodes returns every alphabetic code in the shipped table.
func CurrencyCodes() []string {
	codes := make([]string, 0, len(currencyNumbers))
	for code := range currencyNumbers {
		codes = append(codes, code)
	}
	return codes
}
