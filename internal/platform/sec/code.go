// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// # Confirmation Codes

const (
	// ConfirmationCodeLength is the fixed number of digits in a code.
	ConfirmationCodeLength = 6

	// codeAlphabet is the digit alphabet codes are drawn from.
	codeAlphabet = "0123456789"
)

// GenerateConfirmationCode produces a fixed-length numeric confirmation code.
//
// # Entropy
//
// Each digit is drawn uniformly from crypto/rand. Six digits give ~20 bits,
// which is acceptable only because a code is single-use, bound to one
// account, and replaced on every re-signup.
func GenerateConfirmationCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(codeAlphabet)))

	code := make([]byte, ConfirmationCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}

	return string(code), nil
}
