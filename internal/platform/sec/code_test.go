// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndelaeva/kritika/internal/platform/sec"
)

/*
TestGenerateConfirmationCode checks the code shape: fixed length, digits
only, and no constant output across draws.
*/
func TestGenerateConfirmationCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		code, err := sec.GenerateConfirmationCode()
		require.NoError(t, err)
		require.Len(t, code, sec.ConfirmationCodeLength)

		for _, r := range code {
			assert.GreaterOrEqual(t, r, '0')
			assert.LessOrEqual(t, r, '9')
		}

		seen[code] = true
	}

	// 50 draws from a million-value space collapsing to one code would
	// mean the generator is broken.
	assert.Greater(t, len(seen), 1)
}
