package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrNoBrowserURL", ErrNoBrowserURL},
		{"ErrShortcutInvalid", ErrShortcutInvalid},
		{"ErrShortcutInUse", ErrShortcutInUse},
		{"ErrShortcutAmbiguous", ErrShortcutAmbiguous},
		{"ErrProviderUnavailable", ErrProviderUnavailable},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrAnswerUnavailable", ErrAnswerUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_WrappedMatching(t *testing.T) {
	wrapped := fmt.Errorf("refresh apps: %w", ErrProviderUnavailable)

	assert.True(t, errors.Is(wrapped, ErrProviderUnavailable))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
}
