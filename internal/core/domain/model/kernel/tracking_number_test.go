package kernel_test

import (
	"testing"

	"reconcile/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingNumber(t *testing.T) {
	t.Run("should create tracking number from captured code", func(t *testing.T) {
		tn, err := kernel.NewTrackingNumber("111222333444")

		require.NoError(t, err)
		assert.Equal(t, "111222333444", tn.String())
		require.NoError(t, tn.Validate())
	})

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		tn, err := kernel.NewTrackingNumber("  111222333444\t")

		require.NoError(t, err)
		assert.Equal(t, "111222333444", tn.String())
	})

	t.Run("should accept malformed codes without format validation", func(t *testing.T) {
		// The format gate belongs to batch validation, not construction.
		tn, err := kernel.NewTrackingNumber("ABC123")

		require.NoError(t, err)
		assert.False(t, tn.IsWellFormed())
	})

	t.Run("should reject empty code", func(t *testing.T) {
		_, err := kernel.NewTrackingNumber("   ")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "trackingNumber")
	})
}

func TestTrackingNumber_IsWellFormed(t *testing.T) {
	testCases := []struct {
		name     string
		code     string
		expected bool
	}{
		{"twelve digits", "123456789012", true},
		{"eleven digits", "12345678901", false},
		{"thirteen digits", "1234567890123", false},
		{"letters mixed in", "12345678901A", false},
		{"digits with space", "123456 89012", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tn, err := kernel.NewTrackingNumber(tc.code)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, tn.IsWellFormed())
		})
	}
}

func TestTrackingNumber_IsEqual(t *testing.T) {
	t.Run("identity is the code string, case-sensitive", func(t *testing.T) {
		a, _ := kernel.NewTrackingNumber("ABC111222333")
		b, _ := kernel.NewTrackingNumber("ABC111222333")
		c, _ := kernel.NewTrackingNumber("abc111222333")

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})
}

func TestTrackingNumber_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var tn kernel.TrackingNumber

		err := tn.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrTrackingNumberIsNotConstructed, err)
	})
}
