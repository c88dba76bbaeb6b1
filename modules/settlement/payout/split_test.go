package payout

import (
	"testing"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplit(t *testing.T) {
	t.Run("no referrer", func(t *testing.T) {
		split, err := NewSplit(100_000_000, 1000, 0, false)
		require.NoError(t, err)
		assert.Equal(t, int64(90_000_000), split.Recipient)
		assert.Equal(t, int64(10_000_000), split.Platform)
		assert.Equal(t, int64(0), split.Referrer)
	})

	t.Run("referrer locked at 70 percent share", func(t *testing.T) {
		split, err := NewSplit(100_000_000, 1000, 70, true)
		require.NoError(t, err)
		assert.Equal(t, int64(90_000_000), split.Recipient)
		assert.Equal(t, int64(3_000_000), split.Platform)
		assert.Equal(t, int64(7_000_000), split.Referrer)
	})

	t.Run("zero fee degenerates to recipient only", func(t *testing.T) {
		split, err := NewSplit(12_345, 0, 70, true)
		require.NoError(t, err)
		assert.Equal(t, int64(12_345), split.Recipient)
		assert.Zero(t, split.Platform)
		assert.Zero(t, split.Referrer)
	})

	t.Run("rounding remainder favors the recipient", func(t *testing.T) {
		// fee = floor(9999 * 1000 / 10000) = 999, recipient keeps the rest
		split, err := NewSplit(9999, 1000, 0, false)
		require.NoError(t, err)
		assert.Equal(t, int64(9000), split.Recipient)
		assert.Equal(t, int64(999), split.Platform)
	})

	t.Run("sum invariant holds for all valid inputs", func(t *testing.T) {
		totals := []int64{0, 1, 3, 9999, 100_000_000, 987_654_321_123}
		bps := []int{0, 1, 250, 1000, 9999, 10000}
		shares := []int{0, 1, 33, 70, 100}
		for _, total := range totals {
			for _, feeBps := range bps {
				for _, share := range shares {
					split, err := NewSplit(total, feeBps, share, true)
					require.NoError(t, err)
					assert.Equal(t, total, split.Total())
					assert.GreaterOrEqual(t, split.Recipient, int64(0))
					assert.GreaterOrEqual(t, split.Platform, int64(0))
					assert.GreaterOrEqual(t, split.Referrer, int64(0))
				}
			}
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := NewSplit(-1, 1000, 0, false)
		require.ErrorIs(t, err, errs.InvalidArgument)
		_, err = NewSplit(100, 10001, 0, false)
		require.ErrorIs(t, err, errs.InvalidArgument)
		_, err = NewSplit(100, 1000, 101, true)
		require.ErrorIs(t, err, errs.InvalidArgument)

		// an out-of-range share is ignored when no referrer is present
		_, err = NewSplit(100, 1000, 101, false)
		require.NoError(t, err)
	})
}
