package assignment_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingAttempt(t *testing.T, window time.Duration) *assignment.Attempt {
	t.Helper()
	attempt, err := assignment.NewAttempt(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now(), window)
	require.NoError(t, err)
	return attempt
}

func TestNewAttempt(t *testing.T) {
	t.Run("creates pending offer with derived expiry", func(t *testing.T) {
		// Given
		offeredAt := time.Now()
		window := 30 * time.Minute

		// When
		attempt, err := assignment.NewAttempt(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), offeredAt, window)

		// Then
		require.NoError(t, err)
		assert.Equal(t, assignment.OutcomePending, attempt.Outcome())
		assert.True(t, attempt.IsPending())
		assert.Equal(t, offeredAt, attempt.OfferedAt())
		assert.Equal(t, offeredAt.Add(window), attempt.ExpiresAt())
		assert.False(t, attempt.IsVoided())
	})

	t.Run("rejects non-positive acceptance window", func(t *testing.T) {
		_, err := assignment.NewAttempt(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now(), 0)

		require.Error(t, err)
	})

	t.Run("rejects zero identifiers", func(t *testing.T) {
		_, err := assignment.NewAttempt(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), time.Now(), time.Minute)

		require.Error(t, err)
	})
}

func TestAttempt_Settle(t *testing.T) {
	t.Run("settles once per outcome", func(t *testing.T) {
		for _, outcome := range []assignment.Outcome{
			assignment.OutcomeAccepted, assignment.OutcomeRejected, assignment.OutcomeExpired,
		} {
			t.Run(outcome.String(), func(t *testing.T) {
				attempt := newPendingAttempt(t, time.Minute)

				require.NoError(t, attempt.Settle(outcome))

				assert.Equal(t, outcome, attempt.Outcome())
				assert.False(t, attempt.IsPending())
			})
		}
	})

	t.Run("second settlement loses the race", func(t *testing.T) {
		// Given: an accept already settled the attempt
		attempt := newPendingAttempt(t, time.Minute)
		require.NoError(t, attempt.Settle(assignment.OutcomeAccepted))

		// When: expiry fires late
		err := attempt.Settle(assignment.OutcomeExpired)

		// Then: the loser gets an explicit error and the outcome is unchanged
		require.ErrorIs(t, err, assignment.ErrAlreadySettled)
		assert.Equal(t, assignment.OutcomeAccepted, attempt.Outcome())
	})

	t.Run("pending is not a settlement outcome", func(t *testing.T) {
		attempt := newPendingAttempt(t, time.Minute)

		require.Error(t, attempt.Settle(assignment.OutcomePending))
		assert.True(t, attempt.IsPending())
	})
}

func TestAttempt_WindowElapsed(t *testing.T) {
	attempt := newPendingAttempt(t, 30*time.Minute)

	assert.False(t, attempt.WindowElapsed(attempt.OfferedAt().Add(29*time.Minute)))
	assert.True(t, attempt.WindowElapsed(attempt.ExpiresAt()))
	assert.True(t, attempt.WindowElapsed(attempt.ExpiresAt().Add(time.Hour)))
}

func TestAttempt_ExcludesCourier(t *testing.T) {
	t.Run("rejections and expiries exclude", func(t *testing.T) {
		rejected := newPendingAttempt(t, time.Minute)
		require.NoError(t, rejected.Settle(assignment.OutcomeRejected))
		assert.True(t, rejected.ExcludesCourier())

		expired := newPendingAttempt(t, time.Minute)
		require.NoError(t, expired.Settle(assignment.OutcomeExpired))
		assert.True(t, expired.ExcludesCourier())
	})

	t.Run("pending and accepted do not exclude", func(t *testing.T) {
		pending := newPendingAttempt(t, time.Minute)
		assert.False(t, pending.ExcludesCourier())

		accepted := newPendingAttempt(t, time.Minute)
		require.NoError(t, accepted.Settle(assignment.OutcomeAccepted))
		assert.False(t, accepted.ExcludesCourier())
	})

	t.Run("voided attempts no longer exclude", func(t *testing.T) {
		attempt := newPendingAttempt(t, time.Minute)
		require.NoError(t, attempt.Settle(assignment.OutcomeRejected))

		require.NoError(t, attempt.Void())

		assert.True(t, attempt.IsVoided())
		assert.False(t, attempt.ExcludesCourier())
	})

	t.Run("pending attempts cannot be voided", func(t *testing.T) {
		attempt := newPendingAttempt(t, time.Minute)

		require.Error(t, attempt.Void())
	})
}

func TestRestoreAttempt(t *testing.T) {
	t.Run("restores settled attempt", func(t *testing.T) {
		offeredAt := time.Now().Add(-time.Hour)

		attempt, err := assignment.RestoreAttempt(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			offeredAt, offeredAt.Add(30*time.Minute), assignment.OutcomeExpired, false)

		require.NoError(t, err)
		assert.Equal(t, assignment.OutcomeExpired, attempt.Outcome())
	})

	t.Run("rejects expiry before offer", func(t *testing.T) {
		offeredAt := time.Now()

		_, err := assignment.RestoreAttempt(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			offeredAt, offeredAt.Add(-time.Minute), assignment.OutcomePending, false)

		require.Error(t, err)
	})
}

func TestOutcomeFromString(t *testing.T) {
	t.Run("round-trips valid outcomes", func(t *testing.T) {
		for _, outcome := range []assignment.Outcome{
			assignment.OutcomePending, assignment.OutcomeAccepted, assignment.OutcomeRejected, assignment.OutcomeExpired,
		} {
			parsed, err := assignment.OutcomeFromString(outcome.String())

			require.NoError(t, err)
			assert.Equal(t, outcome, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := assignment.OutcomeFromString("withdrawn")
		require.Error(t, err)
	})
}
