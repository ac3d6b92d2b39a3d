package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-api/internal/domain"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current domain.OrderStatus
		action  domain.OrderAction
		want    domain.OrderStatus
		wantErr bool
	}{
		{"accept pending", domain.OrderPending, domain.ActionAccept, domain.OrderAccepted, false},
		{"cancel pending", domain.OrderPending, domain.ActionCancel, domain.OrderCancelled, false},
		{"start accepted", domain.OrderAccepted, domain.ActionStart, domain.OrderInProgress, false},
		{"cancel accepted", domain.OrderAccepted, domain.ActionCancel, domain.OrderCancelled, false},
		{"complete in progress", domain.OrderInProgress, domain.ActionComplete, domain.OrderCompleted, false},
		{"cancel in progress", domain.OrderInProgress, domain.ActionCancel, domain.OrderCancelled, false},
		{"dispute in progress", domain.OrderInProgress, domain.ActionDispute, domain.OrderDisputed, false},
		{"complete pending", domain.OrderPending, domain.ActionComplete, "", true},
		{"start pending", domain.OrderPending, domain.ActionStart, "", true},
		{"accept accepted", domain.OrderAccepted, domain.ActionAccept, "", true},
		{"dispute accepted", domain.OrderAccepted, domain.ActionDispute, "", true},
		{"complete completed", domain.OrderCompleted, domain.ActionComplete, "", true},
		{"cancel completed", domain.OrderCompleted, domain.ActionCancel, "", true},
		{"cancel cancelled", domain.OrderCancelled, domain.ActionCancel, "", true},
		{"complete disputed", domain.OrderDisputed, domain.ActionComplete, "", true},
		{"cancel disputed", domain.OrderDisputed, domain.ActionCancel, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NextStatus(tt.current, tt.action)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, domain.OrderCompleted.IsTerminal())
	assert.True(t, domain.OrderCancelled.IsTerminal())
	assert.False(t, domain.OrderPending.IsTerminal())
	assert.False(t, domain.OrderAccepted.IsTerminal())
	assert.False(t, domain.OrderInProgress.IsTerminal())
	// Disputed is parked, not terminal, even though nothing exits it yet.
	assert.False(t, domain.OrderDisputed.IsTerminal())
}

func TestPlatformFee(t *testing.T) {
	tests := []struct {
		amount, pct, want int
	}{
		{100, 8, 8},
		{99, 8, 7},   // floors, never rounds up
		{1, 8, 0},
		{12, 8, 0},
		{13, 8, 1},
		{100, 0, 0},
		{250, 10, 25},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.PlatformFee(tt.amount, tt.pct),
			"fee for %d points at %d%%", tt.amount, tt.pct)
	}
}

func TestNewOrder(t *testing.T) {
	skill := domain.Skill{
		ID:             7,
		UserID:         2,
		PointsRequired: 100,
		Status:         domain.SkillActive,
	}

	t.Run("fixes the fee at creation", func(t *testing.T) {
		order, err := domain.NewOrder(1, skill, 8, "please teach me")
		require.NoError(t, err)

		assert.Equal(t, uint(1), order.BuyerID)
		assert.Equal(t, uint(2), order.SellerID)
		assert.Equal(t, uint(7), order.SkillID)
		assert.Equal(t, 100, order.PointsAmount)
		assert.Equal(t, 8, order.PlatformFee)
		assert.Equal(t, 108, order.TotalPoints)
		assert.Equal(t, domain.OrderPending, order.Status)
	})

	t.Run("rejects ordering your own skill", func(t *testing.T) {
		_, err := domain.NewOrder(2, skill, 8, "")
		assert.ErrorIs(t, err, domain.ErrSelfOrder)
	})

	t.Run("rejects a non-positive price", func(t *testing.T) {
		free := skill
		free.PointsRequired = 0
		_, err := domain.NewOrder(1, free, 8, "")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestApplyTransition(t *testing.T) {
	now := time.Now()

	t.Run("stamps the matching timestamp", func(t *testing.T) {
		order := domain.Order{Status: domain.OrderPending}

		require.NoError(t, order.ApplyTransition(domain.ActionAccept, now))
		assert.Equal(t, domain.OrderAccepted, order.Status)
		require.NotNil(t, order.AcceptedAt)
		assert.Equal(t, now, *order.AcceptedAt)

		require.NoError(t, order.ApplyTransition(domain.ActionStart, now))
		require.NoError(t, order.ApplyTransition(domain.ActionComplete, now))
		assert.Equal(t, domain.OrderCompleted, order.Status)
		require.NotNil(t, order.CompletedAt)
		require.NotNil(t, order.ActualDelivery)
	})

	t.Run("leaves the order untouched on a bad action", func(t *testing.T) {
		order := domain.Order{Status: domain.OrderCompleted}

		err := order.ApplyTransition(domain.ActionCancel, now)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
		assert.Equal(t, domain.OrderCompleted, order.Status)
		assert.Nil(t, order.CancelledAt)
	})
}
