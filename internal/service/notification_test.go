package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"memberfund-backend/internal/domain"
)

func TestNotificationService_GetNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsPageBounds", func(t *testing.T) {
		mockNotes := new(MockNotificationRepo)
		svc := NewNotificationService(mockNotes)

		mockNotes.On("List", ctx, int32(1), int32(20), int32(0)).
			Return([]domain.Notification{{ID: 1, MemberID: 1, Title: "Payout Approved"}}, int32(1), nil).Once()

		notes, total, err := svc.GetNotifications(ctx, 1, 0, 0)
		assert.NoError(t, err)
		assert.Len(t, notes, 1)
		assert.Equal(t, int32(1), total)
		mockNotes.AssertExpectations(t)
	})

	t.Run("PaginatesOffset", func(t *testing.T) {
		mockNotes := new(MockNotificationRepo)
		svc := NewNotificationService(mockNotes)

		mockNotes.On("List", ctx, int32(1), int32(10), int32(20)).
			Return([]domain.Notification{}, int32(25), nil).Once()

		_, total, err := svc.GetNotifications(ctx, 1, 3, 10)
		assert.NoError(t, err)
		assert.Equal(t, int32(25), total)
		mockNotes.AssertExpectations(t)
	})
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()

	mockNotes := new(MockNotificationRepo)
	svc := NewNotificationService(mockNotes)

	mockNotes.On("MarkAsRead", ctx, int32(7), int32(1)).Return(nil).Once()

	err := svc.MarkAsRead(ctx, 1, 7)
	assert.NoError(t, err)
	mockNotes.AssertExpectations(t)
}
