package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"antika-pos/models"
	"antika-pos/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, phone, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, phone)
	return n.err
}

func TestReservationService_CRUD(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := NewReservationService(testutil.NewDB(t), notifier, testutil.Logger())

	r, err := svc.Create(ctx, ReservationInput{Customer: ptr("José Huanca"), Date: ptr("2025-01-21"), Time: ptr("13:30")})
	require.NoError(t, err)
	assert.Equal(t, 2, r.PartySize)
	assert.Equal(t, models.ReservationPending, r.Status)

	_, err = svc.Create(ctx, ReservationInput{Customer: ptr("No date")})
	assert.True(t, IsKind(err, KindValidation))
	_, err = svc.Create(ctx, ReservationInput{Customer: ptr("X"), Date: ptr("tomorrow"), Time: ptr("13:00")})
	assert.True(t, IsKind(err, KindValidation))
	_, err = svc.Create(ctx, ReservationInput{Customer: ptr("X"), Date: ptr("2025-01-21"), Time: ptr("13:00"), Status: ptr("maybe")})
	assert.True(t, IsKind(err, KindValidation))

	_, err = svc.Create(ctx, ReservationInput{Customer: ptr("María Condori"), Date: ptr("2025-01-20"), Time: ptr("13:00"), PartySize: ptr(4)})
	require.NoError(t, err)

	list, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "María Condori", list[0].Customer, "ordered by date")

	list, err = svc.List(ctx, "2025-01-21")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, r.ID))
	assert.True(t, IsKind(svc.Delete(ctx, r.ID), KindNotFound))
	assert.Empty(t, notifier.sent)
}

func TestReservationService_NotifiesOnConfirm(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := NewReservationService(testutil.NewDB(t), notifier, testutil.Logger())

	r, err := svc.Create(ctx, ReservationInput{Customer: ptr("Familia Quispe"), Date: ptr("2025-01-20"),
		Time: ptr("19:30"), PartySize: ptr(6), Phone: ptr("+51999000111")})
	require.NoError(t, err)
	assert.Empty(t, notifier.sent)

	_, err = svc.Update(ctx, r.ID, ReservationInput{Status: ptr("confirmed"), Table: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, []string{"+51999000111"}, notifier.sent)

	// already confirmed: no second message
	_, err = svc.Update(ctx, r.ID, ReservationInput{PartySize: ptr(7)})
	require.NoError(t, err)
	assert.Len(t, notifier.sent, 1)

	_, err = svc.Create(ctx, ReservationInput{Customer: ptr("No phone"), Date: ptr("2025-01-20"),
		Time: ptr("20:00"), Status: ptr("confirmed")})
	require.NoError(t, err)
	assert.Len(t, notifier.sent, 1)
}

func TestReservationService_NotifierFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{err: errors.New("gateway down")}
	svc := NewReservationService(testutil.NewDB(t), notifier, testutil.Logger())

	r, err := svc.Create(ctx, ReservationInput{Customer: ptr("Ana"), Date: ptr("2025-01-20"), Time: ptr("12:00"),
		Status: ptr("confirmed"), Phone: ptr("+51999000222")})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, r.Status)
	assert.Len(t, notifier.sent, 1)
}
