package services

import (
	"context"
	"testing"

	"restaurant-system/internal/entities"
	"restaurant-system/internal/notifications"
	apperrors "restaurant-system/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTableFixture(notifier *fakeNotifier) (TableServiceInterface, uuid.UUID) {
	token := uuid.New()
	tables := &fakeTables{tables: []entities.Table{{ID: 1, Name: "7", AccessToken: token.String()}}}
	employees := newFakeEmployees(
		entities.Employee{ID: 20, Role: roleWaiter},
		entities.Employee{ID: 10, Role: roleChef},
	)
	products := &fakeProducts{products: []entities.Product{
		{ID: 1, Name: "Борщ", Category: "Супи", IsActive: true},
		{ID: 2, Name: "Старе", Category: "Супи", IsActive: false},
	}}
	return NewTableService(tables, employees, products, notifier, zap.NewNop()), token
}

func TestTableService_CallWaiter(t *testing.T) {
	notifier := &fakeNotifier{report: notifications.DeliveryReport{Planned: 1, Delivered: 1}}
	svc, token := newTableFixture(notifier)

	require.NoError(t, svc.CallWaiter(context.Background(), token))
	require.NoError(t, svc.RequestBill(context.Background(), token, "card"))

	assert.Equal(t, []notifications.CallKind{notifications.CallWaiter, notifications.RequestBill}, notifier.kinds)
}

func TestTableService_CallFailsWithoutRecipients(t *testing.T) {
	ctx := context.Background()

	svc, token := newTableFixture(&fakeNotifier{err: apperrors.ErrNoRecipients})
	assert.ErrorIs(t, svc.CallWaiter(ctx, token), apperrors.ErrNoRecipients)

	svc, token = newTableFixture(&fakeNotifier{report: notifications.DeliveryReport{Planned: 2, Failed: 2}})
	assert.ErrorIs(t, svc.CallWaiter(ctx, token), apperrors.ErrNoRecipients)

	assert.ErrorIs(t, svc.CallWaiter(ctx, uuid.New()), apperrors.ErrNotFound)
}

func TestTableService_MenuHidesInactive(t *testing.T) {
	svc, token := newTableFixture(&fakeNotifier{})

	table, products, err := svc.Menu(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "7", table.Name)
	require.Len(t, products, 1)
	assert.Equal(t, "Борщ", products[0].Name)
}

func TestTableService_SetWaitersOnlyServers(t *testing.T) {
	svc, _ := newTableFixture(&fakeNotifier{})
	ctx := context.Background()

	table, err := svc.SetWaiters(ctx, 1, []uint64{20})
	require.NoError(t, err)
	assert.Equal(t, []uint64{20}, table.WaiterIDs)

	_, err = svc.SetWaiters(ctx, 1, []uint64{10})
	assert.ErrorIs(t, err, apperrors.ErrWrongRole)
}
