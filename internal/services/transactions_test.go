package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/config"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/repo"
)

func testSettings() config.Settings {
	return config.Settings{
		ParkingCapacity:    100,
		TimesliceSeconds:   3600,
		ChargePerTimeslice: 2,
		ChargePrecision:    3,
	}
}

func lifecycleFixture(t *testing.T, gw *fakeGateway, now time.Time) (*TransactionService, *memStore) {
	t.Helper()
	store := newMemStore()
	wizard := NewPayWizard(gw)
	payments := NewPaymentService(store, wizard)
	policy := NewCardPolicy()
	policy.Now = fixedNow(now)

	svc := NewTransactionService(testSettings(), store.Transactions(), store, store.Vehicles(), policy, payments)
	svc.Now = fixedNow(now)
	return svc, store
}

func TestLifecycleCashCompletion(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	svc, store := lifecycleFixture(t, &fakeGateway{}, start)
	store.addCustomer(models.Customer{ID: 5, Name: "pat", CardType: models.CardNone})
	store.addVehicle(models.Vehicle{ID: 7, RegNum: "AB-1234", CustomerID: 5})

	tran, err := svc.Start(context.Background(), 7)
	require.NoError(t, err)

	svc.Now = fixedNow(end)
	res, err := svc.Complete(context.Background(), tran.ID,
		WizardRequest{Method: PayCash, CashAmount: 5})
	require.NoError(t, err)

	// One full timeslice at 2 per slice.
	assert.InDelta(t, 2.0, res.Charge, 1e-12)
	assert.Equal(t, PayCash, res.Method)
	assert.InDelta(t, 3.0, res.Change, 1e-9)
	assert.NotEmpty(t, res.Receipt)
	assert.Equal(t, end, res.EndedAt)

	require.Len(t, store.reports, 1)
	rec := store.reports[0]
	assert.Equal(t, "AB-1234", rec.Vehicle)
	assert.Equal(t, "pat", rec.Customer)
	assert.Equal(t, start, rec.StartedAt)
	assert.Equal(t, end, rec.EndedAt)
	assert.InDelta(t, 2.0, rec.Charge, 1e-12)

	assert.Empty(t, store.trans)
}

func TestLifecycleSimpleDiscount(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	svc, store := lifecycleFixture(t, &fakeGateway{}, start)
	store.addCustomer(models.Customer{ID: 5, Name: "pat", CardType: models.CardSimple})
	store.addVehicle(models.Vehicle{ID: 7, RegNum: "AB-1234", CustomerID: 5})

	tran, err := svc.Start(context.Background(), 7)
	require.NoError(t, err)

	svc.Now = fixedNow(start.Add(time.Hour))
	res, err := svc.Complete(context.Background(), tran.ID,
		WizardRequest{Method: PayCash, CashAmount: 5})
	require.NoError(t, err)
	assert.InDelta(t, 1.8, res.Charge, 1e-12)
}

func TestLifecycleMemberCardFree(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	issued := start.AddDate(0, 0, -10)

	svc, store := lifecycleFixture(t, &fakeGateway{}, start)
	store.addCustomer(models.Customer{ID: 5, Name: "pat", CardType: models.CardMonth, CardDate: &issued})
	store.addVehicle(models.Vehicle{ID: 7, RegNum: "AB-1234", CustomerID: 5})

	tran, err := svc.Start(context.Background(), 7)
	require.NoError(t, err)

	svc.Now = fixedNow(start.Add(3 * time.Hour))
	res, err := svc.Complete(context.Background(), tran.ID, WizardRequest{})
	require.NoError(t, err)
	assert.Zero(t, res.Charge)
	assert.Equal(t, PayMember, res.Method)
	require.Len(t, store.reports, 1)
	assert.Zero(t, store.reports[0].Charge)
}

func TestLifecycleExpiredCardBlocksCompletion(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	issued := start.AddDate(0, 0, -40)

	svc, store := lifecycleFixture(t, &fakeGateway{}, start)
	store.addCustomer(models.Customer{ID: 5, Name: "pat", CardType: models.CardMonth, CardDate: &issued})
	store.addVehicle(models.Vehicle{ID: 7, RegNum: "AB-1234", CustomerID: 5})

	tran, err := svc.Start(context.Background(), 7)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), tran.ID,
		WizardRequest{Method: PayCash, CashAmount: 100})
	assert.ErrorIs(t, err, ErrCardExpired)

	// The transaction stays active and nothing is archived.
	assert.Len(t, store.trans, 1)
	assert.Empty(t, store.reports)
}

func TestLifecycleStoredCardDebit(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	svc, store := lifecycleFixture(t, &fakeGateway{}, start)
	store.addCustomer(models.Customer{ID: 5, Name: "pat", CardType: models.CardCredit, CardMoney: ptr(50)})
	store.addVehicle(models.Vehicle{ID: 7, RegNum: "AB-1234", CustomerID: 5})

	tran, err := svc.Start(context.Background(), 7)
	require.NoError(t, err)

	svc.Now = fixedNow(start.Add(2 * time.Hour))
	res, err := svc.Complete(context.Background(), tran.ID, WizardRequest{})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, res.Charge, 1e-12)
	assert.Equal(t, PayStoredCard, res.Method)

	require.NotNil(t, store.customers[5].CardMoney)
	assert.InDelta(t, 46.0, *store.customers[5].CardMoney, 1e-9)
	assert.Empty(t, store.trans)
}

func TestLifecycleStoredCardInsufficient(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	svc, store := lifecycleFixture(t, &fakeGateway{}, start)
	store.addCustomer(models.Customer{ID: 5, Name: "pat", CardType: models.CardCredit, CardMoney: ptr(1)})
	store.addVehicle(models.Vehicle{ID: 7, RegNum: "AB-1234", CustomerID: 5})

	tran, err := svc.Start(context.Background(), 7)
	require.NoError(t, err)

	svc.Now = fixedNow(start.Add(2 * time.Hour))
	_, err = svc.Complete(context.Background(), tran.ID, WizardRequest{})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Len(t, store.trans, 1)
	require.NotNil(t, store.customers[5].CardMoney)
	assert.InDelta(t, 1.0, *store.customers[5].CardMoney, 1e-12)
}

func TestStartRejectsParkedVehicle(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc, store := lifecycleFixture(t, &fakeGateway{}, now)
	store.addCustomer(models.Customer{ID: 5, Name: "pat"})
	store.addVehicle(models.Vehicle{ID: 7, RegNum: "AB-1234", CustomerID: 5})

	_, err := svc.Start(context.Background(), 7)
	require.NoError(t, err)

	_, err = svc.Start(context.Background(), 7)
	assert.ErrorIs(t, err, repo.ErrVehicleParked)
}

func TestStartRejectsWhenFull(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc, store := lifecycleFixture(t, &fakeGateway{}, now)
	svc.Settings.ParkingCapacity = 2
	store.addCustomer(models.Customer{ID: 5, Name: "pat"})
	for id := int64(1); id <= 3; id++ {
		store.addVehicle(models.Vehicle{ID: id, RegNum: "AB-1234", CustomerID: 5})
	}

	_, err := svc.Start(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.Start(context.Background(), 2)
	require.NoError(t, err)

	_, err = svc.Start(context.Background(), 3)
	assert.ErrorIs(t, err, repo.ErrParkingFull)
}

func TestStartUnknownVehicle(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc, _ := lifecycleFixture(t, &fakeGateway{}, now)

	_, err := svc.Start(context.Background(), 99)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCompleteUnknownTransaction(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc, _ := lifecycleFixture(t, &fakeGateway{}, now)

	_, err := svc.Complete(context.Background(), 42, WizardRequest{Method: PayCash, CashAmount: 10})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestDeleteActiveTransaction(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc, store := lifecycleFixture(t, &fakeGateway{}, now)
	store.addCustomer(models.Customer{ID: 5, Name: "pat"})
	store.addVehicle(models.Vehicle{ID: 7, RegNum: "AB-1234", CustomerID: 5})

	tran, err := svc.Start(context.Background(), 7)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), tran.ID))
	assert.Empty(t, store.reports)
	assert.Empty(t, store.trans)

	assert.ErrorIs(t, svc.Delete(context.Background(), tran.ID), repo.ErrNotFound)
}
