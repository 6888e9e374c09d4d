package services

import (
	"context"
	"time"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/repo"
)

// memStore is an in-memory stand-in for the repo layer, honouring the
// same contract: one active transaction per vehicle, capacity cap,
// atomic complete (debit + archive + remove all-or-nothing).
type memStore struct {
	customers map[int64]*models.Customer
	vehicles  map[int64]*models.Vehicle
	trans     map[int64]*models.Transaction
	reports   []models.ReportRecord
	nextTran  int64

	setCardCalls int
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[int64]*models.Customer{},
		vehicles:  map[int64]*models.Vehicle{},
		trans:     map[int64]*models.Transaction{},
	}
}

func (m *memStore) addCustomer(c models.Customer) *models.Customer {
	cc := c
	m.customers[c.ID] = &cc
	return &cc
}

func (m *memStore) addVehicle(v models.Vehicle) *models.Vehicle {
	vv := v
	m.vehicles[v.ID] = &vv
	return &vv
}

func (m *memStore) Get(ctx context.Context, id int64) (*models.Customer, error) {
	return m.customers[id], nil
}

func (m *memStore) CardMoney(ctx context.Context, customerID int64) (*float64, error) {
	c := m.customers[customerID]
	if c == nil {
		return nil, nil
	}
	return c.CardMoney, nil
}

func (m *memStore) SetCard(ctx context.Context, id int64, ct models.CardType, date *time.Time, money *float64) error {
	m.setCardCalls++
	c := m.customers[id]
	if c == nil {
		return repo.ErrNotFound
	}
	c.CardType = ct
	c.CardDate = date
	c.CardMoney = money
	return nil
}

func (m *memStore) Delete(ctx context.Context, id int64) error {
	for _, t := range m.trans {
		if t.CustomerID == id {
			t.CustomerID = repo.GuestCustomerID
		}
	}
	delete(m.customers, id)
	return nil
}

type memVehicles struct{ *memStore }

func (m *memStore) Vehicles() memVehicles { return memVehicles{m} }

func (v memVehicles) Get(ctx context.Context, id int64) (*models.Vehicle, error) {
	return v.vehicles[id], nil
}

func (v memVehicles) Delete(ctx context.Context, id int64) error {
	delete(v.vehicles, id)
	return nil
}

type memTransactions struct{ *memStore }

func (m *memStore) Transactions() memTransactions { return memTransactions{m} }

func (t memTransactions) Start(ctx context.Context, vehicleID int64, capacity int, startedAt time.Time) (*models.Transaction, error) {
	veh := t.vehicles[vehicleID]
	if veh == nil {
		return nil, repo.ErrNotFound
	}
	for _, tr := range t.trans {
		if tr.VehicleID == vehicleID {
			return nil, repo.ErrVehicleParked
		}
	}
	if len(t.trans) >= capacity {
		return nil, repo.ErrParkingFull
	}
	t.nextTran++
	tr := &models.Transaction{ID: t.nextTran, VehicleID: vehicleID, CustomerID: veh.CustomerID, StartedAt: startedAt}
	t.trans[tr.ID] = tr
	return tr, nil
}

func (t memTransactions) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	return t.trans[id], nil
}

func (t memTransactions) Delete(ctx context.Context, id int64) error {
	if t.trans[id] == nil {
		return repo.ErrNotFound
	}
	delete(t.trans, id)
	return nil
}

func (t memTransactions) Complete(ctx context.Context, transactionID int64, debit *repo.CardDebit, rec models.ReportRecord) error {
	if t.trans[transactionID] == nil {
		return repo.ErrNotFound
	}
	if debit != nil {
		c := t.customers[debit.CustomerID]
		if c == nil || c.CardMoney == nil {
			return repo.ErrDebitFailed
		}
		balance := *c.CardMoney - debit.Amount
		c.CardMoney = &balance
	}
	t.reports = append(t.reports, rec)
	delete(t.trans, transactionID)
	return nil
}

func (t memTransactions) ExistsForVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	for _, tr := range t.trans {
		if tr.VehicleID == vehicleID {
			return true, nil
		}
	}
	return false, nil
}

// fakeGateway records charge attempts and answers with a fixed result.
type fakeGateway struct {
	charged bool
	err     error
	calls   int
	amount  float64
	number  string
}

func (g *fakeGateway) ChargeCard(ctx context.Context, cardNumber string, amount float64) (bool, error) {
	g.calls++
	g.number = cardNumber
	g.amount = amount
	return g.charged, g.err
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr(f float64) *float64 { return &f }
