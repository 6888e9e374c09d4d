package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrVehicleParked is returned when the vehicle already has an active
// transaction.
var ErrVehicleParked = errors.New("vehicle is already in the parking")

// ErrParkingFull is returned when the parking capacity is exhausted.
var ErrParkingFull = errors.New("parking capacity exceeded")

// ErrDebitFailed is returned when a stored-card debit wrote no row.
var ErrDebitFailed = errors.New("card debit failed")

type TransactionsRepo struct{ db *pgxpool.Pool }

func NewTransactionsRepo(db *pgxpool.Pool) *TransactionsRepo { return &TransactionsRepo{db: db} }

// Start opens an active transaction for the vehicle. The vehicle row is
// locked for the duration of the transaction so two concurrent attempts
// for the same vehicle serialize; the capacity count runs under the same
// database transaction.
func (r *TransactionsRepo) Start(ctx context.Context, vehicleID int64, capacity int, startedAt time.Time) (*models.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var custID int64
	err = tx.QueryRow(ctx, `select cust_id from vehicle where id=$1 for update`, vehicleID).Scan(&custID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var parked bool
	if err := tx.QueryRow(ctx, `select exists(select 1 from transacts where vehi_id=$1)`, vehicleID).Scan(&parked); err != nil {
		return nil, err
	}
	if parked {
		return nil, ErrVehicleParked
	}

	var active int
	if err := tx.QueryRow(ctx, `select count(*) from transacts`).Scan(&active); err != nil {
		return nil, err
	}
	if active >= capacity {
		return nil, ErrParkingFull
	}

	t := models.Transaction{VehicleID: vehicleID, CustomerID: custID, StartedAt: startedAt}
	err = tx.QueryRow(ctx, `
		insert into transacts (vehi_id, cust_id, started_at)
		values ($1,$2,$3)
		returning id
	`, t.VehicleID, t.CustomerID, t.StartedAt).Scan(&t.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionsRepo) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		select id, vehi_id, cust_id, started_at from transacts where id=$1
	`, id)

	var t models.Transaction
	if err := row.Scan(&t.ID, &t.VehicleID, &t.CustomerID, &t.StartedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TransactionsRepo) List(ctx context.Context) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		select id, vehi_id, cust_id, started_at from transacts order by started_at asc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.VehicleID, &t.CustomerID, &t.StartedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionsRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `select count(*) from transacts`).Scan(&n)
	return n, err
}

func (r *TransactionsRepo) ExistsForVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	var parked bool
	err := r.db.QueryRow(ctx, `select exists(select 1 from transacts where vehi_id=$1)`, vehicleID).Scan(&parked)
	return parked, err
}

func (r *TransactionsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `delete from transacts where id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CardDebit subtracts Amount from the customer's stored card balance as
// part of completing a transaction.
type CardDebit struct {
	CustomerID int64
	Amount     float64
}

// Complete archives the report record and removes the active transaction
// in a single database transaction, optionally debiting the customer's
// stored card first. Any failure rolls the whole unit back, so a paid
// transaction can never end up half-archived.
func (r *TransactionsRepo) Complete(ctx context.Context, transactionID int64, debit *CardDebit, rec models.ReportRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if debit != nil {
		tag, err := tx.Exec(ctx, `
			update customer set card_money = card_money - $2
			where id=$1 and card_money is not null
		`, debit.CustomerID, debit.Amount)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrDebitFailed
		}
	}

	_, err = tx.Exec(ctx, `
		insert into report (vehicle, customer, started_at, ended_at, charge)
		values ($1,$2,$3,$4,$5)
	`, rec.Vehicle, rec.Customer, rec.StartedAt, rec.EndedAt, rec.Charge)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `delete from transacts where id=$1`, transactionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
