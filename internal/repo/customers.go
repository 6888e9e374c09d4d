package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
)

// GuestCustomerID is the built-in customer that orphaned transactions are
// reassigned to when their owner is deleted. Seeded first, never removed.
const GuestCustomerID = 1

type CustomersRepo struct{ db *pgxpool.Pool }

func NewCustomersRepo(db *pgxpool.Pool) *CustomersRepo { return &CustomersRepo{db: db} }

func (r *CustomersRepo) Create(ctx context.Context, c models.Customer) (int64, error) {
	row := r.db.QueryRow(ctx, `
		insert into customer (name, address, city, phone, email, card_id, card_date, card_money)
		values ($1,$2,$3,$4,$5,$6,$7,$8)
		returning id
	`, c.Name, c.Address, c.City, c.Phone, c.Email, c.CardType.Stored(), c.CardDate, c.CardMoney)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CustomersRepo) Get(ctx context.Context, id int64) (*models.Customer, error) {
	row := r.db.QueryRow(ctx, `
		select id, name, coalesce(address,''), coalesce(city,''), coalesce(phone,''), coalesce(email,''), card_id, card_date, card_money
		from customer where id=$1
	`, id)
	return scanCustomer(row)
}

func (r *CustomersRepo) List(ctx context.Context) ([]models.Customer, error) {
	rows, err := r.db.Query(ctx, `
		select id, name, coalesce(address,''), coalesce(city,''), coalesce(phone,''), coalesce(email,''), card_id, card_date, card_money
		from customer where id<>$1
		order by name asc
	`, GuestCustomerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// CardMoney returns the stored card balance, nil when the customer does
// not exist or carries no balance.
func (r *CustomersRepo) CardMoney(ctx context.Context, id int64) (*float64, error) {
	row := r.db.QueryRow(ctx, `select card_money from customer where id=$1`, id)
	var money *float64
	if err := row.Scan(&money); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return money, nil
}

// SetCard replaces the customer's card type, issue date and stored balance
// in one statement. Nil date/money clear the columns.
func (r *CustomersRepo) SetCard(ctx context.Context, id int64, ct models.CardType, date *time.Time, money *float64) error {
	_, err := r.db.Exec(ctx, `
		update customer set card_id=$2, card_date=$3, card_money=$4 where id=$1
	`, id, ct.Stored(), date, money)
	return err
}

// Delete removes the customer after reassigning any active transactions to
// the guest customer, so parked vehicles stay accounted for.
func (r *CustomersRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `update transacts set cust_id=$1 where cust_id=$2`, GuestCustomerID, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `delete from customer where id=$1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	var cardID int
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.City, &c.Phone, &c.Email, &cardID, &c.CardDate, &c.CardMoney); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c.CardType = models.FromStored(cardID)
	return &c, nil
}
