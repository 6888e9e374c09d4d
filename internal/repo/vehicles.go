package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
)

type VehiclesRepo struct{ db *pgxpool.Pool }

func NewVehiclesRepo(db *pgxpool.Pool) *VehiclesRepo { return &VehiclesRepo{db: db} }

func (r *VehiclesRepo) Create(ctx context.Context, v models.Vehicle) (int64, error) {
	row := r.db.QueryRow(ctx, `
		insert into vehicle (reg_num, descr, cust_id)
		values ($1,$2,$3)
		returning id
	`, v.RegNum, v.Desc, v.CustomerID)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *VehiclesRepo) Get(ctx context.Context, id int64) (*models.Vehicle, error) {
	row := r.db.QueryRow(ctx, `
		select id, reg_num, coalesce(descr,''), cust_id from vehicle where id=$1
	`, id)

	var v models.Vehicle
	if err := row.Scan(&v.ID, &v.RegNum, &v.Desc, &v.CustomerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VehiclesRepo) List(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := r.db.Query(ctx, `
		select id, reg_num, coalesce(descr,''), cust_id from vehicle order by reg_num asc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.RegNum, &v.Desc, &v.CustomerID); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VehiclesRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `delete from vehicle where id=$1`, id)
	return err
}
