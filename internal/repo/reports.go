package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
)

type ReportsRepo struct{ db *pgxpool.Pool }

func NewReportsRepo(db *pgxpool.Pool) *ReportsRepo { return &ReportsRepo{db: db} }

func (r *ReportsRepo) List(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `
		select id, vehicle, customer, started_at, ended_at, charge::float8
		from report order by ended_at desc limit $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.ReportRecord, 0, limit)
	for rows.Next() {
		var rec models.ReportRecord
		if err := rows.Scan(&rec.ID, &rec.Vehicle, &rec.Customer, &rec.StartedAt, &rec.EndedAt, &rec.Charge); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
