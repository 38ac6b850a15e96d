package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiptrack/api/pkg/order"
)

// OrderRepository stores shipments in the orders table.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `id, owner_id, shipment_name, status, is_international, base_price, weight, rate_per_kg, destination, created_at, updated_at`

func (r *OrderRepository) Create(ctx context.Context, o order.Order) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO orders (`+orderColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`, o.ID, o.OwnerID, o.ShipmentName, string(o.Status), o.IsInternational,
		o.BasePrice, o.Weight, o.RatePerKg, o.Destination, o.CreatedAt, o.UpdatedAt)
	return err
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (order.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, order.ErrNotFound
		}
		return order.Order{}, err
	}
	return o, nil
}

func (r *OrderRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+orderColumns+` FROM orders
WHERE owner_id = $1
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]order.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) Update(ctx context.Context, o order.Order) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE orders SET
	shipment_name = $2,
	status = $3,
	is_international = $4,
	base_price = $5,
	weight = $6,
	rate_per_kg = $7,
	destination = $8,
	updated_at = $9
WHERE id = $1
`, o.ID, o.ShipmentName, string(o.Status), o.IsInternational,
		o.BasePrice, o.Weight, o.RatePerKg, o.Destination, o.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (order.Order, error) {
	var o order.Order
	var status string
	var created, updated time.Time
	if err := row.Scan(&o.ID, &o.OwnerID, &o.ShipmentName, &status, &o.IsInternational,
		&o.BasePrice, &o.Weight, &o.RatePerKg, &o.Destination, &created, &updated); err != nil {
		return order.Order{}, err
	}
	o.Status = order.Status(status)
	o.CreatedAt = created.UTC()
	o.UpdatedAt = updated.UTC()
	return o, nil
}
