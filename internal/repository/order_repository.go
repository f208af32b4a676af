package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

// CreateOrder persists the order, its item snapshots and its delivery row,
// and deletes the consumed cart items, in one transaction. Any failure
// rolls the whole unit back; a cart item that vanished between read and
// write aborts via the affected-rows check.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order, cartItemIDs []int64) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, guest_id, status, amount) VALUES (NULLIF(?, 0), NULLIF(?, ''), ?, ?)`,
		order.UserID, order.GuestID, order.Status, order.Amount)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	itemQuery := `INSERT INTO order_items (order_id, variant_id, product_name, quantity, price) VALUES `
	var values []any
	for _, item := range order.Items {
		itemQuery += "(?, ?, ?, ?, ?),"
		values = append(values, orderID, item.VariantID, item.ProductName, item.Quantity, item.Price)
	}
	itemQuery = itemQuery[:len(itemQuery)-1]

	_, err = tx.ExecContext(ctx, itemQuery, values...)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	d := order.Delivery
	res, err = tx.ExecContext(ctx,
		`INSERT INTO deliveries (order_id, email, phone, address, city, postal_code, charge, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		orderID, d.Email, d.Phone, d.Address, d.City, d.PostalCode, d.Charge, d.Status)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	d.ID, err = res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	d.OrderID = orderID

	if len(cartItemIDs) > 0 {
		deleteQuery := `DELETE FROM cart_items WHERE id IN (`
		var args []any
		for _, id := range cartItemIDs {
			deleteQuery += "?,"
			args = append(args, id)
		}
		deleteQuery = deleteQuery[:len(deleteQuery)-1] + ")"

		res, err := tx.ExecContext(ctx, deleteQuery, args...)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if n != int64(len(cartItemIDs)) {
			tx.Rollback()
			return nil, fmt.Errorf("expected to consume %d cart items, consumed %d", len(cartItemIDs), n)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.ID = orderID
	for i := range order.Items {
		order.Items[i].OrderID = orderID
	}
	return order, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	order := &entity.Order{}
	var guestID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, COALESCE(user_id, 0), guest_id, status, amount, order_date FROM orders WHERE id = ?`, id).
		Scan(&order.ID, &order.UserID, &guestID, &order.Status, &order.Amount, &order.OrderDate)
	if err != nil {
		return nil, err
	}
	order.GuestID = guestID.String

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, variant_id, product_name, quantity, price FROM order_items WHERE order_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.VariantID, &item.ProductName, &item.Quantity, &item.Price)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	d := &entity.Delivery{}
	var postal sql.NullString
	err = r.db.QueryRowContext(ctx,
		`SELECT id, order_id, email, phone, address, city, postal_code, charge, status FROM deliveries WHERE order_id = ?`, id).
		Scan(&d.ID, &d.OrderID, &d.Email, &d.Phone, &d.Address, &d.City, &postal, &d.Charge, &d.Status)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if err == nil {
		d.PostalCode = postal.String
		order.Delivery = d
	}

	return order, nil
}

// UpdateStatus applies the order status and the mapped delivery status in
// the same transaction.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, deliveryStatus entity.DeliveryStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		tx.Rollback()
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE deliveries SET status = ? WHERE order_id = ?`, deliveryStatus, id)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, q := range []string{
		`DELETE FROM order_items WHERE order_id = ?`,
		`DELETE FROM deliveries WHERE order_id = ?`,
		`DELETE FROM orders WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepository) List(ctx context.Context, spec query.Spec) ([]entity.Order, error) {
	q, args := spec.SQL(`SELECT id, COALESCE(user_id, 0), COALESCE(guest_id, ''), status, amount, order_date FROM orders`)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var o entity.Order
		err := rows.Scan(&o.ID, &o.UserID, &o.GuestID, &o.Status, &o.Amount, &o.OrderDate)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	return count(ctx, r.db, "orders", where, args)
}
