package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db}
}

// AddItem upserts the identity's active cart, upserts the (cart, variant)
// item row with a quantity increment, and appends an ADD event in one
// transaction. The quantity increment runs as a single upsert statement so
// concurrent adds for the same pair never lose an update.
func (r *CartRepository) AddItem(ctx context.Context, userID int64, sessionID string, variantID int64, qty int) (*entity.Cart, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	cart, err := upsertCart(ctx, tx, userID, sessionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO cart_items (cart_id, variant_id, quantity) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`,
		cart.ID, variantID, qty)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := appendEvent(ctx, tx, cart, entity.CartEventAdd); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetItemQuantity sets the quantity of an existing (cart, variant) row and
// appends an ADD event. Returns sql.ErrNoRows when the row is missing.
func (r *CartRepository) SetItemQuantity(ctx context.Context, cart *entity.Cart, variantID int64, qty int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE cart_items SET quantity = ? WHERE cart_id = ? AND variant_id = ?`, qty, cart.ID, variantID)
	if err != nil {
		tx.Rollback()
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if n == 0 {
		tx.Rollback()
		return sql.ErrNoRows
	}

	if err := appendEvent(ctx, tx, cart, entity.CartEventAdd); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// RemoveItem deletes the (cart, variant) row and appends a REMOVE event.
// Returns sql.ErrNoRows when the row is missing.
func (r *CartRepository) RemoveItem(ctx context.Context, cart *entity.Cart, variantID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = ? AND variant_id = ?`, cart.ID, variantID)
	if err != nil {
		tx.Rollback()
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if n == 0 {
		tx.Rollback()
		return sql.ErrNoRows
	}

	if err := appendEvent(ctx, tx, cart, entity.CartEventRemove); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// GetActiveCart finds the identity's active cart; sql.ErrNoRows when absent.
func (r *CartRepository) GetActiveCart(ctx context.Context, userID int64, sessionID string) (*entity.Cart, error) {
	var row *sql.Row
	if userID != 0 {
		row = r.db.QueryRowContext(ctx,
			`SELECT id, COALESCE(user_id, 0), COALESCE(session_id, ''), status, created_at FROM carts WHERE user_id = ? AND status = ?`,
			userID, entity.CartActive)
	} else {
		row = r.db.QueryRowContext(ctx,
			`SELECT id, COALESCE(user_id, 0), COALESCE(session_id, ''), status, created_at FROM carts WHERE session_id = ? AND status = ?`,
			sessionID, entity.CartActive)
	}

	cart := &entity.Cart{}
	err := row.Scan(&cart.ID, &cart.UserID, &cart.SessionID, &cart.Status, &cart.CreatedAt)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *CartRepository) GetLines(ctx context.Context, cartID int64) ([]entity.CartLine, error) {
	q := `SELECT ci.id, ci.cart_id, ci.variant_id, v.sku, p.name, v.price, ci.quantity
		FROM cart_items ci
		JOIN product_variants v ON v.id = ci.variant_id
		JOIN products p ON p.id = v.product_id
		WHERE ci.cart_id = ?`
	return r.queryLines(ctx, q, cartID)
}

// GetLinesByIDs resolves cart items for checkout; callers compare the
// returned count against the requested ids to detect missing rows.
func (r *CartRepository) GetLinesByIDs(ctx context.Context, ids []int64) ([]entity.CartLine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := `SELECT ci.id, ci.cart_id, ci.variant_id, v.sku, p.name, v.price, ci.quantity
		FROM cart_items ci
		JOIN product_variants v ON v.id = ci.variant_id
		JOIN products p ON p.id = v.product_id
		WHERE ci.id IN (` + placeholders + `)`
	return r.queryLines(ctx, q, args...)
}

func (r *CartRepository) queryLines(ctx context.Context, q string, args ...any) ([]entity.CartLine, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []entity.CartLine
	for rows.Next() {
		var l entity.CartLine
		err := rows.Scan(&l.CartItemID, &l.CartID, &l.VariantID, &l.SKU, &l.ProductName, &l.UnitPrice, &l.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// upsertCart relies on the unique keys over (user_id, status) and
// session_id; LAST_INSERT_ID(id) makes the existing row's id visible when
// the insert collides.
func upsertCart(ctx context.Context, tx *sql.Tx, userID int64, sessionID string) (*entity.Cart, error) {
	var res sql.Result
	var err error
	if userID != 0 {
		res, err = tx.ExecContext(ctx,
			`INSERT INTO carts (user_id, status) VALUES (?, ?)
			ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`,
			userID, entity.CartActive)
	} else {
		res, err = tx.ExecContext(ctx,
			`INSERT INTO carts (session_id, status) VALUES (?, ?)
			ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`,
			sessionID, entity.CartActive)
	}
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &entity.Cart{ID: id, UserID: userID, SessionID: sessionID, Status: entity.CartActive}, nil
}

func appendEvent(ctx context.Context, tx *sql.Tx, cart *entity.Cart, event entity.CartEventType) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO cart_events (cart_id, user_id, session_id, event_type) VALUES (?, NULLIF(?, 0), NULLIF(?, ''), ?)`,
		cart.ID, cart.UserID, cart.SessionID, event)
	return err
}
