package entity

import "time"

type CartStatus string

const (
	CartActive     CartStatus = "ACTIVE"
	CartCheckedOut CartStatus = "CHECKED_OUT"
)

type CartEventType string

const (
	CartEventAdd    CartEventType = "ADD"
	CartEventRemove CartEventType = "REMOVE"
)

// Cart belongs to exactly one identity: a registered user (one active cart
// per user) or a guest session id (one cart per session).
type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
	Status    CartStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`

	Items []CartLine `json:"items,omitempty"`
}

// CartItem holds at most one row per (cart, variant) pair; quantity changes
// increment or decrement that row.
type CartItem struct {
	ID        int64     `json:"id"`
	CartID    int64     `json:"cart_id"`
	VariantID int64     `json:"variant_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CartLine is a cart item joined with its variant and product, the shape
// checkout and cart listings read.
type CartLine struct {
	CartItemID  int64   `json:"cart_item_id"`
	CartID      int64   `json:"cart_id"`
	VariantID   int64   `json:"variant_id"`
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// CartEvent is an immutable audit row appended on every cart mutation.
type CartEvent struct {
	ID        int64         `json:"id"`
	CartID    int64         `json:"cart_id"`
	UserID    int64         `json:"user_id,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
	EventType CartEventType `json:"event_type"`
	CreatedAt time.Time     `json:"created_at"`
}

/*
MySQL Tables

CREATE TABLE carts (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT,
	session_id VARCHAR(64),
	status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX cart_user_status_idx ON carts(user_id, status);
CREATE UNIQUE INDEX cart_session_idx ON carts(session_id);

CREATE TABLE cart_items (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	cart_id BIGINT NOT NULL REFERENCES carts(id),
	variant_id BIGINT NOT NULL REFERENCES product_variants(id),
	quantity INT NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX cart_item_variant_idx ON cart_items(cart_id, variant_id);

CREATE TABLE cart_events (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	cart_id BIGINT NOT NULL REFERENCES carts(id),
	user_id BIGINT,
	session_id VARCHAR(64),
	event_type VARCHAR(20) NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
*/
