package entity

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type DeliveryStatus string

const (
	DeliveryProcessing DeliveryStatus = "PROCESSING"
	DeliveryOnTheWay   DeliveryStatus = "ON_THE_WAY"
	DeliveryDelivered  DeliveryStatus = "DELIVERED"
	DeliveryCanceled   DeliveryStatus = "CANCELED"
)

// orderTransitions encodes PENDING -> {SHIPPED -> COMPLETED} | CANCELLED.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderShipped, OrderCancelled},
	OrderShipped: {OrderCompleted, OrderCancelled},
}

func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// DeliveryStatusFor maps an order status to the delivery status applied in
// the same transaction.
func DeliveryStatusFor(s OrderStatus) DeliveryStatus {
	switch s {
	case OrderShipped:
		return DeliveryOnTheWay
	case OrderCompleted:
		return DeliveryDelivered
	case OrderCancelled:
		return DeliveryCanceled
	default:
		return DeliveryProcessing
	}
}

// Order is created atomically with its items and exactly one delivery
// record. Amount is frozen at creation; later price changes never
// retroactively alter it.
type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id,omitempty"`
	GuestID   string      `json:"guest_id,omitempty"`
	Status    OrderStatus `json:"status"`
	Amount    float64     `json:"amount"`
	OrderDate time.Time   `json:"order_date"`

	Items    []OrderItem `json:"items,omitempty"`
	Delivery *Delivery   `json:"delivery,omitempty"`
}

// OrderItem snapshots product name and unit price at checkout time.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	VariantID   int64   `json:"variant_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Delivery struct {
	ID         int64          `json:"id"`
	OrderID    int64          `json:"order_id"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	Address    string         `json:"address"`
	City       string         `json:"city"`
	PostalCode string         `json:"postal_code,omitempty"`
	Charge     float64        `json:"charge"`
	Status     DeliveryStatus `json:"status"`
}

/*
MySQL Tables

CREATE TABLE orders (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT,
	guest_id VARCHAR(64),
	status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
	amount DOUBLE NOT NULL,
	order_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE order_items (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	order_id BIGINT NOT NULL REFERENCES orders(id),
	variant_id BIGINT NOT NULL REFERENCES product_variants(id),
	product_name VARCHAR(255) NOT NULL,
	quantity INT NOT NULL,
	price DOUBLE NOT NULL
);

CREATE TABLE deliveries (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	order_id BIGINT NOT NULL REFERENCES orders(id),
	email VARCHAR(100) NOT NULL,
	phone VARCHAR(30) NOT NULL,
	address VARCHAR(255) NOT NULL,
	city VARCHAR(100) NOT NULL,
	postal_code VARCHAR(20),
	charge DOUBLE NOT NULL DEFAULT 0,
	status VARCHAR(20) NOT NULL DEFAULT 'PROCESSING'
);
*/
