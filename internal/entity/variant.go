package entity

import "time"

// Variant is the purchasable SKU-level unit of a product. It carries its
// own price and stock; orders snapshot the variant price at checkout.
type Variant struct {
	ID                int64     `json:"id"`
	ProductID         int64     `json:"product_id"`
	SKU               string    `json:"sku"`
	Size              string    `json:"size"`
	Image             string    `json:"image,omitempty"`
	Price             float64   `json:"price"`
	Stock             int       `json:"stock"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
}

/*
MySQL Table

CREATE TABLE product_variants (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	product_id BIGINT NOT NULL REFERENCES products(id),
	sku VARCHAR(100) NOT NULL,
	size VARCHAR(50) NOT NULL,
	image VARCHAR(255),
	price DOUBLE NOT NULL,
	stock INT NOT NULL DEFAULT 0,
	low_stock_threshold INT NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX variant_sku_idx ON product_variants(sku);
*/
