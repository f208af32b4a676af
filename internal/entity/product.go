package entity

import "time"

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	ShortDesc    string    `json:"short_desc,omitempty"`
	LongDesc     string    `json:"long_desc,omitempty"`
	Price        float64   `json:"price"`
	Discount     float64   `json:"discount"`
	Stock        int       `json:"stock"`
	ThumbImage   string    `json:"thumb_image,omitempty"`
	IsNew        bool      `json:"is_new"`
	IsFeatured   bool      `json:"is_featured"`
	IsTrending   bool      `json:"is_trending"`
	IsBestSeller bool      `json:"is_best_seller"`
	IsActive     bool      `json:"is_active"`
	BrandID      int64     `json:"brand_id"`
	CategoryID   int64     `json:"category_id"`
	CreatedAt    time.Time `json:"created_at"`

	Variants []Variant `json:"variants,omitempty"`
}

// BestSeller is a product ranked by units sold in completed orders.
type BestSeller struct {
	Product   Product `json:"product"`
	TotalSold int     `json:"total_sold"`
}

/*
MySQL Table

CREATE TABLE products (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	slug VARCHAR(255) NOT NULL,
	description TEXT,
	short_desc VARCHAR(500),
	long_desc TEXT,
	price DOUBLE NOT NULL,
	discount DOUBLE NOT NULL DEFAULT 0,
	stock INT NOT NULL DEFAULT 0,
	thumb_image VARCHAR(255),
	is_new BOOLEAN NOT NULL DEFAULT FALSE,
	is_featured BOOLEAN NOT NULL DEFAULT FALSE,
	is_trending BOOLEAN NOT NULL DEFAULT FALSE,
	is_best_seller BOOLEAN NOT NULL DEFAULT FALSE,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	brand_id BIGINT NOT NULL REFERENCES brands(id),
	category_id BIGINT NOT NULL REFERENCES categories(id),
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX product_slug_idx ON products(slug);
*/
