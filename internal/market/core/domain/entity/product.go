package entity

import "time"

// Product is a supplier's catalog listing. Orders copy the name and price at
// placement time instead of referencing the listing, so later edits never
// rewrite order history.
type Product struct {
	ID             string    `json:"id" bson:"_id"`
	SupplierID     string    `json:"supplierId" bson:"supplier"`
	Name           string    `json:"name" bson:"name"`
	Price          float64   `json:"price" bson:"price"`
	Stock          int       `json:"stock" bson:"stock"`
	Category       string    `json:"category" bson:"category"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty"`
	DeliveryRadius int       `json:"deliveryRadius" bson:"deliveryRadius"`
	Image          string    `json:"image,omitempty" bson:"image,omitempty"`
	IsActive       bool      `json:"isActive" bson:"isActive"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductView is a product decorated with its supplier's display fields for
// the vendor-facing browse listing.
type ProductView struct {
	Product
	Supplier Contact `json:"supplier"`
}
