package httpx

import (
	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Address  struct {
		City  string `json:"city"`
		State string `json:"state"`
	} `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    *entity.Actor `json:"user"`
}

type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type PlaceOrderRequest struct {
	ProductName     string     `json:"productName"`
	ProductPrice    float64    `json:"productPrice"`
	Quantity        int        `json:"quantity"`
	DeliveryAddress AddressDTO `json:"deliveryAddress"`
	SupplierID      string     `json:"supplierId,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	Message string            `json:"message"`
	Order   *entity.OrderView `json:"order"`
}

type OrderListResponse struct {
	Success bool               `json:"success"`
	Orders  []entity.OrderView `json:"orders"`
}

type ProductRequest struct {
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Stock          int     `json:"stock"`
	Category       string  `json:"category"`
	Description    string  `json:"description,omitempty"`
	DeliveryRadius int     `json:"deliveryRadius"`
	Image          string  `json:"image,omitempty"`
}

type ProductResponse struct {
	Message string          `json:"message"`
	Product *entity.Product `json:"product"`
}

type ProductListResponse struct {
	Success  bool             `json:"success"`
	Products []entity.Product `json:"products"`
}

type BrowseResponse struct {
	Success  bool                 `json:"success"`
	Products []entity.ProductView `json:"products"`
	Total    int                  `json:"total"`
}
