package entity

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusAccepted  OrderStatus = "accepted"
	StatusRejected  OrderStatus = "rejected"
	StatusDelivered OrderStatus = "delivered"
)

// legalTransitions maps a current status to the set of statuses a supplier
// may move the order into. delivered and rejected are terminal: they have no
// entry, so every transition out of them is refused.
var legalTransitions = map[OrderStatus][]OrderStatus{
	StatusPlaced:   {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusDelivered},
}

// CanTransition reports whether moving from into to is a legal lifecycle edge.
func (from OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsUpdatable reports whether s is one of the three statuses a supplier is
// allowed to request. placed is only ever set by the service at creation.
func (s OrderStatus) IsUpdatable() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusDelivered
}

// PaymentMethod is an enum with a single member today; modeled as a type so
// new methods can be added without a schema change.
type PaymentMethod string

const PaymentCOD PaymentMethod = "COD"

// Address is the delivery destination captured on an order. All four fields
// are required; Pincode must be exactly six characters.
type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Pincode string `json:"pincode" bson:"pincode"`
}

// Order is the persisted order document. Vendor and Supplier references are
// immutable after creation; TotalAmount equals ProductPrice * Quantity and is
// fixed at creation, never recomputed.
type Order struct {
	ID            string        `json:"id" bson:"_id"`
	VendorID      string        `json:"vendorId" bson:"vendor"`
	SupplierID    string        `json:"supplierId" bson:"supplier"`
	ProductName   string        `json:"productName" bson:"productName"`
	ProductPrice  float64       `json:"productPrice" bson:"productPrice"`
	Quantity      int           `json:"quantity" bson:"quantity"`
	TotalAmount   float64       `json:"totalAmount" bson:"totalAmount"`
	Address       Address       `json:"deliveryAddress" bson:"deliveryAddress"`
	PaymentMethod PaymentMethod `json:"paymentMethod" bson:"paymentMethod"`
	Status        OrderStatus   `json:"status" bson:"status"`
	Notes         string        `json:"notes,omitempty" bson:"notes,omitempty"`
	OrderDate     time.Time     `json:"orderDate" bson:"orderDate"`
	AcceptedDate  *time.Time    `json:"acceptedDate,omitempty" bson:"acceptedDate,omitempty"`
	DeliveredDate *time.Time    `json:"deliveredDate,omitempty" bson:"deliveredDate,omitempty"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`

	// Revision supports compare-and-swap updates: the ledger only persists a
	// status change when the stored revision still matches, so interleaved
	// writers surface a conflict instead of silently losing a write.
	Revision int64 `json:"-" bson:"revision"`
}

// Contact is the denormalized counterparty view embedded in order responses.
// The fields are owned by the actor record, not the order.
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderView is an order decorated with both parties' display fields.
type OrderView struct {
	Order
	Vendor   Contact `json:"vendor"`
	Supplier Contact `json:"supplier"`
}
