package entity

import "time"

// Role distinguishes the two sides of the marketplace.
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
)

// Valid reports whether r is one of the two supported roles.
func (r Role) Valid() bool {
	return r == RoleVendor || r == RoleSupplier
}

// ActorAddress is the coarse location attached to an actor profile. It is
// display-only; orders carry their own full delivery address.
type ActorAddress struct {
	City  string `json:"city" bson:"city"`
	State string `json:"state" bson:"state"`
}

// Actor is a registered marketplace user: a vendor who places orders or a
// supplier who lists produce and fulfils them.
type Actor struct {
	ID           string       `json:"id" bson:"_id"`
	Role         Role         `json:"role" bson:"role"`
	Name         string       `json:"name" bson:"name"`
	Email        string       `json:"email" bson:"email"`
	Phone        string       `json:"phone" bson:"phone"`
	Address      ActorAddress `json:"address" bson:"address"`
	PasswordHash string       `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time    `json:"createdAt" bson:"createdAt"`
}

// Contact returns the denormalized display fields embedded in order views.
func (a *Actor) Contact() Contact {
	return Contact{ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone}
}
