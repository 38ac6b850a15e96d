package order

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

// Status is the delivery state of a shipment.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusInTransit Status = "In Transit"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

var statuses = []interface{}{StatusPending, StatusInTransit, StatusDelivered, StatusCancelled}

// Order is a shipment owned by exactly one user.
type Order struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"ownerId"`
	ShipmentName    string    `json:"shipmentName"`
	Status          Status    `json:"status"`
	IsInternational bool      `json:"isInternational"`
	BasePrice       float64   `json:"basePrice"`
	Weight          float64   `json:"weight"`
	RatePerKg       float64   `json:"ratePerKg"`
	Destination     string    `json:"destination"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreateInput carries the fields of a new order. Numeric fields are pointers
// so that a missing value can be told apart from zero.
type CreateInput struct {
	ShipmentName    string   `json:"shipmentName"`
	Status          Status   `json:"status"`
	IsInternational bool     `json:"isInternational"`
	BasePrice       *float64 `json:"basePrice"`
	Weight          *float64 `json:"weight"`
	RatePerKg       *float64 `json:"ratePerKg"`
	Destination     string   `json:"destination"`
}

func (in *CreateInput) normalize() {
	in.ShipmentName = strings.TrimSpace(in.ShipmentName)
	in.Destination = strings.TrimSpace(in.Destination)
	if in.Status == "" {
		in.Status = StatusPending
	}
}

func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ShipmentName, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&in.Status, validation.In(statuses...)),
		validation.Field(&in.BasePrice, validation.NotNil, validation.Min(0.0)),
		validation.Field(&in.Weight, validation.NotNil, validation.Min(0.0)),
		validation.Field(&in.RatePerKg, validation.NotNil, validation.Min(0.0)),
		validation.Field(&in.Destination, validation.Required, validation.RuneLength(1, 200)),
	)
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	ShipmentName    *string  `json:"shipmentName"`
	Status          *Status  `json:"status"`
	IsInternational *bool    `json:"isInternational"`
	BasePrice       *float64 `json:"basePrice"`
	Weight          *float64 `json:"weight"`
	RatePerKg       *float64 `json:"ratePerKg"`
	Destination     *string  `json:"destination"`
}

func (in *UpdateInput) normalize() {
	if in.ShipmentName != nil {
		v := strings.TrimSpace(*in.ShipmentName)
		in.ShipmentName = &v
	}
	if in.Destination != nil {
		v := strings.TrimSpace(*in.Destination)
		in.Destination = &v
	}
}

func (in UpdateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ShipmentName, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
		validation.Field(&in.Status, validation.NilOrNotEmpty, validation.In(statuses...)),
		validation.Field(&in.BasePrice, validation.Min(0.0)),
		validation.Field(&in.Weight, validation.Min(0.0)),
		validation.Field(&in.RatePerKg, validation.Min(0.0)),
		validation.Field(&in.Destination, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
	)
}

// Empty reports whether the update changes nothing.
func (in UpdateInput) Empty() bool {
	return in.ShipmentName == nil && in.Status == nil && in.IsInternational == nil &&
		in.BasePrice == nil && in.Weight == nil && in.RatePerKg == nil && in.Destination == nil
}

func (in UpdateInput) apply(o *Order) {
	if in.ShipmentName != nil {
		o.ShipmentName = *in.ShipmentName
	}
	if in.Status != nil {
		o.Status = *in.Status
	}
	if in.IsInternational != nil {
		o.IsInternational = *in.IsInternational
	}
	if in.BasePrice != nil {
		o.BasePrice = *in.BasePrice
	}
	if in.Weight != nil {
		o.Weight = *in.Weight
	}
	if in.RatePerKg != nil {
		o.RatePerKg = *in.RatePerKg
	}
	if in.Destination != nil {
		o.Destination = *in.Destination
	}
}

// Repository is the persistence port for orders.
type Repository interface {
	Create(ctx context.Context, o Order) error
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Order, error)
	Update(ctx context.Context, o Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OwnerLookup reports whether a user account exists.
type OwnerLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
