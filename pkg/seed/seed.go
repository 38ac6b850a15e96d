// Package seed fills an empty store with demo accounts and shipments.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shiptrack/api/pkg/auth"
	"github.com/shiptrack/api/pkg/logging"
	"github.com/shiptrack/api/pkg/order"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "password123"

type demoUser struct {
	username  string
	shipments []order.CreateInput
}

func shipment(name string, status order.Status, international bool, base, weight, rate float64, dest string) order.CreateInput {
	return order.CreateInput{
		ShipmentName:    name,
		Status:          status,
		IsInternational: international,
		BasePrice:       &base,
		Weight:          &weight,
		RatePerKg:       &rate,
		Destination:     dest,
	}
}

func demoUsers() []demoUser {
	return []demoUser{
		{username: "akshat", shipments: []order.CreateInput{
			shipment("Electronics Package", order.StatusPending, false, 500, 10, 50, "Delhi"),
			shipment("Books Shipment", order.StatusDelivered, false, 300, 20, 15, "Mumbai"),
		}},
		{username: "rahul", shipments: []order.CreateInput{
			shipment("Furniture Set", order.StatusInTransit, true, 2000, 50, 60, "New York"),
			shipment("Clothing Boxes", order.StatusCancelled, true, 800, 30, 40, "London"),
		}},
		{username: "sanya", shipments: []order.CreateInput{
			shipment("Grocery Supplies", order.StatusPending, false, 150, 5, 20, "Bangalore"),
		}},
	}
}

// Summary counts what Run inserted.
type Summary struct {
	Users  int
	Orders int
}

// Run inserts the demo data. The target store is expected to be empty;
// an existing demo username fails with auth.ErrUserAlreadyExists.
func Run(ctx context.Context, users auth.UserRepository, orders order.UseCase, hasher auth.PasswordHasher, log logging.Logger) (Summary, error) {
	hash, err := hasher.Hash(DemoPassword)
	if err != nil {
		return Summary{}, fmt.Errorf("hash demo password: %w", err)
	}

	var sum Summary
	for _, du := range demoUsers() {
		u := auth.User{
			ID:           uuid.New(),
			Username:     du.username,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		if err := users.Create(ctx, u); err != nil {
			return sum, fmt.Errorf("create user %s: %w", du.username, err)
		}
		sum.Users++

		for _, in := range du.shipments {
			if _, err := orders.Create(ctx, u.ID, in); err != nil {
				return sum, fmt.Errorf("create order %q for %s: %w", in.ShipmentName, du.username, err)
			}
			sum.Orders++
		}
	}
	log.Info(ctx, "seed complete", "users", sum.Users, "orders", sum.Orders)
	return sum, nil
}
