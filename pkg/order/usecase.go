package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shiptrack/api/pkg/logging"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// UseCase is CRUD over shipments, always scoped to the calling user.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Order, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Order, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Order, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (Order, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo   Repository
	owners OwnerLookup
	log    logging.Logger
	now    func() time.Time
}

func NewService(repo Repository, owners OwnerLookup, log logging.Logger) UseCase {
	return &service{repo: repo, owners: owners, log: log.With("component", "orders"), now: time.Now}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Order, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return Order{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	ok, err := s.owners.Exists(ctx, ownerID)
	if err != nil {
		return Order{}, fmt.Errorf("lookup owner: %w", err)
	}
	if !ok {
		return Order{}, ErrOwnerNotFound
	}

	now := s.now().UTC()
	o := Order{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		ShipmentName:    in.ShipmentName,
		Status:          in.Status,
		IsInternational: in.IsInternational,
		BasePrice:       *in.BasePrice,
		Weight:          *in.Weight,
		RatePerKg:       *in.RatePerKg,
		Destination:     in.Destination,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return Order{}, fmt.Errorf("create order: %w", err)
	}
	s.log.Info(ctx, "order created", "order_id", o.ID, "owner_id", ownerID)
	return o, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Order, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	orders, err := s.repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Order, error) {
	return s.owned(ctx, ownerID, id)
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (Order, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return Order{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	o, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return Order{}, err
	}
	if in.Empty() {
		return o, nil
	}
	in.apply(&o)
	o.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, o); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("update order: %w", err)
	}
	s.log.Info(ctx, "order updated", "order_id", id, "owner_id", ownerID)
	return o, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete order: %w", err)
	}
	s.log.Info(ctx, "order deleted", "order_id", id, "owner_id", ownerID)
	return nil
}

// owned loads an order and checks it belongs to ownerID.
func (s *service) owned(ctx context.Context, ownerID, id uuid.UUID) (Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	if o.OwnerID != ownerID {
		s.log.Warn(ctx, "order access denied", "order_id", id, "user_id", ownerID)
		return Order{}, ErrForbidden
	}
	return o, nil
}
