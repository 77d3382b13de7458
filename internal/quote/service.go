// quote/service.go
package quote

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalid wraps validation failures on inbound quote data
var ErrInvalid = errors.New("invalid quote")

// Service implements quote CRUD on top of the repository
type Service struct {
	repo *Repository
}

// NewService creates a new quote service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func validate(q *Quote) error {
	if q.QuoteNumber == "" {
		return fmt.Errorf("%w: quote number is required", ErrInvalid)
	}
	if q.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}
	if q.VINNumber == "" {
		return fmt.Errorf("%w: VIN is required", ErrInvalid)
	}
	for key, line := range q.Services {
		if !key.Valid() {
			return fmt.Errorf("%w: unknown service %q", ErrInvalid, key)
		}
		if line.PartsCost < 0 || line.LaborCost < 0 {
			return fmt.Errorf("%w: negative cost for service %q", ErrInvalid, key)
		}
	}
	return nil
}

// Create validates and stores a new quote
func (s *Service) Create(ctx context.Context, q *Quote) (int64, error) {
	if err := validate(q); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, q)
}

// Get loads a quote by id
func (s *Service) Get(ctx context.Context, id int64) (*Quote, error) {
	return s.repo.GetByID(ctx, id)
}

// Update validates and replaces an existing quote
func (s *Service) Update(ctx context.Context, q *Quote) error {
	if err := validate(q); err != nil {
		return err
	}
	return s.repo.Update(ctx, q)
}

// Delete removes a quote by id
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// List returns quotes matching the filter
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Quote, error) {
	return s.repo.List(ctx, filter)
}
