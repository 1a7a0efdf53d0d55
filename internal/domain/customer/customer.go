package customer

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested customer does not exist.
var ErrNotFound = errors.New("customer not found")

// Customer is a registered shop account. Password is stored as an opaque
// string; there is no authentication layer in front of it.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Repository defines persistence operations for customers.
type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id int64) error
}

// Service exposes the customer CRUD paths over a Repository.
type Service struct {
	repo Repository
}

// NewService creates a customer Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAll returns all customers; an empty store is reported as ErrNotFound,
// matching the listing contract of the other collections.
func (s *Service) ListAll(ctx context.Context) ([]Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	if len(customers) == 0 {
		return nil, ErrNotFound
	}
	return customers, nil
}

func (s *Service) Create(ctx context.Context, c *Customer) error {
	return s.repo.Create(ctx, c)
}

// Update replaces the mutable fields of an existing customer.
func (s *Service) Update(ctx context.Context, id int64, fields Customer) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.FirstName = fields.FirstName
	c.LastName = fields.LastName
	c.Email = fields.Email
	if fields.Password != "" {
		c.Password = fields.Password
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, errors.Wrapf(err, "update customer %d", id)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
