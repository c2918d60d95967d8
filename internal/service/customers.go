package service

import (
	"context"
	"fmt"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
)

// CustomerList is one page of the guest registry list.
type CustomerList struct {
	Page     domain.Page[domain.CustomerRow]
	Warnings []string
}

// CustomerService serves the guest registry as a customer list.
type CustomerService struct {
	feed Snapshotter
}

// NewCustomerService constructs a CustomerService.
func NewCustomerService(feed Snapshotter) *CustomerService {
	return &CustomerService{feed: feed}
}

// List returns the filtered page of registry entries.
func (s *CustomerService) List(ctx context.Context, q domain.CustomerQuery, refresh bool) (CustomerList, error) {
	snap, err := s.feed.Snapshot(ctx, refresh)
	if err != nil {
		return CustomerList{}, fmt.Errorf("service.CustomerService.List: %w", err)
	}
	return CustomerList{
		Page:     reconcile.FilterCustomers(reconcile.CustomerRows(snap.Registry), q),
		Warnings: snap.Warnings,
	}, nil
}
