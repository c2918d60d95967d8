package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
)

// Snapshotter is the read side of a Feed.
type Snapshotter interface {
	Snapshot(ctx context.Context, force bool) (Snapshot, error)
	Invalidate(ctx context.Context) error
}

// BookingUpstream is the per-booking part of the hotel backend.
type BookingUpstream interface {
	ListBookingGuests(ctx context.Context, bookingID int64) ([]domain.Record, error)
	DeleteBooking(ctx context.Context, bookingID int64) error
}

// BookingList is one page of the booking list.
type BookingList struct {
	Page     domain.Page[domain.FlatRow]
	Warnings []string
}

// BookingService serves the booking list, its stats, the detail view and
// deletion.
type BookingService struct {
	feed     Snapshotter
	upstream BookingUpstream
	loc      *time.Location
	log      *slog.Logger
}

// NewBookingService constructs a BookingService. log may be nil.
func NewBookingService(feed Snapshotter, upstream BookingUpstream, loc *time.Location, log *slog.Logger) *BookingService {
	if log == nil {
		log = slog.Default()
	}
	return &BookingService{feed: feed, upstream: upstream, loc: loc, log: log}
}

func (s *BookingService) normalized(ctx context.Context, refresh bool) ([]domain.NormalizedBooking, []string, error) {
	snap, err := s.feed.Snapshot(ctx, refresh)
	if err != nil {
		return nil, nil, err
	}
	return reconcile.Normalize(snap.Bookings, snap.Registry, reconcile.ListOptions(s.loc)), snap.Warnings, nil
}

// List returns the filtered, sorted page of the booking list. refresh
// bypasses the snapshot cache.
func (s *BookingService) List(ctx context.Context, q domain.BookingQuery, refresh bool) (BookingList, error) {
	bookings, warnings, err := s.normalized(ctx, refresh)
	if err != nil {
		return BookingList{}, fmt.Errorf("service.BookingService.List: %w", err)
	}
	return BookingList{
		Page:     reconcile.FilterBookings(reconcile.FlatRows(bookings), q),
		Warnings: warnings,
	}, nil
}

// Stats returns the booking list summary counts.
func (s *BookingService) Stats(ctx context.Context) (domain.BookingStats, []string, error) {
	bookings, warnings, err := s.normalized(ctx, false)
	if err != nil {
		return domain.BookingStats{}, nil, fmt.Errorf("service.BookingService.Stats: %w", err)
	}
	return reconcile.ListStats(reconcile.FlatRows(bookings)), warnings, nil
}

// Detail returns the detail view of booking id with person as the active
// person. A checked-in booking reads its guests fresh from the hotel
// backend; if that call fails the snapshot's guest list is used instead.
func (s *BookingService) Detail(ctx context.Context, id int64, person int) (domain.DetailView, error) {
	bookings, _, err := s.normalized(ctx, false)
	if err != nil {
		return domain.DetailView{}, fmt.Errorf("service.BookingService.Detail: %w", err)
	}
	idx := slices.IndexFunc(bookings, func(b domain.NormalizedBooking) bool {
		v, ok := b.ID.Get()
		return ok && v == id
	})
	if idx < 0 {
		return domain.DetailView{}, fmt.Errorf("service.BookingService.Detail: booking %d: %w", id, domain.ErrNotFound)
	}
	b := bookings[idx]

	if b.CheckedIn {
		fresh, err := s.upstream.ListBookingGuests(ctx, id)
		switch {
		case ctx.Err() != nil:
			// The caller moved on; its response would be stale.
			return domain.DetailView{}, fmt.Errorf("service.BookingService.Detail: %w", ctx.Err())
		case err != nil:
			s.log.WarnContext(ctx, "fetch booking guests failed", "booking_id", id, "error", err)
		default:
			guests := reconcile.RegistryGuests(reconcile.NewRegistry(fresh).Entries(), b.MainGuestEmail)
			if len(guests) > 0 {
				b.GuestList = guests
			}
		}
	}
	return reconcile.Detail(b, person), nil
}

// Delete removes booking id in the hotel backend and drops the cached
// snapshot. Only real ids can be deleted.
func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("service.BookingService.Delete: %w: booking id must be positive", domain.ErrValidation)
	}
	if err := s.upstream.DeleteBooking(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUpstream) || ctx.Err() != nil {
			return fmt.Errorf("service.BookingService.Delete: %w", err)
		}
		return fmt.Errorf("service.BookingService.Delete: %v: %w", err, domain.ErrUpstream)
	}
	if err := s.feed.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "invalidate snapshot failed", "booking_id", id, "error", err)
	}
	return nil
}
