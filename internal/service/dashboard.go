package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
)

// RoomSource lists the hotel's rooms.
type RoomSource interface {
	ListRooms(ctx context.Context) ([]domain.Record, error)
}

// DashboardView is the dashboard plus any partial-data warnings.
type DashboardView struct {
	Dashboard domain.Dashboard
	Warnings  []string
}

// DashboardService builds the front-desk overview.
type DashboardService struct {
	feed  Snapshotter
	rooms RoomSource
	loc   *time.Location
	now   func() time.Time
	log   *slog.Logger
}

// NewDashboardService constructs a DashboardService. now defaults to
// time.Now and log to slog.Default.
func NewDashboardService(feed Snapshotter, rooms RoomSource, loc *time.Location, now func() time.Time, log *slog.Logger) *DashboardService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &DashboardService{feed: feed, rooms: rooms, loc: loc, now: now, log: log}
}

// Get builds the dashboard for date ("2006-01-02"), or for today in the
// hotel's time zone when date is empty.
func (s *DashboardService) Get(ctx context.Context, date string, refresh bool) (DashboardView, error) {
	if date == "" {
		date = reconcile.Today(s.now(), s.loc)
	} else if !reconcile.ValidDay(date) {
		return DashboardView{}, fmt.Errorf("service.DashboardService.Get: %w: date must be YYYY-MM-DD", domain.ErrValidation)
	}

	var (
		snap     Snapshot
		rooms    []domain.Record
		roomsErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = s.feed.Snapshot(gctx, refresh)
		return err
	})
	g.Go(func() error {
		rooms, roomsErr = s.rooms.ListRooms(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return DashboardView{}, fmt.Errorf("service.DashboardService.Get: %w", err)
	}

	warnings := slices.Clone(snap.Warnings)
	if roomsErr != nil {
		s.log.WarnContext(ctx, "fetch rooms failed", "error", roomsErr)
		warnings = append(warnings, WarnRoomsUnavailable)
		rooms = nil
	}
	if warnings == nil {
		warnings = []string{}
	}

	return DashboardView{
		Dashboard: reconcile.BuildDashboard(reconcile.DashboardInput{
			Bookings: snap.Bookings,
			Registry: snap.Registry,
			Rooms:    rooms,
			Today:    date,
			Location: s.loc,
		}),
		Warnings: warnings,
	}, nil
}
