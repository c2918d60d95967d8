// Package service contains the business logic for the front-desk API.
// Services fetch from the hotel backend, run the reconcile pipeline and
// orchestrate repo calls. No SQL and no HTTP lives here; services depend on
// interfaces, not implementations.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pkordes/frontdesk/internal/cache"
	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/metrics"
	"github.com/pkordes/frontdesk/internal/reconcile"
)

// Warnings attached to responses built from partial data.
const (
	WarnBookingsUnavailable = "bookings unavailable"
	WarnRegistryUnavailable = "guest registry unavailable"
	WarnRoomsUnavailable    = "rooms unavailable"
)

const snapshotKey = "snapshot"

// BookingSource is the part of the hotel backend a Feed reads from.
type BookingSource interface {
	ListBookings(ctx context.Context) ([]domain.Record, error)
	ListGuests(ctx context.Context) ([]domain.Record, error)
}

// Snapshot is one read of the hotel backend's bookings and guest registry.
// Snapshots are shared between callers and must be treated as read-only.
type Snapshot struct {
	Bookings []domain.Record
	Guests   []domain.Record
	Registry *reconcile.Registry
	Warnings []string
}

// Feed loads Snapshots. Concurrent callers share a single upstream round
// trip, and complete snapshots are cached for ttl.
//
// A snapshot is not scoped to a token: the shared load runs with the
// session of whichever caller started it, and every admin served from that
// flight or from the cache sees the same data. The hotel backend is
// expected to return the same bookings to every front-desk admin.
type Feed struct {
	src     BookingSource
	store   cache.Store
	ttl     time.Duration
	metrics *metrics.Metrics
	log     *slog.Logger
	group   singleflight.Group

	// mu guards gen. gen advances on every Invalidate; a load only writes
	// the cache if gen is unchanged since it started fetching.
	mu  sync.Mutex
	gen uint64
}

// NewFeed constructs a Feed. m and log may be nil.
func NewFeed(src BookingSource, store cache.Store, ttl time.Duration, m *metrics.Metrics, log *slog.Logger) *Feed {
	if log == nil {
		log = slog.Default()
	}
	return &Feed{src: src, store: store, ttl: ttl, metrics: m, log: log}
}

// Snapshot returns the current bookings and registry. force skips the cache.
// A failed fetch degrades to an empty list plus a warning; the only errors
// returned are context errors.
func (f *Feed) Snapshot(ctx context.Context, force bool) (Snapshot, error) {
	if !force {
		if snap, ok := f.cached(ctx); ok {
			f.countLoad("cache")
			return snap, nil
		}
	}

	// The shared load must outlive any single caller's cancellation.
	ch := f.group.DoChan(snapshotKey, func() (any, error) {
		return f.load(context.WithoutCancel(ctx)), nil
	})
	select {
	case <-ctx.Done():
		return Snapshot{}, fmt.Errorf("service.Feed.Snapshot: %w", ctx.Err())
	case res := <-ch:
		return res.Val.(Snapshot), nil
	}
}

// Invalidate drops the cached snapshot so the next read refetches. A load
// already in flight still answers its own callers but is not cached.
func (f *Feed) Invalidate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.group.Forget(snapshotKey)
	if err := f.store.Delete(ctx, snapshotKey); err != nil {
		return fmt.Errorf("service.Feed.Invalidate: %w", err)
	}
	return nil
}

func (f *Feed) load(ctx context.Context) Snapshot {
	gen := f.generation()

	var (
		bookings, guests       []domain.Record
		bookingsErr, guestsErr error
		g                      errgroup.Group
	)
	g.Go(func() error {
		bookings, bookingsErr = f.src.ListBookings(ctx)
		return nil
	})
	g.Go(func() error {
		guests, guestsErr = f.src.ListGuests(ctx)
		return nil
	})
	_ = g.Wait()

	snap := Snapshot{Bookings: bookings, Guests: guests, Warnings: []string{}}
	if bookingsErr != nil {
		f.log.WarnContext(ctx, "fetch bookings failed", "error", bookingsErr)
		snap.Bookings = []domain.Record{}
		snap.Warnings = append(snap.Warnings, WarnBookingsUnavailable)
	}
	if guestsErr != nil {
		f.log.WarnContext(ctx, "fetch guest registry failed", "error", guestsErr)
		snap.Guests = []domain.Record{}
		snap.Warnings = append(snap.Warnings, WarnRegistryUnavailable)
	}
	if snap.Bookings == nil {
		snap.Bookings = []domain.Record{}
	}
	if snap.Guests == nil {
		snap.Guests = []domain.Record{}
	}
	snap.Registry = reconcile.NewRegistry(snap.Guests)
	f.countLoad("upstream")

	if len(snap.Warnings) == 0 {
		f.save(ctx, snap, gen)
	}
	return snap
}

type cachedSnapshot struct {
	Bookings json.RawMessage `json:"bookings"`
	Guests   json.RawMessage `json:"guests"`
}

func (f *Feed) cached(ctx context.Context) (Snapshot, bool) {
	data, err := f.store.Get(ctx, snapshotKey)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			f.log.WarnContext(ctx, "read snapshot cache failed", "error", err)
		}
		return Snapshot{}, false
	}

	var c cachedSnapshot
	if err := json.Unmarshal(data, &c); err != nil {
		f.log.WarnContext(ctx, "decode cached snapshot failed", "error", err)
		return Snapshot{}, false
	}
	bookings, err := reconcile.DecodeRecords(c.Bookings)
	if err != nil {
		return Snapshot{}, false
	}
	guests, err := reconcile.DecodeRecords(c.Guests)
	if err != nil {
		return Snapshot{}, false
	}
	if bookings == nil {
		bookings = []domain.Record{}
	}
	if guests == nil {
		guests = []domain.Record{}
	}
	return Snapshot{
		Bookings: bookings,
		Guests:   guests,
		Registry: reconcile.NewRegistry(guests),
		Warnings: []string{},
	}, true
}

func (f *Feed) generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen
}

// save caches snap unless an Invalidate happened after the load that
// produced it began.
func (f *Feed) save(ctx context.Context, snap Snapshot, gen uint64) {
	if f.ttl <= 0 {
		return
	}
	bookings, err := json.Marshal(snap.Bookings)
	if err != nil {
		f.log.WarnContext(ctx, "encode snapshot failed", "error", err)
		return
	}
	guests, err := json.Marshal(snap.Guests)
	if err != nil {
		f.log.WarnContext(ctx, "encode snapshot failed", "error", err)
		return
	}
	data, err := json.Marshal(cachedSnapshot{Bookings: bookings, Guests: guests})
	if err != nil {
		f.log.WarnContext(ctx, "encode snapshot failed", "error", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen {
		f.log.DebugContext(ctx, "snapshot invalidated during load, not cached")
		return
	}
	if err := f.store.Set(ctx, snapshotKey, data, f.ttl); err != nil {
		f.log.WarnContext(ctx, "write snapshot cache failed", "error", err)
	}
}

func (f *Feed) countLoad(source string) {
	if f.metrics != nil {
		f.metrics.SnapshotLoads.WithLabelValues(source).Inc()
	}
}
