// Package upstream is the REST client for the hotel backend: bookings, the
// guest registry, rooms, admins and roles.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/metrics"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 4 << 10

// envelopeKeys are the wrapper objects the hotel backend puts lists in.
var envelopeKeys = []string{"data", "guests", "payload"}

// Client talks to the hotel backend. The bearer token of the session stored
// in the request context is forwarded on every call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// NewClient creates a client for baseURL (e.g. "https://hotel.example/api").
// m may be nil.
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
	}
}

// ListBookings fetches every booking.
func (c *Client) ListBookings(ctx context.Context) ([]domain.Record, error) {
	return c.list(ctx, "list_bookings", "/bookings")
}

// ListGuests fetches the whole guest registry.
func (c *Client) ListGuests(ctx context.Context) ([]domain.Record, error) {
	return c.list(ctx, "list_guests", "/guests/all")
}

// ListBookingGuests fetches the registry entries of one booking.
func (c *Client) ListBookingGuests(ctx context.Context, bookingID int64) ([]domain.Record, error) {
	return c.list(ctx, "list_booking_guests", "/bookings/"+strconv.FormatInt(bookingID, 10)+"/guests")
}

// ListRooms fetches the room inventory.
func (c *Client) ListRooms(ctx context.Context) ([]domain.Record, error) {
	return c.list(ctx, "list_rooms", "/rooms")
}

// ListAdmins fetches every admin account.
func (c *Client) ListAdmins(ctx context.Context) ([]domain.Record, error) {
	return c.list(ctx, "list_admins", "/admins")
}

// ListRoles fetches every role with its members and permission matrix.
func (c *Client) ListRoles(ctx context.Context) ([]domain.Record, error) {
	return c.list(ctx, "list_roles", "/roles")
}

// DeleteBooking deletes one booking. A booking the backend does not know
// yields an error wrapping domain.ErrNotFound.
func (c *Client) DeleteBooking(ctx context.Context, bookingID int64) error {
	const op = "delete_booking"
	resp, err := c.do(ctx, op, http.MethodDelete, "/bookings/"+strconv.FormatInt(bookingID, 10))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) list(ctx context.Context, op, path string) ([]domain.Record, error) {
	resp, err := c.do(ctx, op, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("upstream.Client.%s: read body: %v: %w", op, err, domain.ErrUpstream)
	}
	out, err := DecodeList(body)
	if err != nil {
		return nil, fmt.Errorf("upstream.Client.%s: %w", op, err)
	}
	return out, nil
}

// do performs one request and turns transport failures and non-2xx answers
// into errors. On success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, op, method, path string) (*http.Response, error) {
	start := time.Now()
	outcome := "error"
	defer func() {
		if c.metrics == nil {
			return
		}
		c.metrics.UpstreamCalls.WithLabelValues(op, outcome).Inc()
		c.metrics.UpstreamLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("upstream.Client.%s: build request: %v: %w", op, err, domain.ErrUpstream)
	}
	req.Header.Set("Accept", "application/json")
	if tok := domain.SessionFromContext(ctx).Token; tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			outcome = "canceled"
			return nil, fmt.Errorf("upstream.Client.%s: %w", op, ctxErr)
		}
		return nil, fmt.Errorf("upstream.Client.%s: %v: %w", op, err, domain.ErrUpstream)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		outcome = strconv.Itoa(resp.StatusCode)
		return nil, &StatusError{Op: op, Status: resp.StatusCode, Message: errorMessage(body)}
	}

	outcome = "ok"
	return resp, nil
}

// errorMessage pulls {"message": "..."} out of an error body, falling back
// to the raw text.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// DecodeList decodes a list response. The list may be the top-level value
// or sit under one of the known envelope keys; any other shape, including an
// empty body, is an empty list. Numbers are kept as json.Number.
func DecodeList(body []byte) ([]domain.Record, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return []domain.Record{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode list: %v: %w", err, domain.ErrUpstream)
	}
	return unwrapList(v), nil
}

func unwrapList(v any) []domain.Record {
	items, ok := v.([]any)
	if !ok {
		obj, isObj := v.(map[string]any)
		if !isObj {
			return []domain.Record{}
		}
		for _, k := range envelopeKeys {
			if inner, ok := obj[k].([]any); ok {
				items = inner
				break
			}
		}
	}
	out := make([]domain.Record, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, domain.Record(m))
		}
	}
	return out
}
