package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"altura-admin/internal/domain"
	"altura-admin/internal/domain/models"
	"altura-admin/internal/metrics"
)

const (
	pathBookingList   = "/api/admin/booking"
	pathBookingDetail = "/api/admin/bookings/%d"
	pathBookingStatus = "/api/admin/booking/%d/status"
)

// BookingRepository reads and mutates bookings through the booking API.
// Every call takes the caller's Session; nothing is read from ambient state.
type BookingRepository struct {
	BaseURL   string
	Client    *http.Client
	UserAgent string
}

func (r BookingRepository) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return http.DefaultClient
}

// List fetches every booking visible to the admin session.
func (r BookingRepository) List(ctx context.Context, sess domain.Session) (models.BookingList, error) {
	var env models.Envelope[models.BookingList]
	err := r.do(ctx, sess, "list", http.MethodGet, pathBookingList, nil, &env)
	metrics.BackendCalls.WithLabelValues("list", metrics.Outcome(err)).Inc()
	if err != nil {
		return models.BookingList{}, err
	}
	for i := range env.Data.Bookings {
		env.Data.Bookings[i].Status = domain.NormalizeStatus(env.Data.Bookings[i].Status)
	}
	if env.Data.Bookings == nil {
		env.Data.Bookings = []models.Booking{}
	}
	return env.Data, nil
}

// GetByID fetches one booking for the receipt view.
func (r BookingRepository) GetByID(ctx context.Context, sess domain.Session, id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "id booking tidak valid"}
	}
	var env models.Envelope[models.BookingDetail]
	err := r.do(ctx, sess, "get", http.MethodGet, fmt.Sprintf(pathBookingDetail, id), nil, &env)
	metrics.BackendCalls.WithLabelValues("get", metrics.Outcome(err)).Inc()
	if err != nil {
		if up, ok := domain.AsUpstream(err); ok && up.Status == http.StatusNotFound {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	if env.Data.Booking == nil {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	b := *env.Data.Booking
	b.Status = domain.NormalizeStatus(b.Status)
	return b, nil
}

// UpdateStatus asks the API to move booking id to status (Confirmed or Cancelled).
func (r BookingRepository) UpdateStatus(ctx context.Context, sess domain.Session, id int64, status string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id booking tidak valid"}
	}
	if !domain.IsAdminSettable(status) {
		return domain.ValidationError{Field: "status", Msg: "status harus Confirmed atau Cancelled"}
	}
	q := url.Values{}
	q.Set("status", status)
	err := r.do(ctx, sess, "update_status", http.MethodPut, fmt.Sprintf(pathBookingStatus, id), q, nil)
	metrics.BackendCalls.WithLabelValues("update_status", metrics.Outcome(err)).Inc()
	return err
}

func (r BookingRepository) do(ctx context.Context, sess domain.Session, op, method, path string, query url.Values, out any) error {
	if err := sess.Require(); err != nil {
		return err
	}

	endpoint := strings.TrimRight(r.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return domain.InternalError{Msg: "gagal membuat request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	req.Header.Set("Accept", "application/json")
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	resp, err := r.client().Do(req)
	if err != nil {
		return domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return domain.UpstreamError{Op: op, Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.UpstreamError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// ParseBookingID parses a positive booking id from a path segment.
func ParseBookingID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError{Field: "id", Msg: "id booking tidak valid", Err: err}
	}
	return id, nil
}
