package repositories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"altura-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRepositoryList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/admin/booking", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"status":"success","data":{"totalRevenue":900,"bookings":[
			{"id":1,"fullname":"A","destination":"Bali","booking_date":"2024-01-05T10:00:00Z","total_price":500,"status":"confirmed","upload_bukti":"https://x/a.jpg"},
			{"id":2,"fullname":"B","destination":"Bali","booking_date":"2024-01-06","total_price":400,"status":"Pending","upload_bukti":["https://x/b.jpeg", 5, " "]}
		]}}`))
	}))
	defer ts.Close()

	repo := BookingRepository{BaseURL: ts.URL + "/", Client: ts.Client()}
	list, err := repo.List(context.Background(), domain.Session{Token: "tok"})
	require.NoError(t, err)
	require.Len(t, list.Bookings, 2)
	require.NotNil(t, list.TotalRevenue)
	assert.Equal(t, int64(900), *list.TotalRevenue)

	assert.Equal(t, domain.StatusConfirmed, list.Bookings[0].Status)
	assert.Equal(t, domain.StatusPending, list.Bookings[1].Status)
	assert.Equal(t, []string{"https://x/a.jpg"}, []string(list.Bookings[0].Attachments))
	assert.Equal(t, []string{"https://x/b.jpeg"}, []string(list.Bookings[1].Attachments))
	assert.Equal(t, "2024-01-06", list.Bookings[1].BookingDate.String())
}

func TestBookingRepositoryMissingToken(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer ts.Close()

	_, err := BookingRepository{BaseURL: ts.URL}.List(context.Background(), domain.Session{})
	assert.True(t, domain.IsUnauthenticated(err))
	assert.False(t, called)
}

func TestBookingRepositoryUpstreamStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := BookingRepository{BaseURL: ts.URL}.List(context.Background(), domain.Session{Token: "tok"})
	up, ok := domain.AsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, up.Status)
}

func TestBookingRepositoryGetByID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/bookings/5":
			_, _ = w.Write([]byte(`{"status":"success","data":{"booking":{"id":5,"fullname":"C","status":"CANCELLED","harga_asli":100}}}`))
		case "/api/admin/bookings/6":
			_, _ = w.Write([]byte(`{"status":"success","data":{"booking":null}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	repo := BookingRepository{BaseURL: ts.URL}
	sess := domain.Session{Token: "tok"}

	b, err := repo.GetByID(context.Background(), sess, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, b.Status)
	assert.Nil(t, b.Attachments)

	_, err = repo.GetByID(context.Background(), sess, 6)
	assert.True(t, domain.IsNotFound(err))
	_, err = repo.GetByID(context.Background(), sess, 7)
	assert.True(t, domain.IsNotFound(err))
	_, err = repo.GetByID(context.Background(), sess, 0)
	assert.True(t, domain.IsValidation(err))
}

func TestBookingRepositoryUpdateStatus(t *testing.T) {
	var method, path, status, ctype string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		status = r.URL.Query().Get("status")
		ctype = r.Header.Get("Content-Type")
	}))
	defer ts.Close()

	repo := BookingRepository{BaseURL: ts.URL}
	sess := domain.Session{Token: "tok"}
	require.NoError(t, repo.UpdateStatus(context.Background(), sess, 3, domain.StatusConfirmed))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/api/admin/booking/3/status", path)
	assert.Equal(t, "Confirmed", status)
	assert.Equal(t, "application/json", ctype)

	err := repo.UpdateStatus(context.Background(), sess, 3, "pending")
	assert.True(t, domain.IsValidation(err))
}

func TestParseBookingID(t *testing.T) {
	id, err := ParseBookingID(" #12 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = ParseBookingID("abc")
	assert.True(t, domain.IsValidation(err))
	_, err = ParseBookingID("-1")
	assert.True(t, domain.IsValidation(err))
}
