package services

import (
	"context"

	"altura-admin/internal/domain"
	"altura-admin/internal/domain/models"
	"altura-admin/internal/notify"
)

// BookingBoard is the state behind one render of the bookings page: the last
// fetched collection, the active filter and the notifications raised while
// building it.
type BookingBoard struct {
	Service BookingService
	Session domain.Session
	Filter  ReportFilter

	Bookings      []models.Booking
	Loaded        bool
	Notifications []notify.Notification
}

func NewBookingBoard(svc BookingService, sess domain.Session, f ReportFilter) *BookingBoard {
	return &BookingBoard{Service: svc, Session: sess, Filter: f, Bookings: []models.Booking{}}
}

func (b *BookingBoard) push(n notify.Notification) {
	b.Notifications = append(b.Notifications, n)
}

// Refresh replaces the collection with a fresh fetch. On failure the previous
// collection stays and one error notification is raised.
func (b *BookingBoard) Refresh(ctx context.Context) error {
	list, err := b.Service.List(ctx, b.Session)
	if err != nil {
		b.push(notify.Error(FetchErrorMessage(err)))
		return err
	}
	b.Bookings = list
	b.Loaded = true
	return nil
}

// ChangeStatus moves booking id to status and refetches. A failed update
// leaves the collection as it was.
func (b *BookingBoard) ChangeStatus(ctx context.Context, id int64, status string) error {
	if err := b.Service.UpdateStatus(ctx, b.Session, id, status); err != nil {
		b.push(notify.Error(StatusErrorMessage(err, status)))
		return err
	}
	b.push(notify.Success(StatusSuccessMessage(status)))
	return b.Refresh(ctx)
}

// Report runs the aggregator over the current collection.
func (b *BookingBoard) Report() Report {
	return ReportsService{}.Build(b.Bookings, b.Filter)
}
