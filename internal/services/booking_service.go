package services

import (
	"context"
	"fmt"
	"time"

	"altura-admin/internal/domain"
	"altura-admin/internal/domain/models"
	"altura-admin/internal/repositories"
	"altura-admin/internal/utils"
)

// BookingAPI is the part of the booking API the console uses.
type BookingAPI interface {
	List(ctx context.Context, sess domain.Session) (models.BookingList, error)
	GetByID(ctx context.Context, sess domain.Session, id int64) (models.Booking, error)
	UpdateStatus(ctx context.Context, sess domain.Session, id int64, status string) error
}

var _ BookingAPI = repositories.BookingRepository{}

type BookingService struct {
	API       BookingAPI
	Timeout   time.Duration
	RequestID string
}

func (s BookingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout > 0 {
		return context.WithTimeout(ctx, s.Timeout)
	}
	return context.WithCancel(ctx)
}

func (s BookingService) List(ctx context.Context, sess domain.Session) ([]models.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	list, err := s.API.List(ctx, sess)
	if err != nil {
		utils.LogError(s.RequestID, "booking", "list", err)
		return nil, err
	}
	utils.LogEvent(s.RequestID, "booking", "list", fmt.Sprintf("count=%d", len(list.Bookings)))
	return list.Bookings, nil
}

func (s BookingService) Get(ctx context.Context, sess domain.Session, id int64) (models.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	b, err := s.API.GetByID(ctx, sess, id)
	if err != nil {
		utils.LogError(s.RequestID, "booking", "get", err)
		return models.Booking{}, err
	}
	return b, nil
}

func (s BookingService) UpdateStatus(ctx context.Context, sess domain.Session, id int64, status string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.API.UpdateStatus(ctx, sess, id, status); err != nil {
		utils.LogError(s.RequestID, "booking", "update_status", err)
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "update_status", fmt.Sprintf("id=%d status=%s", id, status))
	return nil
}

// FetchErrorMessage is the notification text for a failed read.
func FetchErrorMessage(err error) string {
	if domain.IsUnauthenticated(err) {
		return MsgMissingToken
	}
	return MsgFetchFailed
}

// StatusErrorMessage is the notification text for a failed status change.
func StatusErrorMessage(err error, status string) string {
	if domain.IsUnauthenticated(err) {
		return MsgMissingToken
	}
	return fmt.Sprintf(msgStatusFailed, status)
}

func StatusSuccessMessage(status string) string {
	return fmt.Sprintf(msgStatusOK, status)
}

const (
	MsgMissingToken = "Token tidak ditemukan"
	MsgFetchFailed  = "Gagal mengambil data booking"
	MsgNothingToExp = "Tidak ada data untuk diekspor"
	msgStatusFailed = "Gagal mengubah status booking menjadi %s"
	msgStatusOK     = "Status booking berhasil diubah menjadi %s"
)
