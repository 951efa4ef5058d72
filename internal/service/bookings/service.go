package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AdsBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AdsBookingService/internal/service/bookings/models"
)

// Service сервис чтения и модерации бронирований
type Service struct {
	bookingRepo  BookingRepository
	walletClient WalletServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	walletClient WalletServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		walletClient: walletClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Владелец видит только свои бронирования.
func (s *Service) GetByID(ctx context.Context, id int64, ownerID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for owner=%d", id, ownerID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.OwnerID != ownerID {
		s.logger.Warn("GetByID: access denied for owner=%d to booking id=%d", ownerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetOwnerBookings получает историю бронирований владельца.
// Опционально фильтрует по статусу модерации.
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOwnerBookings: fetching bookings for owner=%d, status=%v", req.OwnerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetOwnerBookings: invalid status=%s for owner=%d", *req.Status, req.OwnerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.ListByOwner(ctx, domain.OwnerBookingsFilter{
		OwnerID: req.OwnerID,
		Status:  domainStatus,
	})
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: fetched %d bookings for owner=%d", len(bookings), req.OwnerID)
	return models.FromDomainBookingList(bookings), nil
}

// Moderate переводит pending-бронирование в approved или rejected.
// Отклонение освобождает занятые даты и возвращает списанные средства
// (wallet.Reverse по ledger_ref); смена статуса и возврат выполняются в одной
// транзакции: либо оба эффекта, либо ни одного.
func (s *Service) Moderate(ctx context.Context, bookingID int64, req *models.ModerateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Moderate: booking id=%d, approve=%v", bookingID, req.Approve)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Moderate: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Moderate: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Moderate - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeModerated() {
		s.logger.Warn("Moderate: booking id=%d cannot be moderated, status=%s", bookingID, booking.Status)
		return nil, ErrCannotModerate
	}

	newStatus := domain.StatusApproved
	if !req.Approve {
		newStatus = domain.StatusRejected
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus, req.Reason); err != nil {
			// Проверка CanBeModerated выше шла вне транзакции: конкурентная
			// модерация могла успеть первой, повторный возврат средств не выполняем
			if errors.Is(err, bookingRepo.ErrAlreadyModerated) {
				s.logger.Warn("Moderate: booking id=%d lost moderation race", bookingID)
				return ErrCannotModerate
			}
			return fmt.Errorf("%w: Moderate - update status: %v", ErrInternal, err)
		}

		// Возврат средств идет последним шагом: его ошибка откатывает смену статуса
		if newStatus == domain.StatusRejected {
			if err := s.walletClient.Reverse(txCtx, booking.LedgerRef); err != nil {
				s.logger.Error("Moderate: failed to reverse debit for booking id=%d, ledger_ref=%s: %v",
					bookingID, booking.LedgerRef, err)
				return fmt.Errorf("%w: %v", ErrWalletUnavailable, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("Moderate: failed to reload booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Moderate - reload booking: %v", ErrInternal, err)
	}

	s.logger.Info("Moderate: booking id=%d moderated to %s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}
