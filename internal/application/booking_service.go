package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/borrowhub/service-rental/internal/apperr"
	bookingDomain "github.com/borrowhub/service-rental/internal/domain/booking"
	"github.com/borrowhub/service-rental/internal/events"
	"github.com/borrowhub/service-rental/internal/metrics"
)

// CreateBookingRequest holds the data needed to request a booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// ItemShortDTO is the item summary embedded in booking responses.
type ItemShortDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserShortDTO is the user summary embedded in booking responses.
type UserShortDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID        uuid.UUID    `json:"id"`
	Start     time.Time    `json:"start"`
	End       time.Time    `json:"end"`
	Status    string       `json:"status"`
	Item      ItemShortDTO `json:"item"`
	Booker    UserShortDTO `json:"booker"`
	CreatedAt time.Time    `json:"created_at"`
}

// BookingShortDTO is the compact booking summary shown on owned items.
type BookingShortDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// BookingService orchestrates the booking use cases: creation with conflict
// checking, the owner's approve/reject decision, visibility-scoped retrieval
// and state-filtered listings.
type BookingService struct {
	resolver *Resolver
	repo     bookingDomain.Repository
	producer events.Producer
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	resolver *Resolver,
	repo bookingDomain.Repository,
	producer events.Producer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		resolver: resolver,
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// Create books an item for the requester. The requester must not own the item,
// the item must be available, and the interval must not collide with any
// APPROVED booking of the item. The new booking starts in WAITING status.
func (s *BookingService) Create(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	booker, err := s.resolver.User(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	itm, err := s.resolver.Item(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if !itm.Available() {
		return nil, apperr.Unavailablef("item is not available for booking")
	}
	// The owner is told the item does not exist rather than that the action is
	// forbidden, matching the visibility contract of getBooking.
	if itm.IsOwnedBy(bookerID) {
		return nil, apperr.NotFoundf("owner cannot book their own item")
	}

	bk, err := bookingDomain.NewBooking(
		bookingDomain.ItemRef{ID: itm.ID(), Name: itm.Name(), OwnerID: itm.OwnerID()},
		bookingDomain.UserRef{ID: booker.ID(), Name: booker.Name()},
		req.Start,
		req.End,
	)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindApprovedByItem(ctx, itm.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load approved bookings: %w", err)
	}
	if bookingDomain.HasConflict(existing, bk.Start(), bk.End()) {
		metrics.BookingConflict()
		return nil, apperr.Unavailablef("item is already booked for the requested dates")
	}

	// Create re-runs the conflict check inside its transaction; a concurrent
	// booker that raced past the check above still fails here.
	if err := s.repo.Create(ctx, bk); err != nil {
		if apperr.IsUnavailable(err) {
			metrics.BookingConflict()
		}
		return nil, err
	}

	metrics.BookingCreated()
	s.publishBookingEvent(ctx, events.BookingRequested, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// UpdateStatus applies the item owner's approve/reject decision to a WAITING
// booking. Non-owners are denied; finalized bookings cannot be decided again.
func (s *BookingService) UpdateStatus(ctx context.Context, actorID, bookingID uuid.UUID, approve bool) (*BookingDTO, error) {
	bk, err := s.resolver.Booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolver.User(ctx, actorID); err != nil {
		return nil, err
	}

	if err := bk.Decide(actorID, approve); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	eventType := events.BookingRejected
	if approve {
		eventType = events.BookingApproved
	}
	s.publishBookingEvent(ctx, eventType, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// Get retrieves a single booking. Only the booker and the item owner may see
// it; anyone else gets NotFound, so the booking's existence is not leaked.
func (s *BookingService) Get(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.resolver.Booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolver.User(ctx, actorID); err != nil {
		return nil, err
	}

	if !bk.VisibleTo(actorID) {
		return nil, apperr.NotFoundf("no bookings found for this user")
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// ListByBooker lists bookings requested by the user, newest start first,
// narrowed by the given state.
func (s *BookingService) ListByBooker(ctx context.Context, bookerID uuid.UUID, rawState string, page bookingDomain.Page) ([]BookingDTO, error) {
	if _, err := s.resolver.User(ctx, bookerID); err != nil {
		return nil, err
	}
	state, err := bookingDomain.ParseState(rawState)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByBooker(ctx, bookerID, state, time.Now().UTC(), page)
	if err != nil {
		return nil, fmt.Errorf("failed to list booker bookings: %w", err)
	}
	return toBookingDTOs(bookings), nil
}

// ListByOwner lists bookings on the user's items, newest start first, narrowed
// by the given state.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID uuid.UUID, rawState string, page bookingDomain.Page) ([]BookingDTO, error) {
	if _, err := s.resolver.User(ctx, ownerID); err != nil {
		return nil, err
	}
	state, err := bookingDomain.ParseState(rawState)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByItemOwner(ctx, ownerID, state, time.Now().UTC(), page)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner bookings: %w", err)
	}
	return toBookingDTOs(bookings), nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:        bk.ID(),
		Start:     bk.Start(),
		End:       bk.End(),
		Status:    string(bk.Status()),
		Item:      ItemShortDTO{ID: bk.Item().ID, Name: bk.Item().Name},
		Booker:    UserShortDTO{ID: bk.Booker().ID, Name: bk.Booker().Name},
		CreatedAt: bk.CreatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func toBookingShortDTO(bk *bookingDomain.Booking) *BookingShortDTO {
	if bk == nil {
		return nil
	}
	return &BookingShortDTO{
		ID:       bk.ID(),
		BookerID: bk.Booker().ID,
		Start:    bk.Start(),
		End:      bk.End(),
	}
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking) {
	evt := events.BookingEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.Item().ID,
		OwnerID:    bk.Item().OwnerID,
		BookerID:   bk.Booker().ID,
		Start:      bk.Start(),
		End:        bk.End(),
		Status:     string(bk.Status()),
		OccurredAt: time.Now().UTC(),
	}
	envelope, err := events.NewEnvelope("service-rental", eventType, evt)
	if err != nil {
		s.logger.Error("failed to create event envelope",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.Publish(ctx, events.TopicBookingEvents, bk.ID().String(), envelope); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("booking_id", bk.ID().String()),
			zap.Error(err),
		)
	}
}
