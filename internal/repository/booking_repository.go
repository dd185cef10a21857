package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borrowhub/service-rental/internal/apperr"
	bookingDomain "github.com/borrowhub/service-rental/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartAt  time.Time `gorm:"not null;index"`
	EndAt    time.Time `gorm:"not null"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BookerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status   string    `gorm:"not null;size:20;index"`

	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Item   ItemModel `gorm:"foreignKey:ItemID"`
	Booker UserModel `gorm:"foreignKey:BookerID"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Create persists a new booking. The interval conflict check runs again inside
// the insert transaction: the service-level check reads a snapshot that may be
// stale by the time we write, and two concurrent bookers must not both pass.
func (r *GormBookingRepository) Create(ctx context.Context, bk *bookingDomain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var models []BookingModel
		if err := tx.
			Where("item_id = ? AND status = ?", bk.Item().ID, string(bookingDomain.StatusApproved)).
			Find(&models).Error; err != nil {
			return fmt.Errorf("failed to load approved bookings: %w", err)
		}

		existing := make([]*bookingDomain.Booking, len(models))
		for i, m := range models {
			existing[i] = toDomainBookingBare(&m, bk.Item(), bookingDomain.UserRef{ID: m.BookerID})
		}
		if bookingDomain.HasConflict(existing, bk.Start(), bk.End()) {
			return apperr.Unavailablef("item is already booked for the requested dates")
		}

		if err := tx.Create(toBookingModel(bk)).Error; err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}
		return nil
	})
}

// Update persists a status decision with optimistic locking: the row is only
// touched if the stored version matches the version the decision was made
// against.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", bk.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"status":     string(bk.Status()),
			"version":    bk.Version(),
			"updated_at": bk.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.Unavailablef("booking is already approved or rejected")
	}
	return nil
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item").Preload("Booker").
		Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindApprovedByItem retrieves all APPROVED bookings of an item.
func (r *GormBookingRepository) FindApprovedByItem(ctx context.Context, itemID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item").Preload("Booker").
		Where("item_id = ? AND status = ?", itemID, string(bookingDomain.StatusApproved)).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find approved bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindByBooker lists bookings requested by a user, start descending.
func (r *GormBookingRepository) FindByBooker(
	ctx context.Context,
	bookerID uuid.UUID,
	state bookingDomain.State,
	now time.Time,
	page bookingDomain.Page,
) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).
		Preload("Item").Preload("Booker").
		Where("booker_id = ?", bookerID)

	var models []BookingModel
	if err := applyState(q, state, now).
		Order("bookings.start_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find booker bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindByItemOwner lists bookings on a user's items, start descending.
func (r *GormBookingRepository) FindByItemOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	state bookingDomain.State,
	now time.Time,
	page bookingDomain.Page,
) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).
		Preload("Item").Preload("Booker").
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)

	var models []BookingModel
	if err := applyState(q, state, now).
		Order("bookings.start_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindNextByItem returns the APPROVED booking with the earliest start strictly
// after now, or nil.
func (r *GormBookingRepository) FindNextByItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Preload("Item").Preload("Booker").
		Where("item_id = ? AND status = ? AND start_at > ?", itemID, string(bookingDomain.StatusApproved), now).
		Order("start_at ASC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find next booking: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindLastByItem returns the booking with the latest start strictly before
// now, any status, ties broken by latest end, or nil.
func (r *GormBookingRepository) FindLastByItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Preload("Item").Preload("Booker").
		Where("item_id = ? AND start_at < ?", itemID, now).
		Order("start_at DESC, end_at DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last booking: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindPastApprovedByItemAndBooker retrieves APPROVED bookings of an item by a
// booker that ended before now.
func (r *GormBookingRepository) FindPastApprovedByItemAndBooker(
	ctx context.Context,
	itemID, bookerID uuid.UUID,
	now time.Time,
) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item").Preload("Booker").
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_at < ?",
			itemID, bookerID, string(bookingDomain.StatusApproved), now).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find past bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindByItems retrieves all bookings of the given items, any status.
func (r *GormBookingRepository) FindByItems(ctx context.Context, itemIDs []uuid.UUID) ([]*bookingDomain.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item").Preload("Booker").
		Where("item_id IN ?", itemIDs).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by items: %w", err)
	}
	return toDomainBookings(models), nil
}

// applyState narrows a booking query to one listing state. Column names are
// qualified because the owner listing joins the items table.
func applyState(q *gorm.DB, state bookingDomain.State, now time.Time) *gorm.DB {
	switch state {
	case bookingDomain.StateCurrent:
		return q.Where("bookings.start_at < ? AND bookings.end_at > ?", now, now)
	case bookingDomain.StatePast:
		return q.Where("bookings.end_at < ?", now)
	case bookingDomain.StateFuture:
		return q.Where("bookings.start_at > ?", now)
	case bookingDomain.StateWaiting:
		return q.Where("bookings.status = ?", string(bookingDomain.StatusWaiting))
	case bookingDomain.StateRejected:
		return q.Where("bookings.status = ?", string(bookingDomain.StatusRejected))
	default:
		return q
	}
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		StartAt:   bk.Start(),
		EndAt:     bk.End(),
		ItemID:    bk.Item().ID,
		BookerID:  bk.Booker().ID,
		Status:    string(bk.Status()),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	itemRef := bookingDomain.ItemRef{
		ID:      m.ItemID,
		Name:    m.Item.Name,
		OwnerID: m.Item.OwnerID,
	}
	bookerRef := bookingDomain.UserRef{
		ID:   m.BookerID,
		Name: m.Booker.Name,
	}
	return toDomainBookingBare(m, itemRef, bookerRef)
}

// toDomainBookingBare rebuilds a booking with caller-supplied refs, for rows
// loaded without preloaded associations.
func toDomainBookingBare(m *BookingModel, item bookingDomain.ItemRef, booker bookingDomain.UserRef) *bookingDomain.Booking {
	return bookingDomain.Reconstruct(
		m.ID,
		m.StartAt,
		m.EndAt,
		item,
		booker,
		bookingDomain.Status(m.Status),
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainBookings(models []BookingModel) []*bookingDomain.Booking {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = toDomainBooking(&models[i])
	}
	return bookings
}
