package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borrowhub/service-rental/internal/apperr"
	requestDomain "github.com/borrowhub/service-rental/internal/domain/request"
)

// RequestModel is the GORM model for the item_requests table.
type RequestModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Description string    `gorm:"not null;size:1000"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RequestModel) TableName() string {
	return "item_requests"
}

// GormRequestRepository is the GORM-based implementation of request.Repository.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Save persists a new item request.
func (r *GormRequestRepository) Save(ctx context.Context, req *requestDomain.Request) error {
	model := &RequestModel{
		ID:          req.ID(),
		Description: req.Description(),
		RequesterID: req.RequesterID(),
		CreatedAt:   req.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	return nil
}

// FindByID retrieves a request by its unique identifier.
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*requestDomain.Request, error) {
	var model RequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("request", id.String())
		}
		return nil, fmt.Errorf("failed to find request by ID: %w", err)
	}
	return toDomainRequest(&model), nil
}

// FindByRequester lists a user's own requests, newest first.
func (r *GormRequestRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID, page requestDomain.Page) ([]*requestDomain.Request, error) {
	var models []RequestModel
	if err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find requester requests: %w", err)
	}
	return toDomainRequests(models), nil
}

// FindByOtherRequesters lists everyone else's requests, newest first.
func (r *GormRequestRepository) FindByOtherRequesters(ctx context.Context, requesterID uuid.UUID, page requestDomain.Page) ([]*requestDomain.Request, error) {
	var models []RequestModel
	if err := r.db.WithContext(ctx).
		Where("requester_id <> ?", requesterID).
		Order("created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find other requests: %w", err)
	}
	return toDomainRequests(models), nil
}

// --- Conversion Helpers ---

func toDomainRequest(m *RequestModel) *requestDomain.Request {
	return requestDomain.Reconstruct(m.ID, m.Description, m.RequesterID, m.CreatedAt)
}

func toDomainRequests(models []RequestModel) []*requestDomain.Request {
	requests := make([]*requestDomain.Request, len(models))
	for i := range models {
		requests[i] = toDomainRequest(&models[i])
	}
	return requests
}
