package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borrowhub/service-rental/internal/apperr"
	itemDomain "github.com/borrowhub/service-rental/internal/domain/item"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"not null;size:100"`
	Description string     `gorm:"not null;size:1000"`
	Available   bool       `gorm:"not null"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// GormItemRepository is the GORM-based implementation of item.Repository.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Save persists a new item.
func (r *GormItemRepository) Save(ctx context.Context, i *itemDomain.Item) error {
	if err := r.db.WithContext(ctx).Create(toItemModel(i)).Error; err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}

// Update persists changes to an existing item.
func (r *GormItemRepository) Update(ctx context.Context, i *itemDomain.Item) error {
	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ?", i.ID()).
		Updates(map[string]interface{}{
			"name":        i.Name(),
			"description": i.Description(),
			"available":   i.Available(),
			"updated_at":  i.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFoundError("item", i.ID().String())
	}
	return nil
}

// FindByID retrieves an item by its unique identifier.
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("item", id.String())
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return toDomainItem(&model), nil
}

// FindByOwner lists a user's items in creation order, paginated.
func (r *GormItemRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, page itemDomain.Page) ([]*itemDomain.Item, error) {
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner items: %w", err)
	}
	return toDomainItems(models), nil
}

// Search lists available items matching the text in name or description,
// case-insensitively. Empty text matches nothing.
func (r *GormItemRepository) Search(ctx context.Context, text string, page itemDomain.Page) ([]*itemDomain.Item, error) {
	if text == "" {
		return nil, nil
	}
	pattern := "%" + strings.ToLower(text) + "%"
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("available = ? AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", true, pattern, pattern).
		Order("created_at ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return toDomainItems(models), nil
}

// FindByRequests retrieves items answering any of the given requests.
func (r *GormItemRepository) FindByRequests(ctx context.Context, requestIDs []uuid.UUID) ([]*itemDomain.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("request_id IN ?", requestIDs).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by requests: %w", err)
	}
	return toDomainItems(models), nil
}

// Delete removes an item by id.
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&ItemModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toItemModel(i *itemDomain.Item) *ItemModel {
	return &ItemModel{
		ID:          i.ID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
		OwnerID:     i.OwnerID(),
		RequestID:   i.RequestID(),
		CreatedAt:   i.CreatedAt(),
		UpdatedAt:   i.UpdatedAt(),
	}
}

func toDomainItem(m *ItemModel) *itemDomain.Item {
	return itemDomain.Reconstruct(
		m.ID,
		m.Name,
		m.Description,
		m.Available,
		m.OwnerID,
		m.RequestID,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainItems(models []ItemModel) []*itemDomain.Item {
	items := make([]*itemDomain.Item, len(models))
	for i := range models {
		items[i] = toDomainItem(&models[i])
	}
	return items
}
