package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	itemDomain "github.com/borrowhub/service-rental/internal/domain/item"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Text      string    `gorm:"not null;size:2000"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null"`

	Author UserModel `gorm:"foreignKey:AuthorID"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of item.CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save persists a new comment.
func (r *GormCommentRepository) Save(ctx context.Context, c *itemDomain.Comment) error {
	model := &CommentModel{
		ID:        c.ID(),
		Text:      c.Text(),
		ItemID:    c.ItemID(),
		AuthorID:  c.Author().ID,
		CreatedAt: c.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

// FindByItem retrieves all comments on an item, oldest first.
func (r *GormCommentRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	return toDomainComments(models), nil
}

// FindByItems retrieves all comments on any of the given items.
func (r *GormCommentRepository) FindByItems(ctx context.Context, itemIDs []uuid.UUID) ([]*itemDomain.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("item_id IN ?", itemIDs).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments by items: %w", err)
	}
	return toDomainComments(models), nil
}

func toDomainComments(models []CommentModel) []*itemDomain.Comment {
	comments := make([]*itemDomain.Comment, len(models))
	for i, m := range models {
		comments[i] = itemDomain.ReconstructComment(
			m.ID,
			m.Text,
			m.ItemID,
			itemDomain.AuthorRef{ID: m.AuthorID, Name: m.Author.Name},
			m.CreatedAt,
		)
	}
	return comments
}
