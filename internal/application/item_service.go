package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/borrowhub/service-rental/internal/apperr"
	bookingDomain "github.com/borrowhub/service-rental/internal/domain/booking"
	itemDomain "github.com/borrowhub/service-rental/internal/domain/item"
)

// CreateItemRequest holds the data needed to list an item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"request_id"`
}

// UpdateItemRequest is a partial item update; nil fields are left unchanged.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest holds the comment body.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentDTO is the response representation of a comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

// ItemDTO is the response representation of an item. NextBooking and
// LastBooking are populated only when the viewer owns the item.
type ItemDTO struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	RequestID   *uuid.UUID       `json:"request_id,omitempty"`
	NextBooking *BookingShortDTO `json:"next_booking,omitempty"`
	LastBooking *BookingShortDTO `json:"last_booking,omitempty"`
	Comments    []CommentDTO     `json:"comments"`
}

// ItemService implements the item use cases: listing, partial updates, search,
// the owner-only next/last booking projection and rental-gated comments.
type ItemService struct {
	resolver *Resolver
	items    itemDomain.Repository
	comments itemDomain.CommentRepository
	bookings bookingDomain.Repository
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	resolver *Resolver,
	items itemDomain.Repository,
	comments itemDomain.CommentRepository,
	bookings bookingDomain.Repository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		resolver: resolver,
		items:    items,
		comments: comments,
		bookings: bookings,
		logger:   logger,
	}
}

// Create lists a new item for the owner, optionally answering an item request.
func (s *ItemService) Create(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if _, err := s.resolver.User(ctx, ownerID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if _, err := s.resolver.Request(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	available := req.Available != nil && *req.Available
	itm, err := itemDomain.NewItem(ownerID, req.Name, req.Description, available, req.RequestID)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, itm); err != nil {
		return nil, err
	}

	dto := toItemDTO(itm)
	dto.Comments = []CommentDTO{}
	return &dto, nil
}

// Update applies a partial update. Only the owner may update an item.
func (s *ItemService) Update(ctx context.Context, actorID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	itm, err := s.resolver.Item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !itm.IsOwnedBy(actorID) {
		return nil, apperr.AccessDeniedf("user does not own this item")
	}

	if err := itm.Patch(req.Name, req.Description, req.Available); err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, itm); err != nil {
		return nil, err
	}

	dto := toItemDTO(itm)
	dto.Comments = []CommentDTO{}
	return &dto, nil
}

// Get retrieves one item with its comments. The owner additionally sees the
// next and last booking summaries; other viewers never do.
func (s *ItemService) Get(ctx context.Context, viewerID, itemID uuid.UUID) (*ItemDTO, error) {
	itm, err := s.resolver.Item(ctx, itemID)
	if err != nil {
		return nil, err
	}

	dto := toItemDTO(itm)

	comments, err := s.comments.FindByItem(ctx, itm.ID())
	if err != nil {
		return nil, err
	}
	dto.Comments = toCommentDTOs(comments)

	if itm.IsOwnedBy(viewerID) {
		now := time.Now().UTC()
		next, err := s.bookings.FindNextByItem(ctx, itm.ID(), now)
		if err != nil {
			return nil, err
		}
		last, err := s.bookings.FindLastByItem(ctx, itm.ID(), now)
		if err != nil {
			return nil, err
		}
		dto.NextBooking = toBookingShortDTO(next)
		dto.LastBooking = toBookingShortDTO(last)
	}

	return &dto, nil
}

// ListByOwner lists the user's items with comments and next/last booking
// summaries. Bookings and comments are loaded in one batch per listing rather
// than per item.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page itemDomain.Page) ([]ItemDTO, error) {
	if _, err := s.resolver.User(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.FindByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, itm := range items {
		itemIDs[i] = itm.ID()
	}

	bookings, err := s.bookings.FindByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	bookingsByItem := make(map[uuid.UUID][]*bookingDomain.Booking)
	for _, bk := range bookings {
		bookingsByItem[bk.Item().ID] = append(bookingsByItem[bk.Item().ID], bk)
	}

	comments, err := s.comments.FindByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[uuid.UUID][]*itemDomain.Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID()] = append(commentsByItem[c.ItemID()], c)
	}

	now := time.Now().UTC()
	dtos := make([]ItemDTO, len(items))
	for i, itm := range items {
		dto := toItemDTO(itm)
		dto.Comments = toCommentDTOs(commentsByItem[itm.ID()])
		next, last := projectBookings(bookingsByItem[itm.ID()], now)
		dto.NextBooking = toBookingShortDTO(next)
		dto.LastBooking = toBookingShortDTO(last)
		dtos[i] = dto
	}
	return dtos, nil
}

// Search lists available items matching the text. Empty text returns an empty
// list without touching the store.
func (s *ItemService) Search(ctx context.Context, text string, page itemDomain.Page) ([]ItemDTO, error) {
	if text == "" {
		return []ItemDTO{}, nil
	}
	items, err := s.items.Search(ctx, text, page)
	if err != nil {
		return nil, err
	}
	dtos := make([]ItemDTO, len(items))
	for i, itm := range items {
		dto := toItemDTO(itm)
		dto.Comments = []CommentDTO{}
		dtos[i] = dto
	}
	return dtos, nil
}

// Delete removes an item by id.
func (s *ItemService) Delete(ctx context.Context, itemID uuid.UUID) error {
	return s.items.Delete(ctx, itemID)
}

// CreateComment adds a comment to an item. Only a user with an APPROVED
// booking of the item that ended before now may comment.
func (s *ItemService) CreateComment(ctx context.Context, authorID, itemID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	author, err := s.resolver.User(ctx, authorID)
	if err != nil {
		return nil, err
	}
	itm, err := s.resolver.Item(ctx, itemID)
	if err != nil {
		return nil, err
	}

	past, err := s.bookings.FindPastApprovedByItemAndBooker(ctx, itm.ID(), author.ID(), time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to load past bookings: %w", err)
	}
	if len(past) == 0 {
		return nil, apperr.Incorrectf("only users who have rented the item can comment on it")
	}

	comment, err := itemDomain.NewComment(
		itm.ID(),
		itemDomain.AuthorRef{ID: author.ID(), Name: author.Name()},
		req.Text,
	)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}

	dto := toCommentDTO(comment)
	return &dto, nil
}

// --- Helpers ---

// projectBookings derives the next and last booking of one item from its full
// booking list. Next is the earliest APPROVED start strictly after now. Last is
// the latest start strictly before now regardless of status, ties broken by
// the latest end; the same rule the single-item queries use.
func projectBookings(bookings []*bookingDomain.Booking, now time.Time) (next, last *bookingDomain.Booking) {
	for _, bk := range bookings {
		if bk.Status() == bookingDomain.StatusApproved && bk.Start().After(now) {
			if next == nil || bk.Start().Before(next.Start()) {
				next = bk
			}
		}
		if bk.Start().Before(now) {
			if last == nil ||
				bk.Start().After(last.Start()) ||
				(bk.Start().Equal(last.Start()) && bk.End().After(last.End())) {
				last = bk
			}
		}
	}
	return next, last
}

func toItemDTO(itm *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          itm.ID(),
		Name:        itm.Name(),
		Description: itm.Description(),
		Available:   itm.Available(),
		RequestID:   itm.RequestID(),
	}
}

func toCommentDTO(c *itemDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.Author().Name,
		Created:    c.CreatedAt(),
	}
}

func toCommentDTOs(comments []*itemDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos
}
