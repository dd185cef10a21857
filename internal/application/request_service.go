package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	itemDomain "github.com/borrowhub/service-rental/internal/domain/item"
	requestDomain "github.com/borrowhub/service-rental/internal/domain/request"
)

// CreateRequestRequest holds the data needed to post an item request.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestItemDTO is a short item summary attached to a request response.
type RequestItemDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Available bool      `json:"available"`
}

// RequestDTO is the response representation of an item request, including the
// items listed in answer to it.
type RequestDTO struct {
	ID          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	RequesterID uuid.UUID        `json:"requester_id"`
	Created     time.Time        `json:"created"`
	Items       []RequestItemDTO `json:"items"`
}

// RequestService implements the item request use cases.
type RequestService struct {
	resolver *Resolver
	requests requestDomain.Repository
	items    itemDomain.Repository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	resolver *Resolver,
	requests requestDomain.Repository,
	items itemDomain.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		resolver: resolver,
		requests: requests,
		items:    items,
		logger:   logger,
	}
}

// Create posts a new item request for the user.
func (s *RequestService) Create(ctx context.Context, requesterID uuid.UUID, req CreateRequestRequest) (*RequestDTO, error) {
	if _, err := s.resolver.User(ctx, requesterID); err != nil {
		return nil, err
	}

	rq, err := requestDomain.NewRequest(requesterID, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, rq); err != nil {
		return nil, err
	}

	dto := toRequestDTO(rq)
	dto.Items = []RequestItemDTO{}
	return &dto, nil
}

// Get retrieves one request with the items answering it. Any registered user
// may view any request.
func (s *RequestService) Get(ctx context.Context, viewerID, requestID uuid.UUID) (*RequestDTO, error) {
	if _, err := s.resolver.User(ctx, viewerID); err != nil {
		return nil, err
	}
	rq, err := s.resolver.Request(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByRequests(ctx, []uuid.UUID{rq.ID()})
	if err != nil {
		return nil, err
	}

	dto := toRequestDTO(rq)
	dto.Items = toRequestItemDTOs(items)
	return &dto, nil
}

// ListOwn lists the user's requests, newest first, each with its answering
// items.
func (s *RequestService) ListOwn(ctx context.Context, requesterID uuid.UUID, page requestDomain.Page) ([]RequestDTO, error) {
	if _, err := s.resolver.User(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.requests.FindByRequester(ctx, requesterID, page)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// ListOthers lists requests from every user except the viewer, newest first,
// each with its answering items.
func (s *RequestService) ListOthers(ctx context.Context, viewerID uuid.UUID, page requestDomain.Page) ([]RequestDTO, error) {
	if _, err := s.resolver.User(ctx, viewerID); err != nil {
		return nil, err
	}
	requests, err := s.requests.FindByOtherRequesters(ctx, viewerID, page)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// attachItems loads the answering items for a page of requests in one query
// and groups them per request.
func (s *RequestService) attachItems(ctx context.Context, requests []*requestDomain.Request) ([]RequestDTO, error) {
	requestIDs := make([]uuid.UUID, len(requests))
	for i, rq := range requests {
		requestIDs[i] = rq.ID()
	}

	items, err := s.items.FindByRequests(ctx, requestIDs)
	if err != nil {
		return nil, err
	}
	itemsByRequest := make(map[uuid.UUID][]*itemDomain.Item)
	for _, itm := range items {
		if itm.RequestID() == nil {
			continue
		}
		itemsByRequest[*itm.RequestID()] = append(itemsByRequest[*itm.RequestID()], itm)
	}

	dtos := make([]RequestDTO, len(requests))
	for i, rq := range requests {
		dto := toRequestDTO(rq)
		dto.Items = toRequestItemDTOs(itemsByRequest[rq.ID()])
		dtos[i] = dto
	}
	return dtos, nil
}

func toRequestDTO(rq *requestDomain.Request) RequestDTO {
	return RequestDTO{
		ID:          rq.ID(),
		Description: rq.Description(),
		RequesterID: rq.RequesterID(),
		Created:     rq.CreatedAt(),
	}
}

func toRequestItemDTOs(items []*itemDomain.Item) []RequestItemDTO {
	dtos := make([]RequestItemDTO, len(items))
	for i, itm := range items {
		dtos[i] = RequestItemDTO{
			ID:        itm.ID(),
			Name:      itm.Name(),
			OwnerID:   itm.OwnerID(),
			Available: itm.Available(),
		}
	}
	return dtos
}
