package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/borrowhub/service-rental/internal/apperr"
	bookingDomain "github.com/borrowhub/service-rental/internal/domain/booking"
	itemDomain "github.com/borrowhub/service-rental/internal/domain/item"
	requestDomain "github.com/borrowhub/service-rental/internal/domain/request"
	userDomain "github.com/borrowhub/service-rental/internal/domain/user"
	"github.com/borrowhub/service-rental/internal/events"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return apperr.Conflictf("email %s is already in use", u.Email())
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.users {
		if id != u.ID() && existing.Email() == u.Email() {
			return apperr.Conflictf("email %s is already in use", u.Email())
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*userDomain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*itemDomain.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*itemDomain.Item)}
}

func (r *fakeItemRepo) Save(_ context.Context, i *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[i.ID()] = i
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, i *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[i.ID()] = i
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.items[id]
	if !ok {
		return nil, apperr.NewNotFoundError("item", id.String())
	}
	return i, nil
}

func (r *fakeItemRepo) FindByOwner(_ context.Context, ownerID uuid.UUID, page itemDomain.Page) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*itemDomain.Item
	for _, i := range r.items {
		if i.OwnerID() == ownerID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt().Before(out[b].CreatedAt()) })
	return paginate(out, page.Offset, page.Limit), nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string, page itemDomain.Page) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(text)
	var out []*itemDomain.Item
	for _, i := range r.items {
		if !i.Available() {
			continue
		}
		if strings.Contains(strings.ToLower(i.Name()), needle) ||
			strings.Contains(strings.ToLower(i.Description()), needle) {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt().Before(out[b].CreatedAt()) })
	return paginate(out, page.Offset, page.Limit), nil
}

func (r *fakeItemRepo) FindByRequests(_ context.Context, requestIDs []uuid.UUID) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	var out []*itemDomain.Item
	for _, i := range r.items {
		if i.RequestID() != nil && wanted[*i.RequestID()] {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var approved []*bookingDomain.Booking
	for _, existing := range r.bookings {
		if existing.Item().ID == bk.Item().ID && existing.Status() == bookingDomain.StatusApproved {
			approved = append(approved, existing)
		}
	}
	if bookingDomain.HasConflict(approved, bk.Start(), bk.End()) {
		return apperr.Unavailablef("item is already booked for the requested dates")
	}
	r.bookings[bk.ID()] = bk
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[bk.ID()]
	if !ok {
		return apperr.NewNotFoundError("booking", bk.ID().String())
	}
	if stored.Version() != bk.Version()-1 {
		return apperr.Unavailablef("booking is already approved or rejected")
	}
	r.bookings[bk.ID()] = bk
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, apperr.NewNotFoundError("booking", id.String())
	}
	// Return a copy, like the real repository rehydrating a row: callers mutate
	// the returned aggregate and Update's version check compares it against the
	// stored state.
	clone := *bk
	return &clone, nil
}

func (r *fakeBookingRepo) FindApprovedByItem(_ context.Context, itemID uuid.UUID) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.Item().ID == itemID && bk.Status() == bookingDomain.StatusApproved {
			out = append(out, bk)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByBooker(_ context.Context, bookerID uuid.UUID, state bookingDomain.State, now time.Time, page bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.Booker().ID == bookerID && matchesState(bk, state, now) {
			out = append(out, bk)
		}
	}
	sortByStartDesc(out)
	return paginate(out, page.Offset, page.Limit), nil
}

func (r *fakeBookingRepo) FindByItemOwner(_ context.Context, ownerID uuid.UUID, state bookingDomain.State, now time.Time, page bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.Item().OwnerID == ownerID && matchesState(bk, state, now) {
			out = append(out, bk)
		}
	}
	sortByStartDesc(out)
	return paginate(out, page.Offset, page.Limit), nil
}

func (r *fakeBookingRepo) FindNextByItem(_ context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var next *bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.Item().ID != itemID || bk.Status() != bookingDomain.StatusApproved || !bk.Start().After(now) {
			continue
		}
		if next == nil || bk.Start().Before(next.Start()) {
			next = bk
		}
	}
	return next, nil
}

func (r *fakeBookingRepo) FindLastByItem(_ context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var last *bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.Item().ID != itemID || !bk.Start().Before(now) {
			continue
		}
		if last == nil ||
			bk.Start().After(last.Start()) ||
			(bk.Start().Equal(last.Start()) && bk.End().After(last.End())) {
			last = bk
		}
	}
	return last, nil
}

func (r *fakeBookingRepo) FindPastApprovedByItemAndBooker(_ context.Context, itemID, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.Item().ID == itemID &&
			bk.Booker().ID == bookerID &&
			bk.Status() == bookingDomain.StatusApproved &&
			bk.End().Before(now) {
			out = append(out, bk)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByItems(_ context.Context, itemIDs []uuid.UUID) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if wanted[bk.Item().ID] {
			out = append(out, bk)
		}
	}
	return out, nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*requestDomain.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*requestDomain.Request)}
}

func (r *fakeRequestRepo) Save(_ context.Context, req *requestDomain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.ID()] = req
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*requestDomain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, apperr.NewNotFoundError("item request", id.String())
	}
	return req, nil
}

func (r *fakeRequestRepo) FindByRequester(_ context.Context, requesterID uuid.UUID, page requestDomain.Page) ([]*requestDomain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*requestDomain.Request
	for _, req := range r.requests {
		if req.RequesterID() == requesterID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt().After(out[b].CreatedAt()) })
	return paginate(out, page.Offset, page.Limit), nil
}

func (r *fakeRequestRepo) FindByOtherRequesters(_ context.Context, requesterID uuid.UUID, page requestDomain.Page) ([]*requestDomain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*requestDomain.Request
	for _, req := range r.requests {
		if req.RequesterID() != requesterID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt().After(out[b].CreatedAt()) })
	return paginate(out, page.Offset, page.Limit), nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*itemDomain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Save(_ context.Context, c *itemDomain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, c)
	return nil
}

func (r *fakeCommentRepo) FindByItem(_ context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*itemDomain.Comment
	for _, c := range r.comments {
		if c.ItemID() == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) FindByItems(_ context.Context, itemIDs []uuid.UUID) ([]*itemDomain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var out []*itemDomain.Comment
	for _, c := range r.comments {
		if wanted[c.ItemID()] {
			out = append(out, c)
		}
	}
	return out, nil
}

// capturingProducer records published envelopes for assertions.
type capturingProducer struct {
	mu        sync.Mutex
	published []events.Envelope
}

func (p *capturingProducer) Publish(_ context.Context, _ string, _ string, envelope events.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, envelope)
	return nil
}

func (p *capturingProducer) Close() error { return nil }

func (p *capturingProducer) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.published))
	for i, e := range p.published {
		out[i] = e.Type
	}
	return out
}

func matchesState(bk *bookingDomain.Booking, state bookingDomain.State, now time.Time) bool {
	switch state {
	case bookingDomain.StateCurrent:
		return !bk.Start().After(now) && bk.End().After(now)
	case bookingDomain.StatePast:
		return bk.End().Before(now)
	case bookingDomain.StateFuture:
		return bk.Start().After(now)
	case bookingDomain.StateWaiting:
		return bk.Status() == bookingDomain.StatusWaiting
	case bookingDomain.StateRejected:
		return bk.Status() == bookingDomain.StatusRejected
	}
	return true
}

func sortByStartDesc(bookings []*bookingDomain.Booking) {
	sort.Slice(bookings, func(a, b int) bool {
		return bookings[a].Start().After(bookings[b].Start())
	})
}

func paginate[T any](in []T, offset, limit int) []T {
	if offset >= len(in) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(in) {
		end = len(in)
	}
	return in[offset:end]
}
