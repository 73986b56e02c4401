package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"homeservice-dispatch/internal/data/entity"
	"homeservice-dispatch/internal/data/repository"
	"homeservice-dispatch/pkg/notify"

	"github.com/google/uuid"
)

// fakeStore backs all repository fakes with one mutex so the conditional
// check-and-update semantics of the real store hold under goroutine races.
type fakeStore struct {
	mu        sync.Mutex
	bookings  map[uuid.UUID]*entity.Booking
	items     map[uuid.UUID][]*entity.BookingItem
	itemErr   error
	actions   []*entity.BookingAction
	locations map[uuid.UUID]*entity.TechnicianLocation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings:  make(map[uuid.UUID]*entity.Booking),
		items:     make(map[uuid.UUID][]*entity.BookingItem),
		locations: make(map[uuid.UUID]*entity.TechnicianLocation),
	}
}

func (f *fakeStore) repos() *repository.Repository {
	return &repository.Repository{
		Booking:            (*fakeBookingRepo)(f),
		BookingItem:        (*fakeItemRepo)(f),
		BookingAction:      (*fakeActionRepo)(f),
		TechnicianLocation: (*fakeLocationRepo)(f),
	}
}

func (f *fakeStore) addBooking(b *entity.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[b.ID] = b
}

func (f *fakeStore) actionsFor(bookingID uuid.UUID) []*entity.BookingAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.BookingAction
	for _, a := range f.actions {
		if a.BookingID == bookingID {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeStore) appendAction(bookingID uuid.UUID, technicianID *uuid.UUID, action entity.ActionType, meta entity.ActionMeta) {
	f.actions = append(f.actions, &entity.BookingAction{
		BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		BookingID:    bookingID,
		TechnicianID: technicianID,
		Action:       action,
		Meta:         meta.JSON(),
	})
}

type fakeBookingRepo fakeStore

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copy := *b
	return &copy, nil
}

func (f *fakeBookingRepo) FindByOrderCode(ctx context.Context, orderCode string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.OrderCode == orderCode {
			copy := *b
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindUnassigned(ctx context.Context, textFilter string, limit int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.Status != entity.BookingStatusWaitingAccept || b.TechnicianID != nil {
			continue
		}
		if textFilter != "" && !f.matches(b, textFilter) {
			continue
		}
		copy := *b
		out = append(out, &copy)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBookingRepo) matches(b *entity.Booking, filter string) bool {
	filter = strings.ToLower(filter)
	if strings.Contains(strings.ToLower(b.AddressText), filter) ||
		strings.Contains(strings.ToLower(b.OrderCode), filter) {
		return true
	}
	for _, item := range f.items[b.ID] {
		if strings.Contains(strings.ToLower(item.ServiceName), filter) {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) FindByTechnicianID(ctx context.Context, technicianID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.TechnicianID != nil && *b.TechnicianID == technicianID {
			copy := *b
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByTechnicianID(ctx context.Context, technicianID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, b := range f.bookings {
		if b.TechnicianID != nil && *b.TechnicianID == technicianID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) Claim(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok || b.Status != entity.BookingStatusWaitingAccept || b.TechnicianID != nil {
		return false, nil
	}

	tech := technicianID
	b.Status = entity.BookingStatusWaitingProcess
	b.TechnicianID = &tech
	b.UpdatedAt = time.Now()
	(*fakeStore)(f).appendAction(bookingID, &tech, entity.ActionAccept, meta)
	return true, nil
}

func (f *fakeBookingRepo) DeclineOffer(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok || b.Status != entity.BookingStatusWaitingAccept || b.TechnicianID != nil {
		return false, nil
	}

	tech := technicianID
	(*fakeStore)(f).appendAction(bookingID, &tech, entity.ActionDecline, meta)
	return true, nil
}

func (f *fakeBookingRepo) Release(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok || b.Status != entity.BookingStatusWaitingProcess ||
		b.TechnicianID == nil || *b.TechnicianID != technicianID {
		return false, nil
	}

	tech := technicianID
	b.Status = entity.BookingStatusWaitingAccept
	b.TechnicianID = nil
	b.UpdatedAt = time.Now()
	(*fakeStore)(f).appendAction(bookingID, &tech, entity.ActionDecline, meta)
	return true, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok ||
		(b.Status != entity.BookingStatusWaitingProcess && b.Status != entity.BookingStatusInProgress) ||
		b.TechnicianID == nil || *b.TechnicianID != technicianID {
		return false, nil
	}

	tech := technicianID
	b.Status = entity.BookingStatusCanceled
	b.UpdatedAt = time.Now()
	(*fakeStore)(f).appendAction(bookingID, &tech, entity.ActionCancel, meta)
	return true, nil
}

type fakeItemRepo fakeStore

func (f *fakeItemRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.itemErr != nil {
		return nil, f.itemErr
	}
	return f.items[bookingID], nil
}

type fakeActionRepo fakeStore

func (f *fakeActionRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAction, error) {
	return (*fakeStore)(f).actionsFor(bookingID), nil
}

type fakeLocationRepo fakeStore

func (f *fakeLocationRepo) Get(ctx context.Context, technicianID uuid.UUID) (*entity.TechnicianLocation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loc, ok := f.locations[technicianID]
	if !ok {
		return nil, nil
	}
	copy := *loc
	return &copy, nil
}

func (f *fakeLocationRepo) Upsert(ctx context.Context, location *entity.TechnicianLocation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *location
	stored.UpdatedAt = time.Now()
	f.locations[location.TechnicianID] = &stored
	return nil
}

// recordingSink captures claim events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []notify.ClaimEvent
}

func (s *recordingSink) JobClaimed(ctx context.Context, event notify.ClaimEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func newWaitingBooking(orderCode string) *entity.Booking {
	now := time.Now()
	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderCode:   orderCode,
		CustomerID:  uuid.New(),
		Status:      entity.BookingStatusWaitingAccept,
		AddressText: "99 Sukhumvit Rd",
		ServiceDate: now.AddDate(0, 0, 1),
		ServiceTime: "10:00",
		TotalPrice:  450,
	}
}
