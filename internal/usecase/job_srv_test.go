package usecase

import (
	"context"
	"errors"
	"testing"

	"homeservice-dispatch/internal/data/entity"
	"homeservice-dispatch/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newJobService(store *fakeStore) JobService {
	return NewJobService(store.repos(), zap.NewNop())
}

func TestListAssigned(t *testing.T) {
	store := newFakeStore()
	techID := uuid.New()

	mine := newWaitingBooking("JOB-MINE")
	mine.Status = entity.BookingStatusWaitingProcess
	mine.TechnicianID = &techID
	store.addBooking(mine)
	store.addBooking(newWaitingBooking("JOB-UNCLAIMED"))

	svc := newJobService(store)

	resp, err := svc.ListAssigned(context.Background(), techID, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "JOB-MINE", resp.Data[0].OrderCode)
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

func TestListAssignedSurfacesItemStoreFailure(t *testing.T) {
	store := newFakeStore()
	techID := uuid.New()

	mine := newWaitingBooking("JOB-MINE")
	mine.Status = entity.BookingStatusWaitingProcess
	mine.TechnicianID = &techID
	store.addBooking(mine)
	store.itemErr = errors.New("connection refused")

	svc := newJobService(store)

	_, err := svc.ListAssigned(context.Background(), techID, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetJobByID(t *testing.T) {
	store := newFakeStore()
	booking := newWaitingBooking("JOB-20260901-0100")
	store.addBooking(booking)

	svc := newJobService(store)

	detail, err := svc.GetJob(context.Background(), booking.ID.String(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, booking.OrderCode, detail.OrderCode)
}

func TestGetJobByOrderCode(t *testing.T) {
	store := newFakeStore()
	booking := newWaitingBooking("JOB-20260901-0101")
	store.addBooking(booking)

	svc := newJobService(store)

	// Non-UUID keys fall through to the order-code lookup
	detail, err := svc.GetJob(context.Background(), "JOB-20260901-0101", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, booking.ID.String(), detail.ID)
}

func TestGetJobUnknownKeyIsNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newJobService(store)

	_, err := svc.GetJob(context.Background(), "JOB-NO-SUCH", uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetJobAssignedToOtherIsUnauthorized(t *testing.T) {
	store := newFakeStore()
	owner := uuid.New()

	booking := newWaitingBooking("JOB-20260901-0102")
	booking.Status = entity.BookingStatusWaitingProcess
	booking.TechnicianID = &owner
	store.addBooking(booking)

	svc := newJobService(store)

	_, err := svc.GetJob(context.Background(), booking.ID.String(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}
