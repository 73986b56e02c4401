package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"homeservice-dispatch/internal/dto/request"
	"homeservice-dispatch/internal/dto/response"
	"homeservice-dispatch/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubDispatchService returns canned results so the handler's HTTP mapping
// can be tested without a store.
type stubDispatchService struct {
	claim  *response.ClaimResponse
	action *response.ActionResponse
	err    error
}

func (s *stubDispatchService) Accept(ctx context.Context, bookingID string, technicianID uuid.UUID, meta request.ClientMeta) (*response.ClaimResponse, error) {
	return s.claim, s.err
}

func (s *stubDispatchService) Decline(ctx context.Context, bookingID string, technicianID uuid.UUID, req *request.JobActionRequest, meta request.ClientMeta) (*response.ActionResponse, error) {
	return s.action, s.err
}

func (s *stubDispatchService) Cancel(ctx context.Context, bookingID string, technicianID uuid.UUID, req *request.JobActionRequest, meta request.ClientMeta) (*response.ActionResponse, error) {
	return s.action, s.err
}

type stubNearbyService struct {
	resp *response.NearbyJobsResponse
	err  error
}

func (s *stubNearbyService) FindNearby(ctx context.Context, technicianID uuid.UUID, req *request.NearbyJobsRequest) (*response.NearbyJobsResponse, error) {
	return s.resp, s.err
}

func newTestRouter(h *DispatchHandler, technicianID *uuid.UUID) *chi.Mux {
	r := chi.NewRouter()
	if technicianID != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(utils.SetTechnicianContext(req.Context(), *technicianID)))
			})
		})
	}
	r.Get("/jobs/nearby", h.NearbyJobs)
	r.Post("/jobs/{id}/accept", h.Accept)
	r.Post("/jobs/{id}/decline", h.Decline)
	r.Post("/jobs/{id}/cancel", h.Cancel)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var envelope utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

func TestNearbyJobsRequiresAuth(t *testing.T) {
	h := NewDispatchHandler(&stubDispatchService{}, &stubNearbyService{}, zap.NewNop())
	router := newTestRouter(h, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/nearby", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Status)
}

func TestAcceptClaimedReturnsOK(t *testing.T) {
	techID := uuid.New()
	h := NewDispatchHandler(&stubDispatchService{claim: &response.ClaimResponse{Claimed: true}}, &stubNearbyService{}, zap.NewNop())
	router := newTestRouter(h, &techID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/"+uuid.New().String()+"/accept", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Status)
	assert.Equal(t, "success", envelope.Message)
}

func TestAcceptLostRaceIsStillOK(t *testing.T) {
	techID := uuid.New()
	h := NewDispatchHandler(&stubDispatchService{claim: &response.ClaimResponse{Claimed: false, Reason: "already_taken"}}, &stubNearbyService{}, zap.NewNop())
	router := newTestRouter(h, &techID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/"+uuid.New().String()+"/accept", nil))

	// Losing the race is a soft failure, not an HTTP error
	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Status)
	assert.Equal(t, "this job was just taken", envelope.Message)

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var claim response.ClaimResponse
	require.NoError(t, json.Unmarshal(data, &claim))
	assert.False(t, claim.Claimed)
	assert.Equal(t, "already_taken", claim.Reason)
}

func TestAcceptInvalidIDIsBadRequest(t *testing.T) {
	techID := uuid.New()
	h := NewDispatchHandler(&stubDispatchService{err: fmt.Errorf("invalid booking ID: not-a-uuid")}, &stubNearbyService{}, zap.NewNop())
	router := newTestRouter(h, &techID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/not-a-uuid/accept", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeclineMalformedBodyIsBadRequest(t *testing.T) {
	techID := uuid.New()
	h := NewDispatchHandler(&stubDispatchService{action: &response.ActionResponse{OK: true}}, &stubNearbyService{}, zap.NewNop())
	router := newTestRouter(h, &techID)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/jobs/"+uuid.New().String()+"/decline", bytes.NewBufferString("{not json"))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelEmptyBodyIsAccepted(t *testing.T) {
	techID := uuid.New()
	h := NewDispatchHandler(&stubDispatchService{action: &response.ActionResponse{OK: true}}, &stubNearbyService{}, zap.NewNop())
	router := newTestRouter(h, &techID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/"+uuid.New().String()+"/cancel", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNearbyMalformedCoordinateIsBadRequest(t *testing.T) {
	techID := uuid.New()
	h := NewDispatchHandler(&stubDispatchService{}, &stubNearbyService{resp: &response.NearbyJobsResponse{}}, zap.NewNop())
	router := newTestRouter(h, &techID)

	// A value that fails to parse must not degrade to no-center mode
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/nearby?lat=abc&lng=100.5", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Status)
}

func TestNearbyValidationErrorIsBadRequest(t *testing.T) {
	techID := uuid.New()
	h := NewDispatchHandler(&stubDispatchService{}, &stubNearbyService{err: fmt.Errorf("validation failed: Lat: Must be a valid latitude")}, zap.NewNop())
	router := newTestRouter(h, &techID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/nearby?lat=999&lng=0", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
