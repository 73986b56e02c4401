package repository

import (
	"context"
	"fmt"
	"time"

	"homeservice-dispatch/internal/data/entity"
	"homeservice-dispatch/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const bookingColumns = `id, order_code, customer_id, status, technician_id, lat, lng,
	       address_text, address_meta, service_date, service_time, total_price,
	       created_at, updated_at`

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByOrderCode(ctx context.Context, orderCode string) (*entity.Booking, error)
	FindUnassigned(ctx context.Context, textFilter string, limit int) ([]*entity.Booking, error)
	FindByTechnicianID(ctx context.Context, technicianID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByTechnicianID(ctx context.Context, technicianID uuid.UUID) (int64, error)

	// Atomic transitions. Each runs the guarded status update and its audit
	// insert in one transaction; a false return means the guard predicate
	// did not hold (claimed by someone else, wrong status, wrong owner, or
	// no such row) and nothing was written.
	Claim(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error)
	Release(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error)
	Cancel(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error)

	// DeclineOffer writes the audit-only decline of a still-unclaimed job.
	// The insert is guarded on the pool predicate, so a false return means
	// the job was already taken (or gone) and no row was written.
	DeclineOffer(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.OrderCode,
		&booking.CustomerID,
		&booking.Status,
		&booking.TechnicianID,
		&booking.Lat,
		&booking.Lng,
		&booking.AddressText,
		&booking.AddressMeta,
		&booking.ServiceDate,
		&booking.ServiceTime,
		&booking.TotalPrice,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByOrderCode(ctx context.Context, orderCode string) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE order_code = $1
	`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, orderCode))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by order code",
			zap.Error(err),
			zap.String("order_code", orderCode),
		)
		return nil, fmt.Errorf("find booking by order code %s: %w", orderCode, err)
	}

	return booking, nil
}

// FindUnassigned returns the open claim pool: jobs still waiting for a
// technician. Distance ranking happens in the usecase layer; here the rows
// come back most recent first with a candidate cap.
func (r *bookingRepository) FindUnassigned(ctx context.Context, textFilter string, limit int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.status = $1
		  AND b.technician_id IS NULL
		  AND ($2 = ''
		       OR b.address_text ILIKE '%' || $2 || '%'
		       OR b.order_code ILIKE '%' || $2 || '%'
		       OR EXISTS (
		             SELECT 1 FROM booking_items bi
		             JOIN services s ON s.id = bi.service_id
		             WHERE bi.booking_id = b.id
		               AND s.name ILIKE '%' || $2 || '%'))
		ORDER BY b.created_at DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, entity.BookingStatusWaitingAccept, textFilter, limit)
	if err != nil {
		r.log.Error("Failed to find unassigned bookings",
			zap.Error(err),
			zap.String("text_filter", textFilter),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find unassigned bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) FindByTechnicianID(ctx context.Context, technicianID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE technician_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, technicianID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by technician ID",
			zap.Error(err),
			zap.String("technician_id", technicianID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by technician ID %s: %w", technicianID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByTechnicianID(ctx context.Context, technicianID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE technician_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, technicianID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by technician ID",
			zap.Error(err),
			zap.String("technician_id", technicianID.String()),
		)
		return 0, fmt.Errorf("count bookings by technician ID %s: %w", technicianID.String(), err)
	}

	return count, nil
}

const insertActionQuery = `
	INSERT INTO booking_actions (id, booking_id, technician_id, action, meta, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// Claim performs the check-and-update that makes a claim exclusive: the
// UPDATE only matches while the job is still unassigned, so of any number
// of racing claims the store serializes exactly one winner.
func (r *bookingRepository) Claim(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin claim tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $3, technician_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = $4 AND technician_id IS NULL
	`, bookingID, technicianID, entity.BookingStatusWaitingProcess, entity.BookingStatusWaitingAccept)
	if err != nil {
		r.log.Error("Failed to claim booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("technician_id", technicianID.String()),
		)
		return false, fmt.Errorf("claim booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx, insertActionQuery,
		uuid.New(), bookingID, technicianID, entity.ActionAccept, meta.JSON(), time.Now())
	if err != nil {
		r.log.Error("Failed to record accept action",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("record accept action for %s: %w", bookingID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit claim tx: %w", err)
	}

	return true, nil
}

// DeclineOffer records a DECLINE against a job still sitting in the open
// pool. The guarded INSERT..SELECT only matches while the job is unclaimed,
// so a concurrent claim leaves no stray audit row.
func (r *bookingRepository) DeclineOffer(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error) {
	result, err := r.db.Exec(ctx, `
		INSERT INTO booking_actions (id, booking_id, technician_id, action, meta, created_at)
		SELECT $1, b.id, $2, $3, $4, NOW()
		FROM bookings b
		WHERE b.id = $5 AND b.status = $6 AND b.technician_id IS NULL
	`, uuid.New(), technicianID, entity.ActionDecline, meta.JSON(),
		bookingID, entity.BookingStatusWaitingAccept)
	if err != nil {
		r.log.Error("Failed to record offer decline",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("technician_id", technicianID.String()),
		)
		return false, fmt.Errorf("decline offer %s: %w", bookingID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// Release backs a claimed job out to the open pool. Only the current
// assignee can release, and only from waiting_process.
func (r *bookingRepository) Release(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin release tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $3, technician_id = NULL, updated_at = NOW()
		WHERE id = $1 AND status = $4 AND technician_id = $2
	`, bookingID, technicianID, entity.BookingStatusWaitingAccept, entity.BookingStatusWaitingProcess)
	if err != nil {
		r.log.Error("Failed to release booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("technician_id", technicianID.String()),
		)
		return false, fmt.Errorf("release booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx, insertActionQuery,
		uuid.New(), bookingID, technicianID, entity.ActionDecline, meta.JSON(), time.Now())
	if err != nil {
		r.log.Error("Failed to record decline action",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("record decline action for %s: %w", bookingID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit release tx: %w", err)
	}

	return true, nil
}

// Cancel moves an owned job to the terminal canceled state.
func (r *bookingRepository) Cancel(ctx context.Context, bookingID, technicianID uuid.UUID, meta entity.ActionMeta) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND (status = $4 OR status = $5) AND technician_id = $2
	`, bookingID, technicianID,
		entity.BookingStatusCanceled,
		entity.BookingStatusWaitingProcess,
		entity.BookingStatusInProgress)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("technician_id", technicianID.String()),
		)
		return false, fmt.Errorf("cancel booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx, insertActionQuery,
		uuid.New(), bookingID, technicianID, entity.ActionCancel, meta.JSON(), time.Now())
	if err != nil {
		r.log.Error("Failed to record cancel action",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("record cancel action for %s: %w", bookingID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit cancel tx: %w", err)
	}

	return true, nil
}
