package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/pkg/dbmetrics"
	"github.com/open2agenda/booking-service/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

var bookingColumns = []string{
	"id",
	"tenant_id",
	"service_id",
	"service_json",
	"booking_date",
	"start_time",
	"client_name",
	"client_surname",
	"client_email",
	"client_phone",
	"notes",
	"status",
	"calendar_event_id",
	"created_at",
	"updated_at",
}

// Repository persists bookings. The partial unique index on
// (tenant_id, service_id, booking_date, start_time) WHERE status <> 'CANCELLED'
// is the hard at-most-one-per-slot guarantee; everything above it is advisory.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking. When the context carries an open transaction the
// insert joins it. A unique-index rejection maps to ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	serviceJSON, err := json.Marshal(booking.Service)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal service snapshot: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"tenant_id",
			"service_id",
			"service_json",
			"booking_date",
			"start_time",
			"client_name",
			"client_surname",
			"client_email",
			"client_phone",
			"notes",
			"status",
		).
		Values(
			booking.ID,
			booking.TenantID,
			booking.Service.ID,
			serviceJSON,
			booking.Date,
			booking.StartTime,
			booking.ClientName,
			booking.ClientSurname,
			booking.ClientEmail,
			booking.ClientPhone,
			booking.Notes,
			booking.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID fetches one booking.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByTenantWithFilter fetches a tenant's bookings.
//
// For a single-date filter the rows come back in start-time order, and when
// the context carries a transaction the select takes FOR UPDATE so concurrent
// commit pipelines serialize on the day's rows.
func (r *Repository) GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatusFromPending transitions a PENDING booking to the given status.
// The status guard lives in SQL so two concurrent admin actions cannot both win.
func (r *Repository) UpdateStatusFromPending(ctx context.Context, id string, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(domain.StatusPending)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFromPending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFromPending - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFromPending - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

// SetCalendarEventID records the calendar event written for a booking.
func (r *Repository) SetCalendarEventID(ctx context.Context, id string, eventID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("calendar_event_id", eventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var serviceJSON []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.TenantID,
		&booking.Service.ID,
		&serviceJSON,
		&booking.Date,
		&booking.StartTime,
		&booking.ClientName,
		&booking.ClientSurname,
		&booking.ClientEmail,
		&booking.ClientPhone,
		&booking.Notes,
		&booking.Status,
		&booking.CalendarEventID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(serviceJSON, &booking.Service); err != nil {
		return nil, fmt.Errorf("unmarshal service snapshot: %v", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
