package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/estatelink/viewing-service/internal/domain"
	"github.com/estatelink/viewing-service/pkg/dbmetrics"
	"github.com/estatelink/viewing-service/pkg/psqlbuilder"
	"github.com/estatelink/viewing-service/pkg/types"
)

// activeSlotConstraint имя частичного уникального индекса на активный слот.
// Индекс покрывает только строки в статусах pending/confirmed, поэтому
// отменённые и завершённые бронирования слот не блокируют.
const activeSlotConstraint = "uq_appointments_active_slot"

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = pq.ErrorCode("23505")

const appointmentColumns = `id, listing_id, client_id, agent_id, scheduled_date, scheduled_time, status, notes, created_at, updated_at`

// Repository репозиторий для работы с бронированиями просмотров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований просмотров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование просмотра.
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Уникальность активного слота дополнительно гарантируется частичным
// индексом в БД: даже если прикладная проверка HasActiveSlot прошла,
// конкурирующая вставка завершится ErrSlotTaken, а не дублем.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"listing_id",
			"client_id",
			"agent_id",
			"scheduled_date",
			"scheduled_time",
			"status",
			"notes",
		).
		Values(
			appt.ListingID,
			appt.ClientID,
			appt.AgentID,
			appt.ScheduledDate,
			appt.ScheduledTime,
			appt.Status,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == activeSlotConstraint {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает бронирование просмотра по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetWithFilter получает бронирования по фильтру (клиент или агент,
// опционально статус и период). Сортировка - ближайшие слоты первыми.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		OrderBy("scheduled_date ASC, scheduled_time ASC")

	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.AgentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"agent_id": *filter.AgentID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"scheduled_date": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// HasActiveSlot проверяет, занят ли слот (listing, date, time) активным
// бронированием (pending/confirmed). excludeID исключает из проверки само
// бронирование при переносе.
//
// Внутри транзакции существующая строка блокируется FOR UPDATE, чтобы
// закрыть гонку между проверкой и вставкой.
func (r *Repository) HasActiveSlot(
	ctx context.Context,
	listingID int64,
	date time.Time,
	slot types.TimeString,
	excludeID *int64,
) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("id").
		From("appointments").
		Where(squirrel.Eq{
			"listing_id":     listingID,
			"scheduled_date": date,
			"scheduled_time": slot,
			"status":         activeStatusStrings,
		}).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveSlot - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveSlot - scan id: %v", ErrScanRow, err)
	}

	return true, nil
}

// UpdateStatus обновляет статус бронирования и updated_at
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Reschedule переносит бронирование на новые дату и время
func (r *Repository) Reschedule(ctx context.Context, id int64, date time.Time, slot types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("scheduled_date", date).
		Set("scheduled_time", slot).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == activeSlotConstraint {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление, административная операция).
// Основной workflow использует UpdateStatus(cancelled) для сохранения истории.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// scanAppointment сканирует одну строку в модель бронирования
func (r *Repository) scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.ListingID,
		&appt.ClientID,
		&appt.AgentID,
		&appt.ScheduledDate,
		&appt.ScheduledTime,
		&appt.Status,
		&appt.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс бронирований
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.ListingID,
			&appt.ClientID,
			&appt.AgentID,
			&appt.ScheduledDate,
			&appt.ScheduledTime,
			&appt.Status,
			&appt.Notes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
