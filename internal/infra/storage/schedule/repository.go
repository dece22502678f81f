package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	"github.com/nlukyanov/consultant-booking/pkg/dbmetrics"
	"github.com/nlukyanov/consultant-booking/pkg/psqlbuilder"
)

// Repository read-only репозиторий расписания: календари, окна доступности
// и услуги. Запись в эти таблицы идёт через внешний CRUD-слой консультанта,
// поэтому блокировки здесь не нужны
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCalendar получает календарь по ID
func (r *Repository) GetCalendar(ctx context.Context, id int64) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"consultant_id",
		"name",
		"color",
		"is_active",
		"break_between_bookings_minutes",
		"book_ahead_hours",
		"max_bookings_per_day",
		"reminder_first_hours",
		"reminder_second_hours",
		"created_at",
		"updated_at",
	).
		From("calendars").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCalendar - build select query: %v", ErrBuildQuery, err)
	}

	var calendar domain.Calendar
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&calendar.ID,
		&calendar.ConsultantID,
		&calendar.Name,
		&calendar.Color,
		&calendar.IsActive,
		&calendar.BreakBetweenBookingsMinutes,
		&calendar.BookAheadHours,
		&calendar.MaxBookingsPerDay,
		&calendar.ReminderFirstHours,
		&calendar.ReminderSecondHours,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCalendar - scan calendar: %w", ErrScanRow, err)
	}

	calendar.CreatedAt = createdAt.Time
	calendar.UpdatedAt = updatedAt.Time

	return &calendar, nil
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"consultant_id",
		"calendar_id",
		"name",
		"description",
		"duration_minutes",
		"price",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.ConsultantID,
		&service.CalendarID,
		&service.Name,
		&service.Description,
		&service.DurationMinutes,
		&service.Price,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// GetWindows получает доступные окна календаря на день недели,
// упорядоченные по времени начала
// Окна в хранилище могут пересекаться - генератор слотов это допускает
func (r *Repository) GetWindows(ctx context.Context, calendarID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"calendar_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_available",
		"created_at",
	).
		From("availability_windows").
		Where(squirrel.Eq{"calendar_id": calendarID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where(squirrel.Eq{"is_available": true}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindows - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var window domain.AvailabilityWindow
		var createdAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.CalendarID,
			&window.DayOfWeek,
			&window.StartTime,
			&window.EndTime,
			&window.IsAvailable,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWindows - scan window: %w", ErrScanRow, err)
		}

		window.CreatedAt = createdAt.Time
		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWindows - rows error: %w", ErrScanRow, err)
	}

	return windows, nil
}
