package tank

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
	"github.com/voidfloat/FLT-SchedulingService/pkg/dbmetrics"
	"github.com/voidfloat/FLT-SchedulingService/pkg/psqlbuilder"
)

var tankColumns = []string{
	"id",
	"name",
	"active",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с танками и журналом неисправностей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория танков
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает танк по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tank, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tankColumns...).
		From("tanks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	tank, err := scanTank(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTankNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan tank: %v", ErrScanRow, err)
	}

	return tank, nil
}

// ListActive получает все активные танки в порядке создания (по ID)
// Порядок важен: от него зависит детерминизм автоназначения танка
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Tank, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tankColumns...).
		From("tanks").
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tanks := make([]*domain.Tank, 0)
	for rows.Next() {
		tank, err := scanTank(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		tanks = append(tanks, tank)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return tanks, nil
}

// UpdateStatus обновляет оперативный статус танка
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.TankStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tanks").
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
		return ErrTankNotFound
	}

	return nil
}

// CreateMaintenanceLog создает запись о неисправности танка
func (r *Repository) CreateMaintenanceLog(ctx context.Context, log *domain.MaintenanceLog) (*domain.MaintenanceLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("maintenance_logs").
		Columns(
			"tank_id",
			"description",
			"severity",
			"status",
			"reported_by",
		).
		Values(
			log.TankID,
			log.Description,
			log.Severity,
			log.Status,
			log.ReportedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateMaintenanceLog - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&log.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateMaintenanceLog - execute insert: %v", ErrExecQuery, err)
	}

	log.CreatedAt = createdAt.Time
	log.UpdatedAt = updatedAt.Time

	return log, nil
}

// ResolveMaintenanceLog помечает запись о неисправности как устранённую
func (r *Repository) ResolveMaintenanceLog(ctx context.Context, logID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("maintenance_logs").
		Set("status", domain.MaintenanceResolved).
		Set("resolved_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": logID, "status": domain.MaintenanceOpen}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ResolveMaintenanceLog - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ResolveMaintenanceLog - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ResolveMaintenanceLog - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMaintenanceLogNotFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTank(row rowScanner) (*domain.Tank, error) {
	var tank domain.Tank
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&tank.ID,
		&tank.Name,
		&tank.Active,
		&tank.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	tank.CreatedAt = createdAt.Time
	tank.UpdatedAt = updatedAt.Time

	return &tank, nil
}
