package tanks

import (
	"context"
	"errors"
	"fmt"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
	tankRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/tank"
	"github.com/voidfloat/FLT-SchedulingService/internal/service/tanks/models"
)

// Service сервис для работы с танками и заявками на обслуживание
type Service struct {
	tankRepo TankRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса танков
func NewService(tankRepo TankRepository, logger Logger) *Service {
	return &Service{
		tankRepo: tankRepo,
		logger:   logger,
	}
}

// List возвращает все активные танки центра
func (s *Service) List(ctx context.Context) (*models.TankListResponse, error) {
	tanks, err := s.tankRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTankList(tanks), nil
}

// UpdateStatus меняет живой статус танка.
// Статус информационный и выставляется персоналом вручную; на конфликты
// записей влияет только maintenance, выводящий танк из пула
func (s *Service) UpdateStatus(ctx context.Context, tankID int64, req *models.UpdateTankStatusRequest) (*models.TankResponse, error) {
	s.logger.Info("UpdateStatus: updating tank id=%d to status=%s", tankID, req.Status)

	status, err := models.ToDomainTankStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for tank id=%d", req.Status, tankID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if err := s.tankRepo.UpdateStatus(ctx, tankID, status); err != nil {
		if errors.Is(err, tankRepo.ErrTankNotFound) {
			s.logger.Warn("UpdateStatus: tank id=%d not found", tankID)
			return nil, ErrTankNotFound
		}
		s.logger.Error("UpdateStatus: repository error for tank id=%d: %v", tankID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	tank, err := s.tankRepo.GetByID(ctx, tankID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to reload tank id=%d: %v", tankID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated tank id=%d to status=%s", tankID, status)
	return models.FromDomainTank(tank), nil
}

// ReportMaintenance регистрирует поломку танка.
// Поломка серьёзности high или critical немедленно переводит танк
// в статус maintenance и выводит его из пула бронирования
func (s *Service) ReportMaintenance(ctx context.Context, tankID int64, req *models.ReportMaintenanceRequest) (*models.MaintenanceLogResponse, error) {
	s.logger.Info("ReportMaintenance: tank id=%d, severity=%s", tankID, req.Severity)

	severity, err := models.ToDomainSeverity(req.Severity)
	if err != nil {
		s.logger.Warn("ReportMaintenance: invalid severity=%s for tank id=%d", req.Severity, tankID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidSeverity, req.Severity)
	}

	if err := validateMaintenanceRequest(req); err != nil {
		s.logger.Warn("ReportMaintenance: validation failed for tank id=%d: %v", tankID, err)
		return nil, err
	}

	// Танк должен существовать
	if _, err := s.tankRepo.GetByID(ctx, tankID); err != nil {
		if errors.Is(err, tankRepo.ErrTankNotFound) {
			s.logger.Warn("ReportMaintenance: tank id=%d not found", tankID)
			return nil, ErrTankNotFound
		}
		s.logger.Error("ReportMaintenance: repository error for tank id=%d: %v", tankID, err)
		return nil, fmt.Errorf("%w: ReportMaintenance - repository error: %v", ErrInternal, err)
	}

	log := &domain.MaintenanceLog{
		TankID:      tankID,
		Description: req.Description,
		Severity:    severity,
		Status:      domain.MaintenanceOpen,
		ReportedBy:  req.ReportedBy,
	}

	created, err := s.tankRepo.CreateMaintenanceLog(ctx, log)
	if err != nil {
		s.logger.Error("ReportMaintenance: failed to create log for tank id=%d: %v", tankID, err)
		return nil, fmt.Errorf("%w: ReportMaintenance - repository error: %v", ErrInternal, err)
	}

	if severity.RequiresShutdown() {
		if err := s.tankRepo.UpdateStatus(ctx, tankID, domain.TankStatusMaintenance); err != nil {
			s.logger.Error("ReportMaintenance: failed to shut down tank id=%d: %v", tankID, err)
			return nil, fmt.Errorf("%w: ReportMaintenance - repository error: %v", ErrInternal, err)
		}
		s.logger.Warn("ReportMaintenance: tank id=%d taken out of service (severity=%s)", tankID, severity)
	}

	s.logger.Info("ReportMaintenance: successfully created log id=%d for tank id=%d", created.ID, tankID)
	return models.FromDomainMaintenanceLog(created), nil
}

// ResolveMaintenance закрывает открытую заявку на обслуживание.
// Статус танка обратно не переключается: вернуть танк в строй персонал
// должен явно через UpdateStatus, убедившись в его готовности
func (s *Service) ResolveMaintenance(ctx context.Context, logID int64) error {
	s.logger.Info("ResolveMaintenance: resolving log id=%d", logID)

	if err := s.tankRepo.ResolveMaintenanceLog(ctx, logID); err != nil {
		if errors.Is(err, tankRepo.ErrMaintenanceLogNotFound) {
			s.logger.Warn("ResolveMaintenance: open log id=%d not found", logID)
			return ErrMaintenanceLogNotFound
		}
		s.logger.Error("ResolveMaintenance: repository error for log id=%d: %v", logID, err)
		return fmt.Errorf("%w: ResolveMaintenance - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ResolveMaintenance: successfully resolved log id=%d", logID)
	return nil
}

// validateMaintenanceRequest валидирует заявку на обслуживание
func validateMaintenanceRequest(req *models.ReportMaintenanceRequest) error {
	if req.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	if len(req.Description) > domain.MaxMaintenanceDescription {
		return fmt.Errorf("%w: description is too long", ErrInvalidInput)
	}

	if req.ReportedBy == "" {
		return fmt.Errorf("%w: reportedBy is required", ErrInvalidInput)
	}

	return nil
}
