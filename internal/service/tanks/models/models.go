package models

import (
	"errors"
	"time"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе танка
	ErrInvalidStatus = errors.New("invalid tank status")

	// ErrInvalidSeverity возвращается при некорректной серьёзности поломки
	ErrInvalidSeverity = errors.New("invalid maintenance severity")
)

// Request модели

// UpdateTankStatusRequest запрос на смену статуса танка
type UpdateTankStatusRequest struct {
	Status string `json:"status"`
}

// ReportMaintenanceRequest запрос на регистрацию поломки
type ReportMaintenanceRequest struct {
	Description string `json:"description"`
	Severity    string `json:"severity"`
	ReportedBy  string `json:"reportedBy"`
}

// Response модели

// TankResponse ответ с данными танка
type TankResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TankListResponse ответ со списком танков
type TankListResponse struct {
	Tanks []TankResponse `json:"tanks"`
}

// MaintenanceLogResponse ответ с данными заявки на обслуживание
type MaintenanceLogResponse struct {
	ID          int64      `json:"id"`
	TankID      int64      `json:"tankId"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	ReportedBy  string     `json:"reportedBy"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Методы конвертации

// FromDomainTank конвертирует domain модель в DTO
func FromDomainTank(t *domain.Tank) *TankResponse {
	if t == nil {
		return nil
	}

	return &TankResponse{
		ID:        t.ID,
		Name:      t.Name,
		Active:    t.Active,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromDomainTankList конвертирует список domain моделей в DTO
func FromDomainTankList(tanks []*domain.Tank) *TankListResponse {
	list := make([]TankResponse, 0, len(tanks))
	for _, t := range tanks {
		list = append(list, *FromDomainTank(t))
	}
	return &TankListResponse{Tanks: list}
}

// FromDomainMaintenanceLog конвертирует domain модель в DTO
func FromDomainMaintenanceLog(l *domain.MaintenanceLog) *MaintenanceLogResponse {
	if l == nil {
		return nil
	}

	return &MaintenanceLogResponse{
		ID:          l.ID,
		TankID:      l.TankID,
		Description: l.Description,
		Severity:    string(l.Severity),
		Status:      string(l.Status),
		ReportedBy:  l.ReportedBy,
		ResolvedAt:  l.ResolvedAt,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// ToDomainTankStatus конвертирует строку в domain статус танка
func ToDomainTankStatus(status string) (domain.TankStatus, error) {
	s := domain.TankStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainSeverity конвертирует строку в domain серьёзность поломки
func ToDomainSeverity(severity string) (domain.MaintenanceSeverity, error) {
	s := domain.MaintenanceSeverity(severity)
	if !s.IsValid() {
		return "", ErrInvalidSeverity
	}
	return s, nil
}
