package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	geoClient "github.com/m04kA/SMC-AdsBookingService/internal/integrations/geoservice"
	"github.com/m04kA/SMC-AdsBookingService/internal/service/pricing/models"
)

// Service сервис вычисления иерархического множителя цены.
//
// Множитель вычисляется как чистая функция от счетчиков подчиненных единиц из
// GeoService на каждый запрос. Межзапросное мемоизирование намеренно
// отсутствует: у иерархии нет сигнала инвалидации.
type Service struct {
	geoClient GeoServiceClient
	logger    Logger
}

// NewService создает новый экземпляр сервиса прайсинга
func NewService(geoClient GeoServiceClient, logger Logger) *Service {
	return &Service{
		geoClient: geoClient,
		logger:    logger,
	}
}

// GetHierarchyBreakdown возвращает расшифровку множителя для уровня офиса
func (s *Service) GetHierarchyBreakdown(ctx context.Context, level domain.OfficeLevel, scopeID int64) (*models.BreakdownResponse, error) {
	s.logger.Info("GetHierarchyBreakdown: level=%s, scope=%d", level, scopeID)

	if !level.Valid() {
		return nil, fmt.Errorf("%w: unknown office level %q", ErrInvalidInput, level)
	}

	multiplier, rows, err := s.ResolveMultiplier(ctx, level, scopeID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBreakdown(level, scopeID, rows, multiplier), nil
}

// ResolveMultiplier вычисляет множитель цены для уровня офиса:
//   - branch: всегда 1, без обращений к GeoService;
//   - regional: число округов под штатом владельца;
//   - head_office: число штатов страны × число округов под этими штатами.
func (s *Service) ResolveMultiplier(ctx context.Context, level domain.OfficeLevel, scopeID int64) (domain.Multiplier, []domain.HierarchyLevel, error) {
	if level == domain.OfficeLevelBranch {
		return domain.MultiplierOne, nil, nil
	}

	if scopeID <= 0 {
		return domain.Multiplier{}, nil, fmt.Errorf("%w: scopeID must be positive for level %s", ErrInvalidInput, level)
	}

	scope, err := s.geoClient.GetScope(ctx, scopeID)
	if err != nil {
		return domain.Multiplier{}, nil, s.mapGeoError("GetScope", scopeID, err)
	}

	var rows []domain.HierarchyLevel

	switch level {
	case domain.OfficeLevelRegional:
		districts, err := s.geoClient.CountSubordinates(ctx, scopeID, domain.HierarchyLevelDistrict)
		if err != nil {
			return domain.Multiplier{}, nil, s.mapGeoError("CountSubordinates", scopeID, err)
		}
		rows = []domain.HierarchyLevel{
			{Level: domain.HierarchyLevelDistrict, Name: scope.Name, Count: districts},
		}

	case domain.OfficeLevelHeadOffice:
		states, err := s.geoClient.CountSubordinates(ctx, scopeID, domain.HierarchyLevelState)
		if err != nil {
			return domain.Multiplier{}, nil, s.mapGeoError("CountSubordinates", scopeID, err)
		}
		districts, err := s.geoClient.CountSubordinates(ctx, scopeID, domain.HierarchyLevelDistrict)
		if err != nil {
			return domain.Multiplier{}, nil, s.mapGeoError("CountSubordinates", scopeID, err)
		}
		rows = []domain.HierarchyLevel{
			{Level: domain.HierarchyLevelState, Name: scope.Name, Count: states},
			{Level: domain.HierarchyLevelDistrict, Name: scope.Name, Count: districts},
		}

	default:
		return domain.Multiplier{}, nil, fmt.Errorf("%w: unknown office level %q", ErrInvalidInput, level)
	}

	multiplier := domain.ComputeMultiplier(level, rows)
	s.logger.Info("ResolveMultiplier: level=%s, scope=%d, multiplier=%d/%d",
		level, scopeID, multiplier.Num, multiplier.Den)

	return multiplier, rows, nil
}

func (s *Service) mapGeoError(op string, scopeID int64, err error) error {
	if errors.Is(err, geoClient.ErrScopeNotFound) {
		s.logger.Warn("%s: scope id=%d not found", op, scopeID)
		return ErrScopeNotFound
	}
	s.logger.Error("%s: geo service error for scope id=%d: %v", op, scopeID, err)
	return fmt.Errorf("%w: %s: %v", ErrGeoUnavailable, op, err)
}
