package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

type serviceRepository interface {
	ListByBarber(ctx context.Context, barberID string, activeOnly bool) ([]models.Service, error)
	FindByID(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, svc *models.Service) error
	Update(ctx context.Context, svc *models.Service) error
	Deactivate(ctx context.Context, barberID, id string) error
}

type barberRepository interface {
	FindByID(ctx context.Context, id string) (*models.Barber, error)
	FindBySlug(ctx context.Context, slug string) (*models.Barber, error)
}

// CatalogService manages barbers' service catalogues and resolves tenants.
type CatalogService struct {
	services  serviceRepository
	barbers   barberRepository
	cache     *CacheService
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs a CatalogService. cache may be nil.
func NewCatalogService(services serviceRepository, barbers barberRepository, cache *CacheService, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{services: services, barbers: barbers, cache: cache, ttl: ttl, validator: validate, logger: logger}
}

// Barber returns an active barber by id.
func (s *CatalogService) Barber(ctx context.Context, id string) (*models.Barber, error) {
	barber, err := s.barbers.FindByID(ctx, id)
	return s.activeBarber(barber, err)
}

// BarberBySlug resolves the public booking page slug.
func (s *CatalogService) BarberBySlug(ctx context.Context, slug string) (*models.Barber, error) {
	key := barberSlugCacheKey(slug)
	var cached models.Barber
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	barber, err := s.barbers.FindBySlug(ctx, slug)
	barber, err = s.activeBarber(barber, err)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, barber, s.ttl)
	return barber, nil
}

func (s *CatalogService) activeBarber(barber *models.Barber, err error) (*models.Barber, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "barber not found")
		}
		return nil, appErrors.Persistence(err, "failed to load barber")
	}
	if !barber.Active {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "barber not found")
	}
	return barber, nil
}

// PublicProfile returns the barber and its bookable services.
func (s *CatalogService) PublicProfile(ctx context.Context, slug string) (*models.PublicBarberProfile, error) {
	barber, err := s.BarberBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	services, err := s.ListServices(ctx, barber.ID, true)
	if err != nil {
		return nil, err
	}
	return &models.PublicBarberProfile{Barber: *barber, Services: services}, nil
}

// ListServices lists the barber's catalogue. Active-only listings are cached.
func (s *CatalogService) ListServices(ctx context.Context, barberID string, activeOnly bool) ([]models.Service, error) {
	key := servicesCacheKey(barberID)
	if activeOnly {
		var cached []models.Service
		if s.cache.Get(ctx, key, &cached) {
			return cached, nil
		}
	}
	services, err := s.services.ListByBarber(ctx, barberID, activeOnly)
	if err != nil {
		return nil, appErrors.Persistence(err, "failed to list services")
	}
	if services == nil {
		services = []models.Service{}
	}
	if activeOnly {
		s.cache.Set(ctx, key, services, s.ttl)
	}
	return services, nil
}

// Service returns a service owned by barberID.
func (s *CatalogService) Service(ctx context.Context, barberID, id string) (*models.Service, error) {
	svc, err := s.services.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "service not found")
		}
		return nil, appErrors.Persistence(err, "failed to load service")
	}
	if svc.BarberID != barberID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "service not found")
	}
	return svc, nil
}

// BookableService returns an active service of the barber.
func (s *CatalogService) BookableService(ctx context.Context, barberID, id string) (*models.Service, error) {
	svc, err := s.Service(ctx, barberID, id)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "service is not available for booking")
	}
	return svc, nil
}

// CreateService adds a service to the barber's catalogue.
func (s *CatalogService) CreateService(ctx context.Context, barberID string, req models.ServiceRequest) (*models.Service, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid service payload")
	}
	svc := &models.Service{BarberID: barberID, Active: true}
	applyServiceRequest(svc, req)
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, appErrors.Persistence(err, "failed to create service")
	}
	s.invalidate(ctx, barberID)
	return svc, nil
}

// UpdateService edits a service of the barber.
func (s *CatalogService) UpdateService(ctx context.Context, barberID, id string, req models.ServiceRequest) (*models.Service, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid service payload")
	}
	svc, err := s.Service(ctx, barberID, id)
	if err != nil {
		return nil, err
	}
	applyServiceRequest(svc, req)
	if err := s.services.Update(ctx, svc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "service not found")
		}
		return nil, appErrors.Persistence(err, "failed to update service")
	}
	s.invalidate(ctx, barberID)
	return svc, nil
}

// DeactivateService hides a service from booking.
func (s *CatalogService) DeactivateService(ctx context.Context, barberID, id string) error {
	if err := s.services.Deactivate(ctx, barberID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "service not found")
		}
		return appErrors.Persistence(err, "failed to deactivate service")
	}
	s.invalidate(ctx, barberID)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, barberID string) {
	s.cache.Invalidate(ctx, servicesCacheKey(barberID))
}

func applyServiceRequest(svc *models.Service, req models.ServiceRequest) {
	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMinutes = req.DurationMinutes
	svc.Price = req.Price
	if req.Active != nil {
		svc.Active = *req.Active
	}
}
