package profilefieldsrv

import (
	"context"

	"github.com/Abraxas-365/hirely/pkg/errx"
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/pkg/logx"
	"github.com/Abraxas-365/hirely/pkg/metrics"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
)

// Service loads and maintains the profile field registry
type Service struct {
	repo  profilefield.Repository
	cache profilefield.Cache
}

// NewService creates a new profile field service. cache may be nil.
func NewService(repo profilefield.Repository, cache profilefield.Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// LoadFieldConfig returns the configured fields sorted by order_index.
// An empty result means no fields are configured and is not an error.
func (s *Service) LoadFieldConfig(ctx context.Context) ([]profilefield.FieldConfig, error) {
	registry, err := s.Registry(ctx)
	if err != nil {
		return nil, err
	}
	return registry.Fields(), nil
}

// Registry loads the global registry, read-through the cache
func (s *Service) Registry(ctx context.Context) (*profilefield.Registry, error) {
	if s.cache != nil {
		fields, ok, err := s.cache.Get(ctx)
		if err != nil {
			logx.Warnf("profile field cache read failed: %v", err)
		} else if ok {
			metrics.FieldConfigLoads.WithLabelValues("cache").Inc()
			return profilefield.NewRegistry(fields), nil
		}
	}

	fields, err := s.repo.List(ctx)
	if err != nil {
		logx.Errorf("loading profile field config: %v", err)
		return nil, profilefield.ErrConfigLoad(err)
	}
	metrics.FieldConfigLoads.WithLabelValues("database").Inc()

	registry := profilefield.NewRegistry(fields)

	if s.cache != nil {
		if err := s.cache.Set(ctx, registry.Fields()); err != nil {
			logx.Warnf("profile field cache write failed: %v", err)
		}
	}

	return registry, nil
}

// LoadForJob returns the registry with a job's requirement overrides applied
func (s *Service) LoadForJob(ctx context.Context, reqs profilefield.Requirements) (*profilefield.Registry, error) {
	registry, err := s.Registry(ctx)
	if err != nil {
		return nil, err
	}
	return registry.ForJob(reqs), nil
}

// UpsertField creates or replaces a field definition. order_index must not
// be held by another field.
func (s *Service) UpsertField(ctx context.Context, field profilefield.FieldConfig) (*profilefield.FieldConfig, error) {
	if err := field.Validate(); err != nil {
		return nil, err
	}

	// checked against storage, not the cache
	current, err := s.repo.List(ctx)
	if err != nil {
		return nil, profilefield.ErrConfigLoad(err)
	}
	if holder, taken := profilefield.NewRegistry(current).AtOrder(field.OrderIndex, field.ID); taken {
		return nil, profilefield.ErrOrderTaken(field.ID, field.OrderIndex).WithDetail("used_by", holder.ID.String())
	}

	if err := s.repo.Upsert(ctx, field); err != nil {
		if _, ok := errx.As(err); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to save profile field", errx.TypeInternal)
	}

	s.invalidate(ctx)
	logx.Infof("profile field %s saved (order %d, mandatory %t)", field.ID, field.OrderIndex, field.Mandatory)
	return &field, nil
}

// DeleteField removes a field definition
func (s *Service) DeleteField(ctx context.Context, id kernel.FieldID) error {
	if id.IsEmpty() {
		return profilefield.ErrFieldNotFound()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logx.Warnf("profile field cache invalidation failed: %v", err)
	}
}
