package catalog

import (
	"context"

	"github.com/latoulicious/setforge/pkg/catalog/shared"
	"github.com/latoulicious/setforge/pkg/crunch"
	"github.com/latoulicious/setforge/pkg/database"
	"github.com/latoulicious/setforge/pkg/database/repository"
	"github.com/latoulicious/setforge/pkg/logging"
	"github.com/latoulicious/setforge/pkg/metrics"
)

// Service represents the main service that holds all dependencies
type Service struct {
	SetRepo       *repository.SetRepository
	CardRepo      *repository.CardRepository
	ArchetypeRepo *repository.ArchetypeRepository
	Logger        logging.LoggerFactory
	Metrics       *metrics.Metrics
}

// SetServiceInterface defines the interface for set-related operations
type SetServiceInterface interface {
	ListSets(ctx context.Context) ([]shared.SetSummary, error)
	GetSet(ctx context.Context, id uint) (*shared.SetDetail, error)
	CreateSet(ctx context.Context, input shared.SetInput) (*shared.SetSummary, error)
	UpdateSet(ctx context.Context, id uint, patch shared.SetPatch) (*shared.SetSummary, error)
	DeleteSet(ctx context.Context, id uint) error
}

// CardServiceInterface defines the interface for card-related operations
type CardServiceInterface interface {
	GetCard(ctx context.Context, id uint) (*shared.Card, error)
	CreateCard(ctx context.Context, setID uint, input shared.CardInput) (*shared.Card, error)
	UpdateCard(ctx context.Context, id uint, patch shared.CardPatch) (*shared.Card, error)
	DeleteCard(ctx context.Context, id uint) error
	DeriveColors(manaCost string) []string
}

// ArchetypeServiceInterface defines the interface for archetype-related operations
type ArchetypeServiceInterface interface {
	ListArchetypes(ctx context.Context, setID uint) ([]shared.Archetype, error)
	GetArchetype(ctx context.Context, id uint) (*shared.Archetype, error)
	CreateArchetype(ctx context.Context, setID uint, input shared.ArchetypeInput) (*shared.Archetype, error)
	UpdateArchetype(ctx context.Context, id uint, patch shared.ArchetypePatch) (*shared.Archetype, error)
	DeleteArchetype(ctx context.Context, id uint) error
}

// ReportServiceInterface defines the interface for distribution reports
type ReportServiceInterface interface {
	NumberCrunch(ctx context.Context, setID uint) (*crunch.Report, error)
}

// CatalogServiceInterface defines the main service interface that combines all sub-services
type CatalogServiceInterface interface {
	SetServiceInterface
	CardServiceInterface
	ArchetypeServiceInterface
	ReportServiceInterface
}

// NewService creates a new Service instance with all dependencies
func NewService(
	manager *database.Manager,
	loggers logging.LoggerFactory,
	m *metrics.Metrics,
) *Service {
	return &Service{
		SetRepo:       manager.Sets,
		CardRepo:      manager.Cards,
		ArchetypeRepo: manager.Archetypes,
		Logger:        loggers,
		Metrics:       m,
	}
}

// ServiceLogger returns the logger for one sub-service
func (s *Service) ServiceLogger(name string) logging.Logger {
	if s.Logger == nil {
		return logging.NewNopLogger()
	}
	return s.Logger.CreateServiceLogger(name)
}
