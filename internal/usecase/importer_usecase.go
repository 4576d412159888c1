package usecase

import (
	"context"

	"clearpass/internal/domain/entity"
)

// SaveImporterInput carries importer data for creation or update. An empty
// ID creates a new importer.
type SaveImporterInput struct {
	ID                 string
	CompanyName        string
	RUC                string
	CountryOfOrigin    string
	ContactEmail       string
	ContactPhone       string
	FiscalAddress      string
	SpecialtyProducts  []string
	RegistrationDate   string
	ImportVolumeUSD    float64
	YearsInBusiness    int
	SuccessfulImports  int
	ClientSatisfaction float64
}

// RankingInput selects the criteria and optional country filter for a
// ranking query.
type RankingInput struct {
	Criteria string
	Country  string
}

// ImporterUsecase defines the interface for importer directory operations.
type ImporterUsecase interface {
	ListImporters(ctx context.Context) ([]entity.Importer, error)
	GetImporter(ctx context.Context, id string) (*entity.Importer, error)
	SaveImporter(ctx context.Context, input SaveImporterInput) (*entity.Importer, error)
	DeleteImporter(ctx context.Context, id string) error
}

// RankingUsecase defines the interface for importer ranking operations.
// TopImporters and TopChineseImporters back premium-only features.
type RankingUsecase interface {
	RankImporters(ctx context.Context, input RankingInput) ([]entity.Importer, error)
	TopImporters(ctx context.Context, n int, input RankingInput) ([]entity.Importer, error)
	TopChineseImporters(ctx context.Context, criteria string) ([]entity.Importer, error)
}
