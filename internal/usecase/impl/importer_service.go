package impl

import (
	"context"
	"log/slog"

	"clearpass/internal/domain/entity"
	domainerrors "clearpass/internal/domain/errors"
	"clearpass/internal/domain/repository"
	"clearpass/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// importerService implements the ImporterUsecase interface.
type importerService struct {
	importerRepo repository.ImporterRepository
	logger       *slog.Logger
}

// ImporterServiceParams holds dependencies for importerService, injected by Fx.
type ImporterServiceParams struct {
	fx.In

	ImporterRepo repository.ImporterRepository
	Logger       *slog.Logger
}

// NewImporterService is the constructor for importerService.
func NewImporterService(params ImporterServiceParams) usecase.ImporterUsecase {
	return &importerService{
		importerRepo: params.ImporterRepo,
		logger:       params.Logger,
	}
}

// ListImporters returns every importer in the directory.
func (srv *importerService) ListImporters(ctx context.Context) ([]entity.Importer, error) {
	importers, err := srv.importerRepo.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list importers")
	}

	return importers, nil
}

// GetImporter returns a single importer by id.
func (srv *importerService) GetImporter(ctx context.Context, id string) (*entity.Importer, error) {
	importer, err := srv.importerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrImporterNotFound) {
			return nil, domainerrors.ErrImporterNotFound.WrapMessage("importer not found")
		}

		return nil, errors.Wrap(err, "failed to load importer")
	}

	return importer, nil
}

// SaveImporter creates or updates an importer. Updates require the importer
// to exist.
func (srv *importerService) SaveImporter(ctx context.Context, input usecase.SaveImporterInput) (*entity.Importer, error) {
	if input.ID != "" {
		if _, err := srv.importerRepo.FindByID(ctx, input.ID); err != nil {
			if errors.Is(err, repository.ErrImporterNotFound) {
				return nil, domainerrors.ErrImporterNotFound.WrapMessage("importer not found")
			}

			return nil, errors.Wrap(err, "failed to load importer for update")
		}
	}

	saved, err := srv.importerRepo.Save(ctx, &entity.Importer{
		ID:                 input.ID,
		CompanyName:        input.CompanyName,
		RUC:                input.RUC,
		CountryOfOrigin:    input.CountryOfOrigin,
		ContactEmail:       input.ContactEmail,
		ContactPhone:       input.ContactPhone,
		FiscalAddress:      input.FiscalAddress,
		SpecialtyProducts:  input.SpecialtyProducts,
		RegistrationDate:   input.RegistrationDate,
		ImportVolumeUSD:    input.ImportVolumeUSD,
		YearsInBusiness:    input.YearsInBusiness,
		SuccessfulImports:  input.SuccessfulImports,
		ClientSatisfaction: input.ClientSatisfaction,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save importer")
	}

	srv.logger.Info("Importer saved", slog.String("id", saved.ID))

	return saved, nil
}

// DeleteImporter removes an importer from the directory.
func (srv *importerService) DeleteImporter(ctx context.Context, id string) error {
	removed, err := srv.importerRepo.Delete(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete importer")
	}
	if !removed {
		return domainerrors.ErrImporterNotFound.WrapMessage("importer not found")
	}

	return nil
}
