package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"clearpass/internal/domain/entity"
	"clearpass/internal/domain/repository"
	"clearpass/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Ranking criteria accepted by the ranking endpoints.
const (
	CriteriaImportVolume       = "import_volume_usd"
	CriteriaYearsInBusiness    = "years_in_business"
	CriteriaSuccessfulImports  = "successful_imports"
	CriteriaClientSatisfaction = "client_satisfaction_rating"
)

// rankingService implements the RankingUsecase interface.
type rankingService struct {
	importerRepo repository.ImporterRepository
	logger       *slog.Logger
}

// RankingServiceParams holds dependencies for rankingService, injected by Fx.
type RankingServiceParams struct {
	fx.In

	ImporterRepo repository.ImporterRepository
	Logger       *slog.Logger
}

// NewRankingService is the constructor for rankingService.
func NewRankingService(params RankingServiceParams) usecase.RankingUsecase {
	return &rankingService{
		importerRepo: params.ImporterRepo,
		logger:       params.Logger,
	}
}

// RankImporters returns the directory sorted by the given criteria, highest
// first, optionally filtered by country of origin.
func (srv *rankingService) RankImporters(ctx context.Context, input usecase.RankingInput) ([]entity.Importer, error) {
	importers, err := srv.importerRepo.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load importers for ranking")
	}

	if input.Country != "" {
		filtered := make([]entity.Importer, 0, len(importers))
		for _, imp := range importers {
			if strings.EqualFold(imp.CountryOfOrigin, input.Country) {
				filtered = append(filtered, imp)
			}
		}
		importers = filtered
	}

	srv.rank(importers, input.Criteria)

	return importers, nil
}

// TopImporters returns the n best importers for the given criteria.
func (srv *rankingService) TopImporters(ctx context.Context, n int, input usecase.RankingInput) ([]entity.Importer, error) {
	if n < 0 {
		n = 0
	}

	ranked, err := srv.RankImporters(ctx, input)
	if err != nil {
		return nil, err
	}

	if n < len(ranked) {
		ranked = ranked[:n]
	}

	return ranked, nil
}

// TopChineseImporters returns the top ten Chinese importers from the
// built-in demonstration dataset, ranked by the given criteria.
func (srv *rankingService) TopChineseImporters(ctx context.Context, criteria string) ([]entity.Importer, error) {
	importers := chineseImporterFixtures()
	srv.rank(importers, criteria)

	if len(importers) > 10 {
		importers = importers[:10]
	}

	return importers, nil
}

// rank sorts in place, highest value first. The sort is stable so equal
// values keep their directory order. An unknown criteria falls back to
// import volume with a warning.
func (srv *rankingService) rank(importers []entity.Importer, criteria string) {
	key := sortKey(criteria)
	if key == nil {
		if criteria != "" {
			srv.logger.Warn("Unknown ranking criteria, using import volume",
				slog.String("criteria", criteria))
		}
		key = sortKey(CriteriaImportVolume)
	}

	sort.SliceStable(importers, func(i, j int) bool {
		return key(importers[i]) > key(importers[j])
	})
}

func sortKey(criteria string) func(entity.Importer) float64 {
	switch criteria {
	case CriteriaImportVolume:
		return func(imp entity.Importer) float64 { return imp.ImportVolumeUSD }
	case CriteriaYearsInBusiness:
		return func(imp entity.Importer) float64 { return float64(imp.YearsInBusiness) }
	case CriteriaSuccessfulImports:
		return func(imp entity.Importer) float64 { return float64(imp.SuccessfulImports) }
	case CriteriaClientSatisfaction:
		return func(imp entity.Importer) float64 { return imp.ClientSatisfaction }
	default:
		return nil
	}
}

// chineseImporterFixtures is the demonstration dataset behind the premium
// top-ten feature. It is intentionally static.
func chineseImporterFixtures() []entity.Importer {
	return []entity.Importer{
		{
			ID: "mock_imp_cn_1", CompanyName: "Dragon Trade Solutions", RUC: "RUC12345678901",
			CountryOfOrigin: "China", ContactEmail: "contact@dragontech.com", ContactPhone: "+86-10-12345678",
			FiscalAddress: "123 Jinmao Tower, Shanghai", SpecialtyProducts: []string{"Electronics", "Gadgets"},
			RegistrationDate: "2010-01-15", ImportVolumeUSD: 30000000, YearsInBusiness: 15,
			SuccessfulImports: 2800, ClientSatisfaction: 4.9,
		},
		{
			ID: "mock_imp_cn_2", CompanyName: "Silk Road Imports Ltd.", RUC: "RUC12345678902",
			CountryOfOrigin: "China", ContactEmail: "info@silkroad.com", ContactPhone: "+86-21-87654321",
			FiscalAddress: "456 Bund Center, Shanghai", SpecialtyProducts: []string{"Textiles", "Apparel"},
			RegistrationDate: "2008-05-20", ImportVolumeUSD: 28000000, YearsInBusiness: 17,
			SuccessfulImports: 2500, ClientSatisfaction: 4.8,
		},
		{
			ID: "mock_imp_cn_3", CompanyName: "Great Wall Sourcing", RUC: "RUC12345678903",
			CountryOfOrigin: "China", ContactEmail: "sales@greatwall.com", ContactPhone: "+86-755-11223344",
			FiscalAddress: "789 Futian District, Shenzhen", SpecialtyProducts: []string{"Machinery", "Industrial Goods"},
			RegistrationDate: "2012-11-01", ImportVolumeUSD: 26000000, YearsInBusiness: 13,
			SuccessfulImports: 2200, ClientSatisfaction: 4.7,
		},
		{
			ID: "mock_imp_cn_4", CompanyName: "Pearl River Logistics", RUC: "RUC12345678904",
			CountryOfOrigin: "China", ContactEmail: "support@pearlriver.com", ContactPhone: "+86-20-55667788",
			FiscalAddress: "101 Tianhe Road, Guangzhou", SpecialtyProducts: []string{"Consumer Goods", "Home Appliances"},
			RegistrationDate: "2011-03-25", ImportVolumeUSD: 24000000, YearsInBusiness: 14,
			SuccessfulImports: 2100, ClientSatisfaction: 4.6,
		},
		{
			ID: "mock_imp_cn_5", CompanyName: "Panda Global Trade", RUC: "RUC12345678905",
			CountryOfOrigin: "China", ContactEmail: "admin@pandaglobal.com", ContactPhone: "+86-28-99887766",
			FiscalAddress: "222 Chengdu Street, Chengdu", SpecialtyProducts: []string{"Toys", "Sporting Goods"},
			RegistrationDate: "2014-07-10", ImportVolumeUSD: 22000000, YearsInBusiness: 11,
			SuccessfulImports: 1900, ClientSatisfaction: 4.5,
		},
		{
			ID: "mock_imp_cn_6", CompanyName: "Yellow River Sourcing", RUC: "RUC12345678906",
			CountryOfOrigin: "China", ContactEmail: "contact@yellowriver.com", ContactPhone: "+86-371-11223355",
			FiscalAddress: "333 Zhengzhou Avenue, Zhengzhou", SpecialtyProducts: []string{"Agricultural Products", "Raw Materials"},
			RegistrationDate: "2009-09-01", ImportVolumeUSD: 20000000, YearsInBusiness: 16,
			SuccessfulImports: 1700, ClientSatisfaction: 4.4,
		},
		{
			ID: "mock_imp_cn_7", CompanyName: "Phoenix Rising Imports", RUC: "RUC12345678907",
			CountryOfOrigin: "China", ContactEmail: "info@phoeniximports.com", ContactPhone: "+86-25-88990011",
			FiscalAddress: "444 Nanjing Road, Nanjing", SpecialtyProducts: []string{"Construction Materials", "Chemicals"},
			RegistrationDate: "2013-04-18", ImportVolumeUSD: 18000000, YearsInBusiness: 12,
			SuccessfulImports: 1600, ClientSatisfaction: 4.3,
		},
		{
			ID: "mock_imp_cn_8", CompanyName: "Yangtze Trade Bridge", RUC: "RUC12345678908",
			CountryOfOrigin: "China", ContactEmail: "bridge@yangtze.com", ContactPhone: "+86-27-22334455",
			FiscalAddress: "555 Wuhan Blvd, Wuhan", SpecialtyProducts: []string{"Automotive Parts", "Heavy Equipment"},
			RegistrationDate: "2015-08-05", ImportVolumeUSD: 16000000, YearsInBusiness: 10,
			SuccessfulImports: 1400, ClientSatisfaction: 4.2,
		},
		{
			ID: "mock_imp_cn_9", CompanyName: "Cloud Dragon Exports", RUC: "RUC12345678909",
			CountryOfOrigin: "China", ContactEmail: "export@clouddragon.com", ContactPhone: "+86-23-66778899",
			FiscalAddress: "666 Jiefangbei, Chongqing", SpecialtyProducts: []string{"IT Hardware", "Software Services"},
			RegistrationDate: "2016-10-10", ImportVolumeUSD: 14000000, YearsInBusiness: 9,
			SuccessfulImports: 1200, ClientSatisfaction: 4.1,
		},
		{
			ID: "mock_imp_cn_10", CompanyName: "Mandarin Supply Chain", RUC: "RUC12345678910",
			CountryOfOrigin: "China", ContactEmail: "supply@mandarin.com", ContactPhone: "+86-571-33445566",
			FiscalAddress: "777 West Lake District, Hangzhou", SpecialtyProducts: []string{"Medical Devices", "Pharmaceuticals"},
			RegistrationDate: "2017-12-01", ImportVolumeUSD: 12000000, YearsInBusiness: 8,
			SuccessfulImports: 1000, ClientSatisfaction: 4.0,
		},
	}
}
