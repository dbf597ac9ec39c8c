package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jeff-stratofied/reporting-phase2/api"
	"github.com/jeff-stratofied/reporting-phase2/internal/config"
	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/logger"
	"github.com/jeff-stratofied/reporting-phase2/internal/repository"
	"github.com/jeff-stratofied/reporting-phase2/internal/service"
	treasury_client "github.com/jeff-stratofied/reporting-phase2/pkg/treasury"
)

type Dependencies struct {
	ApiHandler *api.ApiHandler
	Config     *config.Config
	Db         *sql.DB
}

func CloseDependencies(deps *Dependencies) {
	if deps.Db == nil {
		return
	}
	if err := deps.Db.Close(); err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func configPath() string {
	if path := os.Getenv("REPORTING_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

func InitializeDependencies() (*Dependencies, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	zlog := logger.New()

	dbConn, err := sql.Open("postgres", cfg.Db.ConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	curveProvider := repository.NewFileCurveProvider(cfg.Reference.CurveFile)
	if err := curveProvider.Load(); err != nil {
		return nil, fmt.Errorf("failed to load risk curves: %w", err)
	}

	schoolDirectory, err := repository.NewCSVSchoolDirectory(cfg.Reference.SchoolFile, zlog)
	if err != nil {
		return nil, fmt.Errorf("failed to load school directory: %w", err)
	}

	var cache repository.ValuationCache
	if cfg.Redis.Enabled {
		cache = repository.NewRedisValuationCache(cfg.Redis.Addr, cfg.Redis.TTL, zlog)
	}

	baseAssumptions := resolveBaseAssumptions(cfg, zlog)

	loanRepository := repository.NewLoanRepository(dbConn)
	borrowerRepository := repository.NewBorrowerRepository(dbConn)

	valuationService := service.NewValuationService(
		curveProvider,
		schoolDirectory,
		cache,
		baseAssumptions,
		zlog,
	)
	portfolioService := service.NewPortfolioService(
		loanRepository,
		borrowerRepository,
		valuationService,
		zlog,
	)
	earningsService := service.NewEarningsService(loanRepository, zlog)

	return &Dependencies{
		ApiHandler: &api.ApiHandler{
			ValuationService:   valuationService,
			PortfolioService:   portfolioService,
			EarningsService:    earningsService,
			LoanRepository:     loanRepository,
			BorrowerRepository: borrowerRepository,
			BaseAssumptions:    baseAssumptions,
			JwtSecret:          cfg.Server.JwtSecret,
			Logger:             zlog,
		},
		Config: cfg,
		Db:     dbConn,
	}, nil
}

// resolveBaseAssumptions layers the system config over code defaults. If no
// risk-free rate is pinned, try the treasury feed and fall back to default on
// failure.
func resolveBaseAssumptions(cfg *config.Config, zlog *zap.SugaredLogger) domain.Assumptions {
	base := domain.DefaultAssumptions().Apply(&cfg.Assumptions)

	if cfg.Assumptions.BaseRiskFreeRate == nil {
		rate, err := treasury_client.GetRiskFreeRate()
		if err != nil {
			zlog.Warnw("could not fetch risk-free rate, using default",
				"default", base.BaseRiskFreeRate, "error", err)
		} else {
			base.BaseRiskFreeRate = rate
		}
	}

	return base
}
