package api

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/repository"
	"github.com/jeff-stratofied/reporting-phase2/internal/service"
)

type ApiHandler struct {
	ValuationService   service.ValuationService
	PortfolioService   service.PortfolioService
	EarningsService    service.EarningsService
	LoanRepository     repository.LoanRepository
	BorrowerRepository repository.BorrowerRepository
	BaseAssumptions    domain.Assumptions
	JwtSecret          string
	Logger             *zap.SugaredLogger

	// Now is injectable for deterministic tests; defaults to time.Now
	Now func() time.Time
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "loan valuation service"})
	})
	router.POST("/valueLoan", m.valueLoan)
	router.POST("/amortizationSchedule", m.amortizationSchedule)
	router.POST("/portfolio", m.portfolio)
	router.POST("/earnings", m.earnings)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func (m ApiHandler) today() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}

func returnErrorJson(err error, c *gin.Context) {
	zap.S().Error(err.Error())
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	zap.S().Error(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	start := time.Now().UTC()
	ctx.Next()
	m.Logger.Infow("request",
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", ctx.ClientIP(),
	)
}
