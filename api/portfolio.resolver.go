package api

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/service"
)

type portfolioRequest struct {
	Mode      string                      `json:"mode"` // portfolio | market | all
	User      string                      `json:"user,omitempty"`
	AsOf      string                      `json:"asOf,omitempty"`
	Overrides *domain.AssumptionOverrides `json:"overrides,omitempty"`
}

func (m ApiHandler) portfolio(c *gin.Context) {
	ctx := context.Background()

	var requestBody portfolioRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	mode, err := parseOwnershipMode(requestBody.Mode)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	user := requestBody.User
	if claims, err := m.resolveUser(c); err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	} else if claims != nil {
		user = claims.Subject
	}
	if mode == domain.OwnershipMode_Portfolio && user == "" {
		returnErrorJsonCode(fmt.Errorf("mode=portfolio requires a user"), c, 400)
		return
	}

	asOf, err := m.resolveAsOf(requestBody.AsOf)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	report, err := m.PortfolioService.ComputePortfolio(ctx, service.PortfolioInput{
		User:      user,
		Mode:      mode,
		Today:     asOf,
		Overrides: requestBody.Overrides,
	})
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to compute portfolio: %w", err), c)
		return
	}

	c.JSON(200, report)
}

func parseOwnershipMode(raw string) (domain.OwnershipMode, error) {
	switch domain.OwnershipMode(raw) {
	case domain.OwnershipMode_Portfolio, domain.OwnershipMode_Market, domain.OwnershipMode_All:
		return domain.OwnershipMode(raw), nil
	case "":
		return domain.OwnershipMode_All, nil
	default:
		return "", fmt.Errorf("unknown ownership mode %q", raw)
	}
}
