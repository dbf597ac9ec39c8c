package api

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/jeff-stratofied/reporting-phase2/internal/service"
)

type earningsRequest struct {
	Party string `json:"party"`
	AsOf  string `json:"asOf,omitempty"`
}

type earningsResponse struct {
	Party  string                    `json:"party"`
	Months []service.MonthlyEarnings `json:"months"`
}

func (m ApiHandler) earnings(c *gin.Context) {
	ctx := context.Background()

	var requestBody earningsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	party := requestBody.Party
	if claims, err := m.resolveUser(c); err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	} else if claims != nil && party == "" {
		party = claims.Subject
	}
	if party == "" {
		returnErrorJsonCode(fmt.Errorf("party is required"), c, 400)
		return
	}

	asOf, err := m.resolveAsOf(requestBody.AsOf)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	months, err := m.EarningsService.ComputeEarnings(ctx, service.EarningsInput{
		Party:       party,
		Today:       asOf,
		Assumptions: m.BaseAssumptions,
	})
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to compute earnings: %w", err), c)
		return
	}

	c.JSON(200, earningsResponse{Party: party, Months: months})
}
