package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jeff-stratofied/reporting-phase2/internal/amort"
	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
)

type amortizationScheduleRequest struct {
	LoanID    uuid.UUID                   `json:"loanId"`
	Overrides *domain.AssumptionOverrides `json:"overrides,omitempty"`
}

type amortizationScheduleResponse struct {
	LoanID uuid.UUID         `json:"loanId"`
	Rows   []domain.AmortRow `json:"rows"`
}

func (m ApiHandler) amortizationSchedule(c *gin.Context) {
	ctx := context.Background()

	var requestBody amortizationScheduleRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.LoanID == uuid.Nil {
		returnErrorJsonCode(fmt.Errorf("loanId is required"), c, 400)
		return
	}

	loan, err := m.LoanRepository.Get(ctx, requestBody.LoanID)
	if err != nil {
		returnErrorJsonCode(err, c, 404)
		return
	}

	assumptions := m.BaseAssumptions.Apply(requestBody.Overrides)
	rows, err := amort.BuildSchedule(*loan, amort.Options{
		SetupFee:        assumptions.SetupFee,
		ServicingFeeBps: assumptions.ServicingCostBps,
		Logger:          m.Logger,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			returnErrorJsonCode(err, c, 422)
			return
		}
		returnErrorJson(fmt.Errorf("failed to build schedule: %w", err), c)
		return
	}

	c.JSON(200, amortizationScheduleResponse{
		LoanID: requestBody.LoanID,
		Rows:   rows,
	})
}
