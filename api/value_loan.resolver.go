package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/service"
	"github.com/jeff-stratofied/reporting-phase2/internal/util"
)

type valueLoanRequest struct {
	LoanID    uuid.UUID                   `json:"loanId"`
	AsOf      string                      `json:"asOf,omitempty"` // YYYY-MM-DD, default today
	Overrides *domain.AssumptionOverrides `json:"overrides,omitempty"`
}

type valueLoanResponse struct {
	domain.ValuationResult
	NPV      *float64 `json:"npv"`
	NPVRatio *float64 `json:"npvRatio"`
	IRR      *float64 `json:"irr"`
	Unvalued bool     `json:"unvalued"`
}

func newValueLoanResponse(result *domain.ValuationResult) valueLoanResponse {
	return valueLoanResponse{
		ValuationResult: *result,
		NPV:             util.FloatPointerOrNil(result.NPV),
		NPVRatio:        util.FloatPointerOrNil(result.NPVRatio),
		IRR:             util.FloatPointerOrNil(result.IRR),
		Unvalued:        result.Unvalued(),
	}
}

func (m ApiHandler) valueLoan(c *gin.Context) {
	ctx := context.Background()

	var requestBody valueLoanRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.LoanID == uuid.Nil {
		returnErrorJsonCode(fmt.Errorf("loanId is required"), c, 400)
		return
	}

	asOf, err := m.resolveAsOf(requestBody.AsOf)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	loan, err := m.LoanRepository.Get(ctx, requestBody.LoanID)
	if err != nil {
		returnErrorJsonCode(err, c, 404)
		return
	}
	borrower, err := m.BorrowerRepository.GetByLoanID(ctx, requestBody.LoanID)
	if err != nil {
		returnErrorJsonCode(err, c, 404)
		return
	}

	result, err := m.ValuationService.ValueLoan(ctx, service.ValueLoanInput{
		Loan:      *loan,
		Borrower:  *borrower,
		Today:     asOf,
		Overrides: requestBody.Overrides,
	})
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to value loan: %w", err), c)
		return
	}

	c.JSON(200, newValueLoanResponse(result))
}

func (m ApiHandler) resolveAsOf(raw string) (time.Time, error) {
	if raw == "" {
		return m.today(), nil
	}
	asOf, err := util.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse asOf: %w", err)
	}
	return asOf, nil
}
