package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/jeff-stratofied/reporting-phase2/cmd"
	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/service"
	"github.com/jeff-stratofied/reporting-phase2/internal/util"
)

func main() {
	root := &cobra.Command{
		Use:   "reporting",
		Short: "offline loan valuation and ingest runs",
	}
	root.AddCommand(ingestCommand(), valueCommand(), portfolioCommand())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

type loanCsvRow struct {
	LoanID        string  `csv:"loan_id"`
	Principal     float64 `csv:"principal"`
	NominalRate   float64 `csv:"nominal_rate"`
	TermYears     int     `csv:"term_years"`
	GraceYears    int     `csv:"grace_years"`
	LoanStartDate string  `csv:"loan_start_date"`
	PurchaseDate  string  `csv:"purchase_date"`
	FeeWaiver     string  `csv:"fee_waiver"`
	Role          string  `csv:"role"`
}

func ingestCommand() *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "ingest",
		Short: "load loans from a CSV file into the store",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("could not open %s: %w", file, err)
			}
			defer f.Close()

			rows := []loanCsvRow{}
			if err := gocsv.UnmarshalFile(f, &rows); err != nil {
				return fmt.Errorf("could not parse %s: %w", file, err)
			}

			ctx := context.Background()
			for _, row := range rows {
				loanID, err := uuid.Parse(row.LoanID)
				if err != nil {
					return fmt.Errorf("invalid loan id %q: %w", row.LoanID, err)
				}
				loan := domain.Loan{
					LoanID:        loanID,
					Principal:     row.Principal,
					NominalRate:   row.NominalRate,
					TermYears:     row.TermYears,
					GraceYears:    row.GraceYears,
					LoanStartDate: row.LoanStartDate,
					PurchaseDate:  row.PurchaseDate,
					FeeWaiver:     domain.FeeWaiver(row.FeeWaiver),
					Role:          domain.BorrowerRole(row.Role),
				}
				if err := loan.Validate(); err != nil {
					return err
				}
				if err := deps.ApiHandler.LoanRepository.Add(ctx, loan); err != nil {
					return err
				}
			}

			fmt.Printf("ingested %d loans\n", len(rows))
			return nil
		},
	}

	c.Flags().StringVar(&file, "file", "loans.csv", "CSV file to ingest")
	return c
}

func valueCommand() *cobra.Command {
	var loanIDStr, asOf string

	c := &cobra.Command{
		Use:   "value",
		Short: "value a single loan and print the result",
		RunE: func(c *cobra.Command, args []string) error {
			loanID, err := uuid.Parse(loanIDStr)
			if err != nil {
				return fmt.Errorf("invalid loan id %q: %w", loanIDStr, err)
			}

			deps, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)

			ctx := context.Background()
			loan, err := deps.ApiHandler.LoanRepository.Get(ctx, loanID)
			if err != nil {
				return err
			}
			borrower, err := deps.ApiHandler.BorrowerRepository.GetByLoanID(ctx, loanID)
			if err != nil {
				return err
			}

			today, err := util.ParseDate(asOf)
			if err != nil {
				return err
			}

			result, err := deps.ApiHandler.ValuationService.ValueLoan(ctx, service.ValueLoanInput{
				Loan:     *loan,
				Borrower: *borrower,
				Today:    today,
			})
			if err != nil {
				return err
			}

			util.Pprint(result)
			return nil
		},
	}

	c.Flags().StringVar(&loanIDStr, "loan", "", "loan id to value")
	c.Flags().StringVar(&asOf, "as-of", "", "valuation date (YYYY-MM-DD)")
	c.MarkFlagRequired("loan")
	c.MarkFlagRequired("as-of")
	return c
}

func portfolioCommand() *cobra.Command {
	var mode, user, asOf string

	c := &cobra.Command{
		Use:   "portfolio",
		Short: "compute portfolio KPIs",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)

			today, err := util.ParseDate(asOf)
			if err != nil {
				return err
			}

			report, err := deps.ApiHandler.PortfolioService.ComputePortfolio(context.Background(), service.PortfolioInput{
				User:  user,
				Mode:  domain.OwnershipMode(mode),
				Today: today,
			})
			if err != nil {
				return err
			}

			util.Pprint(report)
			return nil
		},
	}

	c.Flags().StringVar(&mode, "mode", "all", "ownership mode: portfolio, market, all")
	c.Flags().StringVar(&user, "user", "", "party name for mode=portfolio")
	c.Flags().StringVar(&asOf, "as-of", "", "valuation date (YYYY-MM-DD)")
	c.MarkFlagRequired("as-of")
	return c
}
