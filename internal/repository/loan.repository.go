package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
)

type LoanRepository interface {
	Get(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	List(ctx context.Context) ([]domain.Loan, error)
	Add(ctx context.Context, loan domain.Loan) error
}

type loanRepositoryHandler struct {
	Db *sql.DB
}

func NewLoanRepository(db *sql.DB) LoanRepository {
	return &loanRepositoryHandler{Db: db}
}

func (r *loanRepositoryHandler) Get(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	row := r.Db.QueryRowContext(ctx, `
		SELECT loan_id, principal, nominal_rate, term_years, grace_years,
		       loan_start_date, COALESCE(purchase_date, ''), fee_waiver, role
		FROM loan WHERE loan_id = $1`, loanID)

	loan, err := scanLoan(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("loan %s not found", loanID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get loan %s: %w", loanID, err)
	}

	if err := r.attachEvents(ctx, loan); err != nil {
		return nil, err
	}
	if err := r.attachLots(ctx, loan); err != nil {
		return nil, err
	}

	return loan, nil
}

func (r *loanRepositoryHandler) List(ctx context.Context) ([]domain.Loan, error) {
	rows, err := r.Db.QueryContext(ctx, `
		SELECT loan_id, principal, nominal_rate, term_years, grace_years,
		       loan_start_date, COALESCE(purchase_date, ''), fee_waiver, role
		FROM loan ORDER BY loan_start_date, loan_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range loans {
		if err := r.attachEvents(ctx, &loans[i]); err != nil {
			return nil, err
		}
		if err := r.attachLots(ctx, &loans[i]); err != nil {
			return nil, err
		}
	}

	return loans, nil
}

func (r *loanRepositoryHandler) Add(ctx context.Context, loan domain.Loan) error {
	tx, err := r.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO loan (loan_id, principal, nominal_rate, term_years, grace_years,
		                  loan_start_date, purchase_date, fee_waiver, role)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`,
		loan.LoanID, loan.Principal, loan.NominalRate, loan.TermYears, loan.GraceYears,
		loan.LoanStartDate, loan.PurchaseDate, string(loan.FeeWaiver), string(loan.Role))
	if err != nil {
		return fmt.Errorf("failed to insert loan %s: %w", loan.LoanID, err)
	}

	for _, ev := range loan.Events {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO loan_event (loan_id, event_type, event_date, amount, months)
			VALUES ($1, $2, $3, $4, $5)`,
			loan.LoanID, string(ev.Type), ev.Date, ev.Amount, ev.Months)
		if err != nil {
			return fmt.Errorf("failed to insert event for loan %s: %w", loan.LoanID, err)
		}
	}

	for _, lot := range loan.OwnershipLots {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ownership_lot (lot_id, loan_id, owner_name, percentage, price_paid, purchase_date)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			lot.LotID, loan.LoanID, lot.User, lot.Percentage, lot.PricePaid, lot.PurchaseDate)
		if err != nil {
			return fmt.Errorf("failed to insert lot for loan %s: %w", loan.LoanID, err)
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLoan(row rowScanner) (*domain.Loan, error) {
	loan := domain.Loan{}
	var waiver, role string
	err := row.Scan(
		&loan.LoanID, &loan.Principal, &loan.NominalRate, &loan.TermYears, &loan.GraceYears,
		&loan.LoanStartDate, &loan.PurchaseDate, &waiver, &role,
	)
	if err != nil {
		return nil, err
	}
	loan.FeeWaiver = domain.FeeWaiver(waiver)
	loan.Role = domain.BorrowerRole(role)
	return &loan, nil
}

func (r *loanRepositoryHandler) attachEvents(ctx context.Context, loan *domain.Loan) error {
	rows, err := r.Db.QueryContext(ctx, `
		SELECT event_type, event_date, amount, months
		FROM loan_event WHERE loan_id = $1 ORDER BY event_date`, loan.LoanID)
	if err != nil {
		return fmt.Errorf("failed to load events for loan %s: %w", loan.LoanID, err)
	}
	defer rows.Close()

	for rows.Next() {
		ev := domain.LoanEvent{}
		var evType string
		if err := rows.Scan(&evType, &ev.Date, &ev.Amount, &ev.Months); err != nil {
			return fmt.Errorf("failed to scan event for loan %s: %w", loan.LoanID, err)
		}
		ev.Type = domain.LoanEventType(evType)
		loan.Events = append(loan.Events, ev)
	}
	return rows.Err()
}

func (r *loanRepositoryHandler) attachLots(ctx context.Context, loan *domain.Loan) error {
	rows, err := r.Db.QueryContext(ctx, `
		SELECT lot_id, owner_name, percentage, price_paid, purchase_date
		FROM ownership_lot WHERE loan_id = $1 ORDER BY purchase_date, lot_id`, loan.LoanID)
	if err != nil {
		return fmt.Errorf("failed to load lots for loan %s: %w", loan.LoanID, err)
	}
	defer rows.Close()

	for rows.Next() {
		lot := domain.OwnershipLot{}
		if err := rows.Scan(&lot.LotID, &lot.User, &lot.Percentage, &lot.PricePaid, &lot.PurchaseDate); err != nil {
			return fmt.Errorf("failed to scan lot for loan %s: %w", loan.LoanID, err)
		}
		loan.OwnershipLots = append(loan.OwnershipLots, lot)
	}
	return rows.Err()
}

// InMemoryLoanRepository backs tests and script runs where no database is
// wired.
type InMemoryLoanRepository struct {
	mu    sync.RWMutex
	loans map[uuid.UUID]domain.Loan
}

func NewInMemoryLoanRepository() *InMemoryLoanRepository {
	return &InMemoryLoanRepository{loans: map[uuid.UUID]domain.Loan{}}
}

func (r *InMemoryLoanRepository) Get(_ context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loan, ok := r.loans[loanID]
	if !ok {
		return nil, fmt.Errorf("loan %s not found", loanID)
	}
	return &loan, nil
}

func (r *InMemoryLoanRepository) List(_ context.Context) ([]domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loans := make([]domain.Loan, 0, len(r.loans))
	for _, loan := range r.loans {
		loans = append(loans, loan)
	}
	sort.Slice(loans, func(i, j int) bool {
		return loans[i].LoanID.String() < loans[j].LoanID.String()
	})
	return loans, nil
}

func (r *InMemoryLoanRepository) Add(_ context.Context, loan domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loans[loan.LoanID] = loan
	return nil
}
