package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
)

type BorrowerRepository interface {
	GetByLoanID(ctx context.Context, loanID uuid.UUID) (*domain.Borrower, error)
}

type borrowerRepositoryHandler struct {
	Db *sql.DB
}

func NewBorrowerRepository(db *sql.DB) BorrowerRepository {
	return &borrowerRepositoryHandler{Db: db}
}

func (r *borrowerRepositoryHandler) GetByLoanID(ctx context.Context, loanID uuid.UUID) (*domain.Borrower, error) {
	row := r.Db.QueryRowContext(ctx, `
		SELECT b.borrower_id, b.borrower_fico, COALESCE(b.cosigner_fico, 0),
		       COALESCE(b.year_in_school, ''), b.is_graduate_student,
		       COALESCE(b.school, ''), COALESCE(b.opeid, ''), COALESCE(b.degree_type, '')
		FROM borrower b
		JOIN loan l ON l.borrower_id = b.borrower_id
		WHERE l.loan_id = $1`, loanID)

	b := domain.Borrower{}
	err := row.Scan(
		&b.BorrowerID, &b.BorrowerFico, &b.CosignerFico,
		&b.YearInSchool, &b.IsGraduateStudent,
		&b.School, &b.OPEID, &b.DegreeType,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no borrower for loan %s", loanID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get borrower for loan %s: %w", loanID, err)
	}

	return &b, nil
}

// InMemoryBorrowerRepository backs tests and script runs.
type InMemoryBorrowerRepository struct {
	mu        sync.RWMutex
	borrowers map[uuid.UUID]domain.Borrower
}

func NewInMemoryBorrowerRepository() *InMemoryBorrowerRepository {
	return &InMemoryBorrowerRepository{borrowers: map[uuid.UUID]domain.Borrower{}}
}

func (r *InMemoryBorrowerRepository) Set(loanID uuid.UUID, b domain.Borrower) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.borrowers[loanID] = b
}

func (r *InMemoryBorrowerRepository) GetByLoanID(_ context.Context, loanID uuid.UUID) (*domain.Borrower, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.borrowers[loanID]
	if !ok {
		return nil, fmt.Errorf("no borrower for loan %s", loanID)
	}
	return &b, nil
}
