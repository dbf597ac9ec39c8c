package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
)

// CurveProvider serves the risk-curve reference table. GetCurve fails with
// domain.ErrDataUnavailable until the first Load completes; computation
// should be deferred, not defaulted.
type CurveProvider interface {
	GetCurve(tier domain.RiskTier) (*domain.RiskCurve, error)
}

type fileCurveProvider struct {
	path string
	// reloads swap the whole snapshot atomically so in-flight valuations
	// keep the table they started with
	snapshot atomic.Pointer[domain.CurveTable]
}

type curveFile struct {
	Curves domain.CurveTable `json:"curves"`
}

// NewFileCurveProvider reads the risk-curve table from a JSON reference
// file. The returned provider rejects lookups until Load succeeds.
func NewFileCurveProvider(path string) *fileCurveProvider {
	return &fileCurveProvider{path: path}
}

func (p *fileCurveProvider) Load() error {
	f, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("could not open curve file %s: %w", p.path, err)
	}

	parsed := curveFile{}
	if err := json.Unmarshal(f, &parsed); err != nil {
		return fmt.Errorf("could not parse curve file %s: %w", p.path, err)
	}
	if len(parsed.Curves) == 0 {
		return fmt.Errorf("curve file %s contains no curves", p.path)
	}

	p.snapshot.Store(&parsed.Curves)
	return nil
}

func (p *fileCurveProvider) GetCurve(tier domain.RiskTier) (*domain.RiskCurve, error) {
	table := p.snapshot.Load()
	if table == nil {
		return nil, fmt.Errorf("risk curves: %w", domain.ErrDataUnavailable)
	}
	curve, ok := (*table)[tier]
	if !ok {
		return nil, fmt.Errorf("no risk curve for tier %s", tier)
	}
	return &curve, nil
}

// StaticCurveProvider wraps an in-memory table, used by tests and scripts.
type StaticCurveProvider struct {
	Table domain.CurveTable
}

func (p StaticCurveProvider) GetCurve(tier domain.RiskTier) (*domain.RiskCurve, error) {
	if p.Table == nil {
		return nil, fmt.Errorf("risk curves: %w", domain.ErrDataUnavailable)
	}
	curve, ok := p.Table[tier]
	if !ok {
		return nil, fmt.Errorf("no risk curve for tier %s", tier)
	}
	return &curve, nil
}
