package repository

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
)

// DefaultOPEID keys the explicit fallback record in the school reference
// table. Unmatched institutions resolve to it, which classifies as Tier 3
// under the default thresholds.
const DefaultOPEID = "DEFAULT"

// SchoolDirectory looks up institutions by OPEID. Lookup never fails: an
// unmatched identifier degrades to the DEFAULT record and is logged as a
// diagnostic.
type SchoolDirectory interface {
	Lookup(opeid string) domain.SchoolRecord
}

type csvSchoolDirectory struct {
	logger   *zap.SugaredLogger
	snapshot atomic.Pointer[map[string]domain.SchoolRecord]
}

// NewCSVSchoolDirectory loads the institution reference table from a CSV
// file with columns opeid, name, graduation_rate, median_earnings.
func NewCSVSchoolDirectory(path string, logger *zap.SugaredLogger) (*csvSchoolDirectory, error) {
	d := &csvSchoolDirectory{logger: logger}
	if err := d.load(path); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *csvSchoolDirectory) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open school reference file %s: %w", path, err)
	}
	defer f.Close()

	rows := []domain.SchoolRecord{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return fmt.Errorf("could not parse school reference file %s: %w", path, err)
	}

	byOPEID := make(map[string]domain.SchoolRecord, len(rows))
	for _, row := range rows {
		byOPEID[row.OPEID] = row
	}
	if _, ok := byOPEID[DefaultOPEID]; !ok {
		byOPEID[DefaultOPEID] = domain.SchoolRecord{OPEID: DefaultOPEID, Name: "Unknown institution"}
	}

	d.snapshot.Store(&byOPEID)
	return nil
}

func (d *csvSchoolDirectory) Lookup(opeid string) domain.SchoolRecord {
	table := *d.snapshot.Load()
	if rec, ok := table[opeid]; ok {
		return rec
	}
	d.logger.Debugw("school not found in reference table, using default record", "opeid", opeid)
	return table[DefaultOPEID]
}

// StaticSchoolDirectory serves a fixed map, used by tests.
type StaticSchoolDirectory struct {
	Records map[string]domain.SchoolRecord
}

func (d StaticSchoolDirectory) Lookup(opeid string) domain.SchoolRecord {
	if rec, ok := d.Records[opeid]; ok {
		return rec
	}
	return domain.SchoolRecord{OPEID: DefaultOPEID, Name: "Unknown institution"}
}
