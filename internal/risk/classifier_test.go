package risk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
)

func TestBlendedFico(t *testing.T) {
	t.Run("no cosigner uses the borrower score", func(t *testing.T) {
		b := domain.Borrower{BorrowerFico: 700}

		require.Equal(t, 700.0, BlendedFico(b))
	})

	t.Run("strong cosigner lifts the blend", func(t *testing.T) {
		b := domain.Borrower{BorrowerFico: 650, CosignerFico: 800}

		require.InDelta(t, 0.7*650+0.3*800, BlendedFico(b), 1e-9)
	})

	t.Run("weak cosigner never drags the score down", func(t *testing.T) {
		b := domain.Borrower{BorrowerFico: 750, CosignerFico: 550}

		require.Equal(t, 750.0, BlendedFico(b))
	})
}

func TestYearInSchool(t *testing.T) {
	cases := map[string]int{
		"":          1,
		"1":         1,
		"3":         3,
		"9":         5,
		"FR":        1,
		"so":        2,
		"Junior":    3,
		"SR":        4,
		"graduate":  5,
		"gibberish": 1,
		"-2":        1,
		" 4 ":       4,
	}
	for raw, want := range cases {
		require.Equal(t, want, YearInSchool(raw), "input %q", raw)
	}
}

func TestDeriveRiskTier(t *testing.T) {
	assumptions := domain.DefaultAssumptions()

	t.Run("780 blended forces LOW regardless of year", func(t *testing.T) {
		b := domain.Borrower{BorrowerFico: 800, YearInSchool: "1"}

		require.Equal(t, domain.RiskTier_Low, DeriveRiskTier(b, assumptions))
	})

	t.Run("band A upperclassman is LOW", func(t *testing.T) {
		b := domain.Borrower{BorrowerFico: 765, YearInSchool: "3"}

		require.Equal(t, domain.RiskTier_Low, DeriveRiskTier(b, assumptions))
	})

	t.Run("band A freshman is MEDIUM", func(t *testing.T) {
		b := domain.Borrower{BorrowerFico: 765, YearInSchool: "1"}

		require.Equal(t, domain.RiskTier_Medium, DeriveRiskTier(b, assumptions))
	})

	t.Run("cosigner lifts a band C borrower into MEDIUM", func(t *testing.T) {
		// blend 0.7*700 + 0.3*780 = 724
		b := domain.Borrower{BorrowerFico: 700, CosignerFico: 780}

		require.Equal(t, domain.RiskTier_Medium, DeriveRiskTier(b, assumptions))
	})

	t.Run("band C is HIGH", func(t *testing.T) {
		b := domain.Borrower{BorrowerFico: 690}

		require.Equal(t, domain.RiskTier_High, DeriveRiskTier(b, assumptions))
	})

	t.Run("band E is VERY_HIGH", func(t *testing.T) {
		b := domain.Borrower{BorrowerFico: 600}

		require.Equal(t, domain.RiskTier_VeryHigh, DeriveRiskTier(b, assumptions))
	})

	t.Run("adding a cosigner never worsens the tier", func(t *testing.T) {
		order := map[domain.RiskTier]int{
			domain.RiskTier_Low:      0,
			domain.RiskTier_Medium:   1,
			domain.RiskTier_High:     2,
			domain.RiskTier_VeryHigh: 3,
		}
		for _, fico := range []float64{600, 650, 700, 750, 800} {
			alone := DeriveRiskTier(domain.Borrower{BorrowerFico: fico}, assumptions)
			withCosigner := DeriveRiskTier(domain.Borrower{BorrowerFico: fico, CosignerFico: 820}, assumptions)
			require.LessOrEqual(t, order[withCosigner], order[alone], "fico %f", fico)
		}
	})
}

func TestSchoolTier(t *testing.T) {
	assumptions := domain.DefaultAssumptions()

	t.Run("both thresholds met is tier 1", func(t *testing.T) {
		rec := domain.SchoolRecord{GraduationRate: 0.85, MedianEarnings: 70_000}

		require.Equal(t, domain.SchoolTier_1, SchoolTier(rec, assumptions))
	})

	t.Run("near miss on one dimension is tier 2", func(t *testing.T) {
		rec := domain.SchoolRecord{GraduationRate: 0.60, MedianEarnings: 30_000}

		require.Equal(t, domain.SchoolTier_2, SchoolTier(rec, assumptions))
	})

	t.Run("weak on both dimensions is tier 3", func(t *testing.T) {
		rec := domain.SchoolRecord{GraduationRate: 0.40, MedianEarnings: 25_000}

		require.Equal(t, domain.SchoolTier_3, SchoolTier(rec, assumptions))
	})

	t.Run("the zero-value record is tier 3", func(t *testing.T) {
		require.Equal(t, domain.SchoolTier_3, SchoolTier(domain.SchoolRecord{}, assumptions))
	})
}
