package domain

// Borrower carries the credit attributes the risk classifier consumes. FICO
// of 0 means "not present" (e.g. no cosigner).
type Borrower struct {
	BorrowerID        string  `json:"borrowerId"`
	BorrowerFico      float64 `json:"borrowerFico"`
	CosignerFico      float64 `json:"cosignerFico"`
	YearInSchool      string  `json:"yearInSchool"` // numeric string or grade-level code
	IsGraduateStudent bool    `json:"isGraduateStudent"`
	School            string  `json:"school"`
	OPEID             string  `json:"opeid"`
	DegreeType        string  `json:"degreeType"`
}

// SchoolRecord is one row of the institution reference table.
type SchoolRecord struct {
	OPEID          string  `csv:"opeid" json:"opeid"`
	Name           string  `csv:"name" json:"name"`
	GraduationRate float64 `csv:"graduation_rate" json:"graduationRate"` // 0-1
	MedianEarnings float64 `csv:"median_earnings" json:"medianEarnings"` // annual USD
}
