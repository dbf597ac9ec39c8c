package util

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

func DecimalPointer(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func FloatPointer(f float64) *float64 {
	return &f
}

func StrPointer(s string) *string {
	return &s
}

// SanitizeFloat normalizes NaN/Inf to zero so division edge cases never leak
// into aggregate sums or JSON responses.
func SanitizeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FloatPointerOrNil maps NaN/Inf to nil, used for sentinel valuation fields
// where "no value" must survive JSON round-trips.
func FloatPointerOrNil(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
