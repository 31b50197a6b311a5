package fgpt

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestInflationAdjustedValue(t *testing.T) {
	got, err := InflationAdjustedValue(M(1000), 10, decimal.NewFromFloat(DefaultInflationRate))
	if err != nil {
		t.Fatal(err)
	}
	if s := got.Adjusted.StringFixed(2); s != "744.09" {
		t.Errorf("InflationAdjustedValue(1000, 10, 3) = %s, want 744.09", s)
	}
	if got.Adjusted.String() != "$744.09" {
		t.Errorf("String() = %q, want $744.09", got.Adjusted.String())
	}

	zero, err := InflationAdjustedValue(M(1000), 0, decimal.NewFromFloat(5))
	if err != nil {
		t.Fatal(err)
	}
	if !zero.Adjusted.Equal(M(1000)) {
		t.Errorf("after 0 years = %v, want $1,000.00", zero.Adjusted)
	}

	deflation, err := InflationAdjustedValue(M(1000), 1, decimal.NewFromInt(-50))
	if err != nil {
		t.Fatal(err)
	}
	if !deflation.Adjusted.Equal(M(2000)) {
		t.Errorf("after a year at -50%% = %v, want $2,000.00", deflation.Adjusted)
	}
}

func TestInflationAdjustedValue_RateTooLow(t *testing.T) {
	for _, rate := range []int64{-100, -250} {
		if _, err := InflationAdjustedValue(M(1000), 10, decimal.NewFromInt(rate)); !errors.Is(err, ErrInflationRate) {
			t.Errorf("InflationAdjustedValue(1000, 10, %d) error = %v, want %v", rate, err, ErrInflationRate)
		}
	}
}

func TestDebtToIncome(t *testing.T) {
	tests := []struct {
		name    string
		debt    float64
		income  float64
		ratio   string
		healthy bool
		err     error
	}{
		{"zero income", 2000, 0, "", false, ErrIncomeNotPositive},
		{"negative income", 2000, -10, "", false, ErrIncomeNotPositive},
		{"healthy", 1500, 5000, "30.00%", true, nil},
		{"at threshold", 1800, 5000, "36.00%", false, nil},
		{"unhealthy", 2000, 4000, "50.00%", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DebtToIncome(M(tt.debt), M(tt.income))
			if !errors.Is(err, tt.err) {
				t.Fatalf("DebtToIncome() error = %v, want %v", err, tt.err)
			}
			if err != nil {
				return
			}
			if got.Ratio.String() != tt.ratio {
				t.Errorf("Ratio = %s, want %s", got.Ratio, tt.ratio)
			}
			if got.Healthy() != tt.healthy {
				t.Errorf("Healthy() = %v, want %v", got.Healthy(), tt.healthy)
			}
		})
	}
	if ErrIncomeNotPositive.Error() != "Income must be greater than zero." {
		t.Errorf("unexpected message %q", ErrIncomeNotPositive)
	}
}

func TestNetWorth(t *testing.T) {
	r := NetWorth(
		map[string]Money{"house": M(300000), "savings": M(20000)},
		map[string]Money{"mortgage": M(250000), "car": M(5000)},
	)
	if !r.TotalAssets.Equal(M(320000)) {
		t.Errorf("TotalAssets = %v", r.TotalAssets)
	}
	if !r.TotalDebts.Equal(M(255000)) {
		t.Errorf("TotalDebts = %v", r.TotalDebts)
	}
	if r.NetWorth.String() != "$65,000.00" {
		t.Errorf("NetWorth = %v, want $65,000.00", r.NetWorth)
	}

	// Amounts are not validated.
	neg := NetWorth(map[string]Money{"odd": M(-10)}, nil)
	if !neg.NetWorth.Equal(M(-10)) {
		t.Errorf("NetWorth = %v, want -$10.00", neg.NetWorth)
	}
	if got := Labels(r.Assets); len(got) != 2 || got[0] != "house" || got[1] != "savings" {
		t.Errorf("Labels() = %v", got)
	}
}
