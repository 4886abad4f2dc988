package app

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInstallmentValue(t *testing.T) {
	tests := []struct {
		name         string
		principal    int64
		rate         string
		installments int
		want         int64
	}{
		{
			name:         "ten percent over twelve installments rounds down",
			principal:    500000,
			rate:         "0.10",
			installments: 12,
			want:         45833,
		},
		{
			name:         "exact division keeps cents intact",
			principal:    120000,
			rate:         "0.10",
			installments: 12,
			want:         11000,
		},
		{
			name:         "half cent rounds up",
			principal:    50,
			rate:         "0",
			installments: 4,
			want:         13,
		},
		{
			name:         "below half cent rounds down",
			principal:    100,
			rate:         "0",
			installments: 3,
			want:         33,
		},
		{
			name:         "zero rate single installment returns principal",
			principal:    987654,
			rate:         "0",
			installments: 1,
			want:         987654,
		},
		{
			name:         "rate applies before division",
			principal:    100000,
			rate:         "0.05",
			installments: 10,
			want:         10500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := decimal.NewFromString(tt.rate)
			if err != nil {
				t.Fatalf("invalid rate fixture %q: %v", tt.rate, err)
			}
			got := installmentValue(tt.principal, rate, tt.installments)
			if got != tt.want {
				t.Fatalf("expected installment=%d, got %d", tt.want, got)
			}
		})
	}
}

func TestTotalRepayable(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		rate      string
		want      int64
	}{
		{
			name:      "ten percent on round principal",
			principal: 500000,
			rate:      "0.10",
			want:      550000,
		},
		{
			name:      "fractional cents round half up",
			principal: 335,
			rate:      "0.10",
			want:      369,
		},
		{
			name:      "fractional cents below half round down",
			principal: 333,
			rate:      "0.10",
			want:      366,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := decimal.NewFromString(tt.rate)
			if err != nil {
				t.Fatalf("invalid rate fixture %q: %v", tt.rate, err)
			}
			got := totalRepayable(tt.principal, rate)
			if got != tt.want {
				t.Fatalf("expected total=%d, got %d", tt.want, got)
			}
		})
	}
}
