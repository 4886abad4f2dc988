package app

import (
	"github.com/shopspring/decimal"
)

// installmentValue computes the amortized per-installment value in cents for
// a loan of `principal` cents at `rate` (e.g. 0.10 for 10%) over
// `installments` repayments:
//
//	round_half_up(principal * (1 + rate) / installments)
//
// The arithmetic runs on decimals so a rate like 0.10 never picks up binary
// floating-point error before rounding.
func installmentValue(principal int64, rate decimal.Decimal, installments int) int64 {
	total := decimal.NewFromInt(principal).Mul(decimal.NewFromInt(1).Add(rate))
	return total.DivRound(decimal.NewFromInt(int64(installments)), 0).IntPart()
}

// totalRepayable is the full amount owed on an approved loan, in cents,
// rounded half-up.
func totalRepayable(principal int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(principal).Mul(decimal.NewFromInt(1).Add(rate)).Round(0).IntPart()
}
