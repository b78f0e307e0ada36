package service

import "github.com/shopspring/decimal"

// FXImpact is the reporting-currency gain or loss on nativeROI from the rate
// moving between originalRate and currentRate.
func FXImpact(nativeROI, originalRate, currentRate decimal.Decimal) decimal.Decimal {
	return nativeROI.Mul(currentRate.Sub(originalRate))
}
