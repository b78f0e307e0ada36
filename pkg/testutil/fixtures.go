package testutil

import (
	"github.com/bibbank/treasury/internal/infrastructure/snapshot"
)

// Fixed UUIDs for deterministic testing, shared with the reference snapshot.
var (
	TestBankID1 = snapshot.BankID1
	TestBankID2 = snapshot.BankID2

	HighYieldInvestmentID = snapshot.HighYieldInvestmentID
	MaturedInvestmentID   = snapshot.MaturedInvestmentID
	WithdrawnInvestmentID = snapshot.WithdrawnInvestmentID
	WithdrawalID          = snapshot.WithdrawalID
)

// ReferenceInvestments returns the three reference NGN deposits dated
// relative to asOf. See snapshot.ReferenceInvestments.
var ReferenceInvestments = snapshot.ReferenceInvestments

// ReferenceRates returns the reference USD→NGN rate table.
var ReferenceRates = snapshot.ReferenceRates
