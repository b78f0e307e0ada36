package snapshot

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

// IDs of the reference records.
var (
	BankID1 = uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	BankID2 = uuid.MustParse("00000000-0000-0000-0000-0000000000b2")

	HighYieldInvestmentID = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	MaturedInvestmentID   = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	WithdrawnInvestmentID = uuid.MustParse("00000000-0000-0000-0000-000000000103")
	WithdrawalID          = uuid.MustParse("00000000-0000-0000-0000-000000000201")
)

// ReferenceInvestments returns the three reference NGN deposits, dated
// relative to asOf:
//   - 50,000,000 at 0.045%/day opened 45 days earlier
//   - 25,000,000 at 0.035%/day opened 400 days earlier, matured after 365
//   - 100,000,000 at 0.05%/day opened 90 days earlier, with a 10,000,000
//     withdrawal (fee 10,000) 30 days before asOf
func ReferenceInvestments(asOf valueobject.Date) []model.Investment {
	matured := asOf.AddDays(-35)

	w, err := model.NewWithdrawal(WithdrawalID, decimal.NewFromInt(10_000_000), decimal.NewFromInt(10_000), asOf.AddDays(-30))
	if err != nil {
		panic(err)
	}

	return []model.Investment{
		model.ReconstructInvestment(model.InvestmentParams{
			ID:        HighYieldInvestmentID,
			BankID:    BankID1,
			Principal: decimal.NewFromInt(50_000_000),
			DailyRate: decimal.RequireFromString("0.00045"),
			Currency:  money.NGN,
			StartDate: asOf.AddDays(-45),
			Status:    model.InvestmentStatusActive,
		}),
		model.ReconstructInvestment(model.InvestmentParams{
			ID:           MaturedInvestmentID,
			BankID:       BankID2,
			Principal:    decimal.NewFromInt(25_000_000),
			DailyRate:    decimal.RequireFromString("0.00035"),
			Currency:     money.NGN,
			StartDate:    asOf.AddDays(-400),
			MaturityDate: &matured,
			Status:       model.InvestmentStatusMatured,
		}),
		model.ReconstructInvestment(model.InvestmentParams{
			ID:          WithdrawnInvestmentID,
			BankID:      BankID1,
			Principal:   decimal.NewFromInt(100_000_000),
			DailyRate:   decimal.RequireFromString("0.0005"),
			Currency:    money.NGN,
			StartDate:   asOf.AddDays(-90),
			Status:      model.InvestmentStatusActive,
			Withdrawals: []model.Withdrawal{w},
		}),
	}
}

// ReferenceRates returns a USD→NGN table with a superseded rate of 1540.00
// effective the day before asOf and 1550.25 effective on asOf.
func ReferenceRates(asOf valueobject.Date) []model.FXRate {
	created := asOf.Time().Add(9 * time.Hour)
	yesterday, err := model.NewFXRate(uuid.Nil, money.USD, money.NGN, decimal.RequireFromString("1540.00"),
		asOf.AddDays(-1), model.RateStatusSuperseded, created.Add(-24*time.Hour))
	if err != nil {
		panic(err)
	}
	today, err := model.NewFXRate(uuid.Nil, money.USD, money.NGN, decimal.RequireFromString("1550.25"),
		asOf, model.RateStatusActive, created)
	if err != nil {
		panic(err)
	}
	return []model.FXRate{yesterday, today}
}
