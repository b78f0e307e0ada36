package event

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/events"
)

const (
	AggregateTypeInvestment = "Investment"
	AggregateTypePortfolio  = "Portfolio"

	TypeInvestmentAccrued = "treasury.investment.accrued"
	TypePortfolioValued   = "treasury.portfolio.valued"
)

type investmentAccruedPayload struct {
	InvestmentID uuid.UUID `json:"investment_id"`
	AsOf         string    `json:"as_of"`
	Interest     string    `json:"interest"`
	Principal    string    `json:"principal"`
	Currency     string    `json:"currency"`
	Reported     string    `json:"reported,omitempty"`
	ReportedIn   string    `json:"reported_in,omitempty"`
	Conversion   string    `json:"conversion"`
}

// InvestmentAccrued is emitted when an investment's ROI is computed as of a date.
type InvestmentAccrued struct {
	events.BaseEvent
	InvestmentID uuid.UUID
	AsOf         valueobject.Date
	Interest     string
	Principal    string
	Currency     string
	Conversion   model.Conversion
}

func NewInvestmentAccrued(inv model.Investment, asOf valueobject.Date, res model.AccrualResult, reportedIn string, conv model.Conversion) InvestmentAccrued {
	p := investmentAccruedPayload{
		InvestmentID: inv.ID(),
		AsOf:         asOf.String(),
		Interest:     res.Interest.String(),
		Principal:    res.Principal.String(),
		Currency:     inv.Currency().Code(),
		Conversion:   string(conv.Method),
	}
	if conv.Converted() && reportedIn != "" {
		p.Reported = conv.Amount.String()
		p.ReportedIn = reportedIn
	}
	payload, _ := json.Marshal(p)

	return InvestmentAccrued{
		BaseEvent:    events.NewBaseEvent(TypeInvestmentAccrued, inv.ID(), AggregateTypeInvestment, payload),
		InvestmentID: inv.ID(),
		AsOf:         asOf,
		Interest:     p.Interest,
		Principal:    p.Principal,
		Currency:     p.Currency,
		Conversion:   conv,
	}
}

type portfolioValuedPayload struct {
	ValuationID   uuid.UUID   `json:"valuation_id"`
	AsOf          string      `json:"as_of"`
	Currency      string      `json:"currency,omitempty"`
	TotalInterest string      `json:"total_interest"`
	Investments   int         `json:"investments"`
	Partial       bool        `json:"partial"`
	Unconvertible []uuid.UUID `json:"unconvertible,omitempty"`
}

// PortfolioValued is emitted when a portfolio's interest is aggregated.
// Every valuation is its own aggregate.
type PortfolioValued struct {
	events.BaseEvent
	ValuationID   uuid.UUID
	TotalInterest string
	Partial       bool
}

func NewPortfolioValued(v model.PortfolioValuation) PortfolioValued {
	id := uuid.New()
	p := portfolioValuedPayload{
		ValuationID:   id,
		AsOf:          v.AsOf.String(),
		Currency:      v.Currency.Code(),
		TotalInterest: v.TotalInterest.String(),
		Investments:   len(v.Contributions),
		Partial:       v.Partial(),
		Unconvertible: v.Unconvertible(),
	}
	payload, _ := json.Marshal(p)

	return PortfolioValued{
		BaseEvent:     events.NewBaseEvent(TypePortfolioValued, id, AggregateTypePortfolio, payload),
		ValuationID:   id,
		TotalInterest: p.TotalInterest,
		Partial:       p.Partial,
	}
}
