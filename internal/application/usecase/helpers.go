package usecase

import (
	"fmt"

	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

// Kafka topics the use cases publish to.
const (
	TopicInvestmentAccrued = "treasury.investment.accrued"
	TopicPortfolioValued   = "treasury.portfolio.valued"
)

// parseTargetCurrency returns the zero Currency for an empty code.
func parseTargetCurrency(code string) (money.Currency, error) {
	if code == "" {
		return money.Currency{}, nil
	}
	cur, err := money.NewCurrency(code)
	if err != nil {
		return money.Currency{}, fmt.Errorf("target currency: %w", err)
	}
	return cur, nil
}

func dateOrToday(d valueobject.Date) valueobject.Date {
	if d.IsZero() {
		return valueobject.Today()
	}
	return d
}
