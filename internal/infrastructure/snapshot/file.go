// Package snapshot reads and writes investment and rate snapshots as YAML
// files and serves them through the repository ports.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

// File is the YAML layout of a snapshot.
type File struct {
	Investments []InvestmentRecord `yaml:"investments"`
	Rates       []RateRecord       `yaml:"rates,omitempty"`
}

// InvestmentRecord is one investment with its principal events.
type InvestmentRecord struct {
	ID           uuid.UUID          `yaml:"id"`
	BankID       uuid.UUID          `yaml:"bank_id,omitempty"`
	Principal    decimal.Decimal    `yaml:"principal"`
	DailyRate    decimal.Decimal    `yaml:"daily_rate"`
	Currency     money.Currency     `yaml:"currency"`
	StartDate    valueobject.Date   `yaml:"start_date"`
	MaturityDate *valueobject.Date  `yaml:"maturity_date,omitempty"`
	Status       string             `yaml:"status,omitempty"`
	Withdrawals  []WithdrawalRecord `yaml:"withdrawals,omitempty"`
	Rollovers    []RolloverRecord   `yaml:"rollovers,omitempty"`
}

// WithdrawalRecord is a withdrawal of amount plus fee.
type WithdrawalRecord struct {
	ID     uuid.UUID        `yaml:"id,omitempty"`
	Amount decimal.Decimal  `yaml:"amount"`
	Fee    decimal.Decimal  `yaml:"fee,omitempty"`
	Date   valueobject.Date `yaml:"date"`
}

// RolloverRecord adds amount to the principal.
type RolloverRecord struct {
	ID     uuid.UUID        `yaml:"id,omitempty"`
	Amount decimal.Decimal  `yaml:"amount"`
	Date   valueobject.Date `yaml:"date"`
}

// RateRecord is one historical FX rate.
type RateRecord struct {
	ID            uuid.UUID        `yaml:"id,omitempty"`
	From          money.Currency   `yaml:"from"`
	To            money.Currency   `yaml:"to"`
	Rate          decimal.Decimal  `yaml:"rate"`
	EffectiveDate valueobject.Date `yaml:"effective_date"`
	Status        string           `yaml:"status,omitempty"`
	CreatedAt     time.Time        `yaml:"created_at,omitempty"`
}

// Decode parses a YAML snapshot, rejecting unknown fields, and validates every
// record. The first invalid record aborts the load.
func Decode(r io.Reader) (*Store, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return f.Store()
}

// LoadFile reads the snapshot at path.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	store, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Store validates the records and builds an in-memory store from them.
func (f File) Store() (*Store, error) {
	investments := make([]model.Investment, 0, len(f.Investments))
	for i, rec := range f.Investments {
		inv, err := rec.toModel()
		if err != nil {
			return nil, fmt.Errorf("investments[%d]: %w", i, err)
		}
		investments = append(investments, inv)
	}

	rates := make([]model.FXRate, 0, len(f.Rates))
	for i, rec := range f.Rates {
		status := model.RateStatus(rec.Status)
		rate, err := model.NewFXRate(rec.ID, rec.From, rec.To, rec.Rate, rec.EffectiveDate, status, rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("rates[%d]: %w", i, err)
		}
		rates = append(rates, rate)
	}

	return NewStore(investments, rates)
}

func (rec InvestmentRecord) toModel() (model.Investment, error) {
	p := model.InvestmentParams{
		ID:           rec.ID,
		BankID:       rec.BankID,
		Principal:    rec.Principal,
		DailyRate:    rec.DailyRate,
		Currency:     rec.Currency,
		StartDate:    rec.StartDate,
		MaturityDate: rec.MaturityDate,
		Status:       model.InvestmentStatusActive,
	}
	if rec.Status != "" {
		status, err := model.ParseInvestmentStatus(rec.Status)
		if err != nil {
			return model.Investment{}, err
		}
		p.Status = status
	}
	for j, w := range rec.Withdrawals {
		ev, err := model.NewWithdrawal(w.ID, w.Amount, w.Fee, w.Date)
		if err != nil {
			return model.Investment{}, fmt.Errorf("withdrawals[%d]: %w", j, err)
		}
		p.Withdrawals = append(p.Withdrawals, ev)
	}
	for j, ro := range rec.Rollovers {
		ev, err := model.NewRollover(ro.ID, ro.Amount, ro.Date)
		if err != nil {
			return model.Investment{}, fmt.Errorf("rollovers[%d]: %w", j, err)
		}
		p.Rollovers = append(p.Rollovers, ev)
	}
	return model.NewInvestment(p)
}

// FromModel builds the YAML layout of investments and rates.
func FromModel(investments []model.Investment, rates []model.FXRate) File {
	f := File{
		Investments: make([]InvestmentRecord, 0, len(investments)),
		Rates:       make([]RateRecord, 0, len(rates)),
	}
	for _, inv := range investments {
		rec := InvestmentRecord{
			ID:           inv.ID(),
			BankID:       inv.BankID(),
			Principal:    inv.Principal(),
			DailyRate:    inv.DailyRate(),
			Currency:     inv.Currency(),
			StartDate:    inv.StartDate(),
			MaturityDate: inv.MaturityDate(),
			Status:       string(inv.Status()),
		}
		for _, w := range inv.Withdrawals() {
			rec.Withdrawals = append(rec.Withdrawals, WithdrawalRecord{ID: w.ID(), Amount: w.Amount(), Fee: w.Fee(), Date: w.Date()})
		}
		for _, ro := range inv.Rollovers() {
			rec.Rollovers = append(rec.Rollovers, RolloverRecord{ID: ro.ID(), Amount: ro.Amount(), Date: ro.Date()})
		}
		f.Investments = append(f.Investments, rec)
	}
	for _, r := range rates {
		f.Rates = append(f.Rates, RateRecord{
			ID:            r.ID(),
			From:          r.From(),
			To:            r.To(),
			Rate:          r.Rate().Rate(),
			EffectiveDate: r.EffectiveDate(),
			Status:        string(r.Status()),
			CreatedAt:     r.CreatedAt(),
		})
	}
	return f
}

// Encode writes f as YAML.
func (f File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}
