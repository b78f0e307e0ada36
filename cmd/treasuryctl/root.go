package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bibbank/treasury/internal/application/usecase"
	"github.com/bibbank/treasury/internal/domain/service"
	infraKafka "github.com/bibbank/treasury/internal/infrastructure/kafka"
	"github.com/bibbank/treasury/internal/infrastructure/snapshot"
	grpcPresentation "github.com/bibbank/treasury/internal/presentation/grpc"
	"github.com/bibbank/treasury/pkg/money"
	"github.com/bibbank/treasury/pkg/observability"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	snapshotPath  string
	asOf          string
	target        string
	allowNegative bool
	verbose       bool
	compact       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "treasuryctl",
		Short: "Accrue and value treasury time deposits from a snapshot",
		Long: `treasuryctl computes accrued interest for treasury time deposits.

It reads investments, withdrawals, rollovers and FX rates from a YAML
snapshot and prints results as JSON:
  - accrue:    interest accrued by one investment
  - portfolio: interest across investments, optionally in one currency
  - series:    one accrued-interest point per day
  - sample:    write the reference snapshot
  - import:    load a snapshot into PostgreSQL
  - migrate:   apply or roll back the PostgreSQL schema

Example:
  treasuryctl sample --as-of 2025-06-30 > treasury.yaml
  treasuryctl portfolio -f treasury.yaml --as-of 2025-06-30 --target USD`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.snapshotPath, "file", "f", "treasury.yaml", "path to the YAML snapshot")
	flags.StringVar(&opts.asOf, "as-of", "", "valuation date YYYY-MM-DD (default today)")
	flags.StringVarP(&opts.target, "target", "t", "", "reporting currency ("+supportedCodes()+"); empty reports natively")
	flags.BoolVar(&opts.allowNegative, "allow-negative-rates", false, "accept negative daily rates")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log domain events to stderr")
	flags.BoolVar(&opts.compact, "compact", false, "print single-line JSON")

	cmd.AddCommand(
		newAccrueCmd(opts),
		newPortfolioCmd(opts),
		newSeriesCmd(opts),
		newSampleCmd(opts),
		newImportCmd(opts),
		newMigrateCmd(),
	)
	return cmd
}

// handler wires the use cases over the snapshot store behind the gRPC
// handler, so output matches the service's wire messages.
func (o *rootOptions) handler(stderr io.Writer) (*grpcPresentation.Handler, error) {
	store, err := snapshot.LoadFile(o.snapshotPath)
	if err != nil {
		return nil, err
	}

	level := "error"
	if o.verbose {
		level = "debug"
	}
	logger := observability.InitLogger(observability.LogConfig{Level: level, Format: "text", Output: stderr})

	var engineOpts []service.AccrualOption
	if o.allowNegative {
		engineOpts = append(engineOpts, service.WithNegativeRates())
	}
	engine := service.NewAccrualEngine(engineOpts...)
	converter := service.NewCurrencyConverter(service.NewRateResolver())
	publisher := infraKafka.LogPublisher{Logger: logger}

	return grpcPresentation.NewHandler(
		usecase.NewGetInvestmentROI(store, store, publisher, engine, converter, logger),
		usecase.NewGetPortfolioROI(store, store, publisher, service.NewPortfolioAggregator(engine, converter), money.Currency{}, logger),
		usecase.NewGetDailySeries(store, store, service.NewSeriesGenerator(engine, converter), logger),
		logger,
	), nil
}

func (o *rootOptions) print(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if !o.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func supportedCodes() string {
	codes := make([]string, 0, len(money.Supported()))
	for _, c := range money.Supported() {
		codes = append(codes, c.Code())
	}
	return strings.Join(codes, ", ")
}
