package main

import (
	"github.com/spf13/cobra"

	grpcPresentation "github.com/bibbank/treasury/internal/presentation/grpc"
)

func newAccrueCmd(opts *rootOptions) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "accrue",
		Short: "Print the interest accrued by one investment",
		Example: `  treasuryctl accrue -f treasury.yaml --id 00000000-0000-0000-0000-000000000103 --as-of 2025-06-30
  treasuryctl accrue --id 00000000-0000-0000-0000-000000000101 --target USD`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := opts.handler(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			resp, err := h.GetInvestmentROI(commandContext(cmd), &grpcPresentation.GetInvestmentROIRequest{
				InvestmentID:   id,
				AsOfDate:       opts.asOf,
				TargetCurrency: opts.target,
			})
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "investment ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newPortfolioCmd(opts *rootOptions) *cobra.Command {
	var ids []string
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Print interest accrued across investments",
		Long: `Aggregate accrued interest across the selected investments, or all of
them when no --id is given. With --target, each contribution is converted
at the rate effective on the valuation date; contributions without a rate
are listed as unconvertible and the result is marked partial.`,
		Example: `  treasuryctl portfolio -f treasury.yaml --as-of 2025-06-30 --target USD`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := opts.handler(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			resp, err := h.GetPortfolioROI(commandContext(cmd), &grpcPresentation.GetPortfolioROIRequest{
				InvestmentIDs:  ids,
				AsOfDate:       opts.asOf,
				TargetCurrency: opts.target,
			})
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringSliceVar(&ids, "id", nil, "investment IDs to include (repeatable; default all)")
	return cmd
}

func newSeriesCmd(opts *rootOptions) *cobra.Command {
	var id, start string
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print accrued interest for every day of a range",
		Long: `Print one point per day from --start to --as-of, inclusive. --start
defaults to the investment's start date. An empty list is printed when
--start is after --as-of.`,
		Example: `  treasuryctl series -f treasury.yaml --id 00000000-0000-0000-0000-000000000101 --start 2025-06-01 --as-of 2025-06-30`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := opts.handler(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			resp, err := h.GetDailySeries(commandContext(cmd), &grpcPresentation.GetDailySeriesRequest{
				InvestmentID:   id,
				StartDate:      start,
				EndDate:        opts.asOf,
				TargetCurrency: opts.target,
			})
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "investment ID (required)")
	cmd.Flags().StringVar(&start, "start", "", "first day YYYY-MM-DD (default the investment start date)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
