package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/internal/infrastructure/snapshot"
)

func newSampleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Write the reference snapshot as YAML",
		Long: `Write three reference NGN deposits and a USD/NGN rate table, dated
relative to --as-of, to standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asOf := valueobject.Today()
			if opts.asOf != "" {
				d, err := valueobject.ParseDate(opts.asOf)
				if err != nil {
					return fmt.Errorf("--as-of: %w", err)
				}
				asOf = d
			}
			f := snapshot.FromModel(snapshot.ReferenceInvestments(asOf), snapshot.ReferenceRates(asOf))
			return f.Encode(cmd.OutOrStdout())
		},
	}
}
