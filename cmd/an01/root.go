package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "an01",
		Short: "Analyse AN01 tender evaluation workbooks",
		Long: `an01 extracts tender metadata, supplier offers and savings statistics
from AN01 evaluation workbooks (.xlsx or .xls) and prints them as JSON.`,
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCmd(), newTokenCmd())
	return root
}
