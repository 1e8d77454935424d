package commands

import (
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "splitit",
	Short: "SplitIt - receipt splitting toolbox",
	Long: `SplitIt computes who owes what on a shared receipt: per-item shares
(including weighted splits), proportional tax and tip, and settlement status
against recorded payments.

The settle command runs the engine offline on receipt and payment JSON files,
with no server or database involved.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			figure.NewFigure("SplitIt", "", true).Print()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("banner", false, "print the startup banner")
}
