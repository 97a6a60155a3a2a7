package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank/naming"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List prediction names by descending validation score",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lis, err := naming.List(viper.GetString("paths.preds"), "-val.csv.gz")
		if err != nil {
			return tracer.Mask(err)
		}

		for _, n := range lis {
			fmt.Fprintln(cmd.OutOrStdout(), n.String())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
