package commands

import (
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "List the routes declared by a contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := loadConfiguredContract()
			if err != nil {
				return err
			}

			if viper.GetString("output") == OutputFormatJSON {
				return printJSON(contract.Rows)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Route", "Method", "Path", "Statuses")

			for _, row := range contract.Rows {
				statuses := make([]string, 0, len(row.Statuses))
				for _, status := range row.Statuses {
					statuses = append(statuses, strconv.Itoa(status))
				}

				declared := strings.Join(statuses, ", ")
				if declared == "" {
					declared = "any"
				}

				_ = table.Append(row.Key, row.Method, row.Template, declared)
			}

			_ = table.Render()

			return nil
		},
	}
}
