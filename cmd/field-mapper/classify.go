package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"field-mapper/internal/classify"
	"field-mapper/internal/schema"
)

func newClassifyCmd(root *rootOptions) *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "classify [column...]",
		Short: "Show the system-field classification and priority of columns",
		Example: `  field-mapper classify createdon statecode new_region
  field-mapper classify --schema account.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cols []schema.Column

			if schemaPath != "" {
				s, err := schema.LoadFile(schemaPath)
				if err != nil {
					return err
				}

				cols = s.Columns()
			}

			for _, name := range args {
				cols = append(cols, schema.Column{Name: name})
			}

			if len(cols) == 0 {
				return errors.New("no columns given: pass names or --schema")
			}

			root.logger.Debug("classifying columns")

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Column", "System", "Category", "Priority")

			for _, col := range cols {
				col = classify.Column(classify.DefaultPolicy{}, col)

				if err := table.Append([]string{
					col.Name,
					strconv.FormatBool(col.IsSystemField()),
					col.SystemCategory().String(),
					strconv.Itoa(classify.Priority(col)),
				}); err != nil {
					return fmt.Errorf("failed to add row for %s: %w", col.Name, err)
				}
			}

			return table.Render()
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Classify every column of this schema YAML document")

	return cmd
}
