package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"kharcha/internal/cli"
	"kharcha/internal/client"
	"kharcha/internal/core"
	"kharcha/internal/view"
)

func (a *app) listCmd() *cobra.Command {
	var (
		category string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			expenses, err := a.api().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}
			expenses = core.Filter(expenses, category)

			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(expenses)
			}
			return printExpenses(a.out, expenses)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", core.AllCategories, "only show this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON records")
	return cmd
}

func printExpenses(out io.Writer, expenses []core.Expense) error {
	if len(expenses) == 0 {
		_, err := fmt.Fprintln(out, cli.InfoStyle.Render(view.EmptyText))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tAMOUNT\tCATEGORY\tDATE")
	for _, e := range expenses {
		r := view.NewRow(e)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Username, r.Amount, r.Category, r.Date)
	}
	fmt.Fprintf(w, "\t\t%s\t\t\n", core.Total(expenses).Display())
	return w.Flush()
}

// formFlags registers the four form inputs on cmd.
func formFlags(cmd *cobra.Command, f *client.Form) {
	cmd.Flags().StringVarP(&f.Username, "username", "u", "", "who spent it")
	cmd.Flags().StringVarP(&f.Amount, "amount", "a", "", "amount, e.g. 40 or 12.50")
	cmd.Flags().StringVarP(&f.Category, "category", "c", "", "one of: Petrol, Dawa, Khana, Shopping, Travel, Entertainment, Other")
	cmd.Flags().StringVarP(&f.Date, "date", "d", "", "date as YYYY-MM-DD")
}

func (a *app) addCmd() *cobra.Command {
	var form client.Form
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if form.Date == "" {
				form.Date = time.Now().Format("2006-01-02")
			}
			if err := a.api().Create(cmd.Context(), form); err != nil {
				return fmt.Errorf("failed to add expense: %w", err)
			}
			_, err := fmt.Fprintln(a.out, cli.FormatSuccess("Expense Added Successfully!"))
			return err
		},
	}
	formFlags(cmd, &form)
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var form client.Form
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit an expense",
		Long: `Edit an expense. Flags that are not given keep the current value; the
record is then saved as a whole.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := a.api()
			expenses, err := api.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			id := args[0]
			var current *core.Expense
			for i := range expenses {
				if expenses[i].ID == id {
					current = &expenses[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("no expense with id %q", id)
			}

			merged := client.Form{
				Username: current.Username,
				Amount:   current.Amount.String(),
				Category: current.Category,
				Date:     current.Date.FormValue(),
			}
			flags := cmd.Flags()
			if flags.Changed("username") {
				merged.Username = form.Username
			}
			if flags.Changed("amount") {
				merged.Amount = form.Amount
			}
			if flags.Changed("category") {
				merged.Category = form.Category
			}
			if flags.Changed("date") {
				merged.Date = form.Date
			}

			if err := api.Update(cmd.Context(), id, merged); err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}
			_, err = fmt.Fprintln(a.out, cli.FormatSuccess("Expense Updated Successfully!"))
			return err
		},
	}
	formFlags(cmd, &form)
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}
			_, err := fmt.Fprintln(a.out, cli.FormatSuccess("Expense Deleted Successfully!"))
			return err
		},
	}
}
