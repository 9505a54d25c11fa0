package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aurine/docgen/internal/document"
	"github.com/aurine/docgen/pkg/utils"
)

// --- History Commands ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show, render or delete saved report forms",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		items, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Brak zapisanych raportów.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tKLIENT\tOKRES\tUTWORZONO")
		for _, it := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.ClientName, it.Period, utils.FormatDateTimeWarsaw(it.CreatedAt))
		}
		return tw.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print the form fields of a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		item, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(item.Data))
		for k := range item.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s, %s (%s)\n", item.ClientName, item.Period, utils.FormatDateTimeWarsaw(item.CreatedAt))
		for _, k := range keys {
			fmt.Fprintf(out, "%s: %q\n", k, item.Data[k])
		}
		return nil
	},
}

var historyRenderCmd = &cobra.Command{
	Use:   "render [id]",
	Short: "Render a saved report again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		_, err := renderSaved(cmd, args[0], formatName, out)
		return err
	},
}

// renderSaved loads a saved report form and renders it like "render report".
func renderSaved(cmd *cobra.Command, id, formatName, out string) (string, error) {
	store, err := openHistory()
	if err != nil {
		return "", err
	}
	defer store.Close()

	item, err := store.Get(cmd.Context(), id)
	if err != nil {
		return "", err
	}
	doc, err := document.New(document.KindReport, document.StringFields(item.Data))
	if err != nil {
		return "", err
	}
	if err := doc.Validate(); err != nil {
		return "", formatValidation(err)
	}
	return renderTo(cmd, doc, formatName, out)
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved report",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

func init() {
	historyRenderCmd.Flags().StringP("format", "f", "pdf", "output format: pdf, png, jpeg, html")
	historyRenderCmd.Flags().StringP("out", "o", "", "output path (default: document file name)")
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyRenderCmd, historyDeleteCmd, historyClearCmd)
}
