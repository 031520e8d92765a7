package paymentsview

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Render writes the tab bar with counts followed by the visible rows.
func (v *View) Render(w io.Writer) error {
	active := v.ActiveTab()
	var bar []string
	for _, tc := range v.TabCounts() {
		label := fmt.Sprintf("%s (%d)", tc.Label, tc.Count)
		if tc.Tab == active {
			label = "[" + label + "]"
		}
		bar = append(bar, label)
	}
	if _, err := fmt.Fprintln(w, strings.Join(bar, "  ")); err != nil {
		return err
	}

	state := v.SortState()
	if _, err := fmt.Fprintf(w, "sorted by %s %s\n\n", state.Field, state.Direction); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tBUYER\tSELLER\tAMOUNT\tMETHOD\tDETAILS\tSTATUS\tDATE")
	rows := v.Rows()
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s (%s)\t%s\n",
			r.OrderID, r.Buyer, r.Seller, r.Amount, r.Method, r.Details, r.Status, r.StatusColor, r.Date)
	}
	if len(rows) == 0 {
		fmt.Fprintln(tw, "no payments found")
	}
	return tw.Flush()
}
