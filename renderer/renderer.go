// Package renderer turns folio reports into markdown suitable for terminal
// rendering.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/folio"
)

// ReportMarkdown renders the full valuation report.
func ReportMarkdown(r *folio.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Valuation (%s)\n\n", r.ReportingCurrency)

	if len(r.Rates) > 0 {
		fmt.Fprintf(&b, "Exchange rates into %s:\n\n", r.ReportingCurrency)
		fmt.Fprintln(&b, "| Currency | Rate |")
		fmt.Fprintln(&b, "|:---|---:|")
		for _, rate := range r.Rates {
			fmt.Fprintf(&b, "| %s | %.4f |\n", rate.Currency, rate.Rate)
		}
		fmt.Fprintln(&b)
	}

	for _, account := range r.Accounts {
		fmt.Fprintf(&b, "## %s (%s)\n\n", account.Name, account.Broker)
		fmt.Fprintf(&b, "| Ticker | Quantity | Price | Value (Native) | Value (%s) |\n", r.ReportingCurrency)
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
		for _, h := range account.Holdings {
			ticker := h.Ticker
			if h.Skipped {
				ticker += " *"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				ticker, h.Quantity, h.Price, h.Native, h.Value)
		}
		for _, c := range account.Cash {
			fmt.Fprintf(&b, "| Cash (%s) | | | %s | %s |\n", c.Currency, c.Native, c.Value)
		}
		fmt.Fprintf(&b, "\nAccount total: **%s**\n\n", account.TotalValue)
	}

	fmt.Fprintln(&b, "## Summary")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "- Total portfolio value: **%s**\n", r.TotalValue)
	fmt.Fprintf(&b, "- Active portfolio value: %s\n", r.ActiveValue)
	fmt.Fprintf(&b, "- Allocation drift: %s (threshold %s)\n", r.Drift, r.Threshold)
	if r.Rebalance {
		fmt.Fprintf(&b, "- Recommendation: **REBALANCE**\n")
	} else {
		fmt.Fprintf(&b, "- Recommendation: **HOLD**\n")
	}
	fmt.Fprintln(&b)

	if len(r.Allocations) > 0 {
		fmt.Fprintln(&b, "## Current Allocations")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Ticker | Weight |")
		fmt.Fprintln(&b, "|:---|---:|")
		for _, ticker := range r.ActiveTickers() {
			fmt.Fprintf(&b, "| %s | %.2f%% |\n", ticker, r.Allocations[ticker]*100)
		}
		fmt.Fprintln(&b)
	}

	if len(r.Plan) > 0 {
		b.WriteString(PlanMarkdown(r.Plan))
	}
	return b.String()
}

// PlanMarkdown renders the rebalancing plan.
func PlanMarkdown(plan []folio.Trade) string {
	var b strings.Builder
	fmt.Fprintln(&b, "## Rebalancing Plan")
	fmt.Fprintln(&b)
	if len(plan) == 0 {
		fmt.Fprintln(&b, "Nothing to trade, the portfolio is already balanced.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Action | Value | Ticker |")
	fmt.Fprintln(&b, "|:---|---:|:---|")
	for _, trade := range plan {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", trade.Action, trade.Value, trade.Ticker)
	}
	fmt.Fprintln(&b)
	return b.String()
}
