package paymentsview

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tab selects a status subset of the payments.
type Tab string

const (
	TabAll       Tab = "all-payments"
	TabCompleted Tab = "completed"
	TabPending   Tab = "pending"
	TabCancelled Tab = "cancelled"
)

// StandardTabs are rendered in this order.
var StandardTabs = []Tab{TabAll, TabCompleted, TabPending, TabCancelled}

// TabCount is a tab with the number of payments it holds.
type TabCount struct {
	Tab   Tab
	Label string
	Count int
}

// NormalizeTab lowercases the tab and maps "all" and empty to TabAll.
func NormalizeTab(tab Tab) Tab {
	t := Tab(strings.ToLower(strings.TrimSpace(string(tab))))
	if t == "" || t == "all" {
		return TabAll
	}
	return t
}

// Label is the display name of the tab.
func (t Tab) Label() string {
	if NormalizeTab(t) == TabAll {
		return "All Payments"
	}
	return cases.Title(language.English).String(string(t))
}
