package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"grimm.is/pvegate/internal/natrules"
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleBorder  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderRules formats stored rules as a table, in store order.
func renderRules(rules []natrules.Rule) string {
	if len(rules) == 0 {
		return styleMuted.Render("no rules configured")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers("PROTO", "PUBLIC PORT", "TARGET ADDRESS", "TARGET PORT")

	for _, r := range rules {
		t.Row(
			string(r.Protocol),
			strconv.Itoa(r.PublicPort),
			r.TargetAddr,
			strconv.Itoa(r.TargetPort),
		)
	}
	return t.Render()
}

func printSuccess(format string, args ...any) {
	fmt.Println(styleSuccess.Render(fmt.Sprintf(format, args...)))
}
