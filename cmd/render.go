package cmd

import (
	"strconv"
	"strings"

	"github.com/PolarWolf314/closet/internal/inventory"
	"github.com/PolarWolf314/closet/internal/ui"
	"github.com/PolarWolf314/closet/internal/utils"
	"github.com/PolarWolf314/closet/internal/workflows"
)

var itemColumns = []ui.Column{
	{Format: ui.Quantity},
	{Format: ui.Item, AlignLeft: true},
}

// formatItems lists items one per line, quantities right-aligned.
func formatItems(items []inventory.Item) string {
	if len(items) == 0 {
		return "    " + ui.Muted.Sprint("empty") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{strconv.Itoa(it.Quantity), it.Name})
	}
	return ui.Columns("    ", itemColumns, rows)
}

func formatDrawer(name string, items []inventory.Item) string {
	var b strings.Builder
	b.WriteString(ui.Drawer.Sprint(name))
	b.WriteString(" ")
	b.WriteString(ui.Muted.Sprint(utils.Plural(len(items), "item")))
	b.WriteString("\n")
	b.WriteString(formatItems(items))
	return b.String()
}

func formatDrawerList(result *workflows.ListDrawersResult) string {
	if len(result.Drawers) == 0 {
		return ui.InfoMark() + " Your closet is empty. Create a drawer with " +
			ui.Code.Sprint("closet drawer create NAME ITEM=QTY")
	}

	rows := make([][]string, 0, len(result.Drawers))
	for _, d := range result.Drawers {
		rows = append(rows, []string{d.Name, utils.Plural(d.Items, "item"), strconv.Itoa(d.Total) + " total"})
	}
	cols := []ui.Column{
		{Format: ui.Drawer, AlignLeft: true},
		{Format: ui.Muted, AlignLeft: true},
		{Format: ui.Muted, AlignLeft: true},
	}
	return utils.Plural(len(result.Drawers), "drawer") + ":\n" + ui.Columns("  ", cols, rows)
}

func formatSearch(result *workflows.SearchResult) string {
	if len(result.Matches) == 0 {
		return ui.WarningMark() + " Nothing matching " + ui.Item.Sprint(result.Pattern) + " was found"
	}

	var b strings.Builder
	b.WriteString(ui.SuccessMark() + " Found " + utils.Plural(len(result.Matches), "match") + ":\n")
	rows := make([][]string, 0, len(result.Matches))
	for _, m := range result.Matches {
		rows = append(rows, []string{strconv.Itoa(m.Item.Quantity), m.Item.Name, "in " + m.Drawer})
	}
	cols := []ui.Column{
		{Format: ui.Quantity},
		{Format: ui.Item, AlignLeft: true},
		{Format: ui.Muted, AlignLeft: true},
	}
	b.WriteString(ui.Columns("    ", cols, rows))
	return b.String()
}

func formatCreated(result *workflows.CreateDrawerResult) string {
	verb := "Created"
	if result.Existed {
		verb = "Replaced"
	}
	return ui.SuccessMark() + " " + verb + " drawer " + ui.Drawer.Sprint(result.Name) +
		" with " + utils.Plural(len(result.Items), "item")
}

func formatItemAdded(result *workflows.AddItemResult) string {
	return ui.SuccessMark() + " Added " + ui.Quantity.Sprint(result.Item.Quantity) + " " +
		ui.Item.Sprint(result.Item.Name) + " to " + ui.Drawer.Sprint(result.Drawer)
}

func formatItemRemoved(result *workflows.RemoveItemResult) string {
	return ui.SuccessMark() + " Removed " + ui.Item.Sprint(result.Item.Name) + " from " +
		ui.Drawer.Sprint(result.Drawer) + " " + ui.Muted.Sprint(utils.Plural(result.Remaining, "item")+" left")
}

func formatDrawerRemoved(result *workflows.RemoveDrawerResult) string {
	return ui.SuccessMark() + " Removed drawer " + ui.Drawer.Sprint(result.Name) + " and " +
		utils.Plural(len(result.Items), "item")
}
