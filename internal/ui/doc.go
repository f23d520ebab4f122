// Package ui provides semantic text formatting for CLI output.
//
// Formatters render a piece of content according to what it is rather than
// how it should look:
//
//	ui.Code.Sprint("closet drawer list")   // Commands and code
//	ui.Path.Sprint("~/.local/share/closet") // File paths
//	ui.Drawer.Sprint("Top")                 // Drawer names
//	ui.Item.Sprint("pen")                   // Item names
//	ui.Quantity.Sprint(3)                   // Quantities
//	ui.Muted.Sprint("empty")                // De-emphasized text
//
// Colors are disabled when NO_COLOR is set (any value) or when fatih/color
// decides the terminal cannot show them. Without color, formatters that
// would otherwise be ambiguous fall back to text decorations such as
// `backticks`, 'quotes' and (parentheses).
//
// Columns lays out rows of text in aligned columns, measuring the plain text
// before any formatter is applied.
package ui
