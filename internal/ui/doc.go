// Package ui implements a read-only database browser using bubbletea's Elm architecture.
//
// The TUI provides a two-level workflow over the Chinook schema:
//  1. [TableListView] : Browse the allowlisted tables with their row counts
//  2. [RowListView] : Page through the rows of the selected table
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern; data loads
// arrive as messages from commands that query the [repositories.TableBrowser], so the event
// loop never blocks on SQLite.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
