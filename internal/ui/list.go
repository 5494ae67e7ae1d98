package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/chinook/internal/formatter"
	"github.com/desertthunder/chinook/internal/models"
)

var (
	_ list.Item = tableItem{}
	_ list.Item = rowItem{}
)

// tableItem wraps [models.TableCount] to implement [list.Item].
type tableItem struct {
	count models.TableCount
}

func (i tableItem) FilterValue() string { return i.count.Table }
func (i tableItem) Title() string       { return i.count.Table }
func (i tableItem) Description() string {
	return fmt.Sprintf("%d rows", i.count.Count)
}

// rowItem presents one generic table row: the leading column (the primary
// key on every Chinook table) becomes the description, the rest the title.
type rowItem struct {
	columns []string
	cells   []string
}

func (i rowItem) FilterValue() string { return i.Title() }
func (i rowItem) Title() string {
	cells := i.cells
	if len(cells) > 1 {
		cells = cells[1:]
	}
	return formatter.Truncate(strings.Join(cells, " | "), 80)
}

func (i rowItem) Description() string {
	if len(i.columns) == 0 || len(i.cells) == 0 {
		return ""
	}
	return fmt.Sprintf("%s %s", i.columns[0], i.cells[0])
}
