package ui

import (
	"github.com/desertthunder/chinook/internal/models"
)

// tablesLoadedMsg delivers the table list with row counts, or the error that
// prevented loading it.
type tablesLoadedMsg struct {
	counts []models.TableCount
	err    error
}

// rowsLoadedMsg delivers one table's rows.
type rowsLoadedMsg struct {
	table string
	dump  *models.TableDump
	err   error
}
