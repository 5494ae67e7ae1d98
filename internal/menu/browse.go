package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chinook/internal/formatter"
	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/prompt"
	"github.com/desertthunder/chinook/internal/repositories"
	"github.com/desertthunder/chinook/internal/shared"
)

// BrowseMenu drives the interactive table browser: any allowlisted Chinook
// table can be viewed and changed one record at a time, keyed by its primary
// key. Tables without a single-column primary key are read-only here.
type BrowseMenu struct {
	console
	browser    *repositories.TableBrowser
	maxResults int
}

// BrowseMenuOpts contains optional configuration for [BrowseMenu].
type BrowseMenuOpts struct {
	Logger     *log.Logger
	Output     io.Writer
	MaxResults int // Listing cap offered when a table outgrows it (default: DefaultMaxResults)
}

// NewBrowseMenu builds a browser menu over the given repositories, defaulting
// any options left unset.
func NewBrowseMenu(prompter *prompt.Prompter, browser *repositories.TableBrowser, activity *repositories.ActivityRepository, opts BrowseMenuOpts) *BrowseMenu {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}

	return &BrowseMenu{
		console: console{
			prompter: prompter,
			output:   opts.Output,
			logger:   opts.Logger,
			activity: activity,
		},
		browser:    browser,
		maxResults: opts.MaxResults,
	}
}

// Run loops over the table list until the user exits or cancels.
func (m *BrowseMenu) Run(ctx context.Context) error {
	tables := m.browser.Tables()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m.write("")
		m.write("Available tables:")
		for i, table := range tables {
			m.write("%d. %s", i+1, table)
		}
		m.write("%d. Exit", len(tables)+1)

		choice, err := m.prompter.Choice("Choose a table to manage: ", 1, len(tables)+1)
		if err != nil {
			if errors.Is(err, shared.ErrCancelled) {
				m.write("Goodbye!")
				return nil
			}

			if errors.Is(err, shared.ErrRetriesExhausted) {
				continue
			}

			return err
		}

		if choice == len(tables)+1 {
			m.write("Goodbye!")
			return nil
		}

		if err := m.manageTable(ctx, tables[choice-1]); err != nil {
			return err
		}
	}
}

// manageTable loops over the per-table actions until the user goes back.
func (m *BrowseMenu) manageTable(ctx context.Context, table string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m.write("")
		m.write("--- Managing Table: %s ---", table)
		m.write("1. View Records")
		m.write("2. Add Record")
		m.write("3. Edit Record")
		m.write("4. Delete Record")
		m.write("5. Back to Table List")

		action, err := m.prompter.Choice("Choose an action: ", 1, 5)
		if err != nil {
			if errors.Is(err, shared.ErrCancelled) {
				return nil
			}

			if errors.Is(err, shared.ErrRetriesExhausted) {
				continue
			}

			return err
		}

		switch action {
		case 1:
			m.report(m.viewRecords(ctx, table))
		case 2:
			m.report(m.addRecord(ctx, table))
		case 3:
			m.report(m.editRecord(ctx, table))
		case 4:
			m.report(m.deleteRecord(ctx, table))
		case 5:
			return nil
		}
	}
}

func (m *BrowseMenu) viewRecords(ctx context.Context, table string) error {
	total, err := m.browser.RowCount(ctx, table)
	if err != nil {
		return err
	}

	if total == 0 {
		m.write("No records found in %s.", table)
		return nil
	}

	limit, err := m.askLimit("records", total, m.maxResults)
	if err != nil {
		return err
	}

	dump, err := m.browser.Rows(ctx, table, limit)
	if err != nil {
		return err
	}

	m.write("%s", formatter.RenderTable(dump, formatter.DefaultCellWidth))
	m.write("Showing %d of %d records.", len(dump.Rows), total)
	return nil
}

func (m *BrowseMenu) addRecord(ctx context.Context, table string) error {
	cols, err := m.browser.Columns(ctx, table)
	if err != nil {
		return err
	}

	insertable := m.browser.InsertColumns(cols)

	m.write("")
	m.write("Insert into %s:", table)

	values := make([]string, 0, len(insertable))
	for _, col := range insertable {
		value, err := m.prompter.String(col.Name+": ", col.Name, maxValueLength)
		if err != nil {
			return err
		}
		values = append(values, value)
	}

	if err := m.browser.Insert(ctx, table, insertable, values); err != nil {
		return err
	}

	m.write("Successfully inserted record into %s.", table)
	m.recordActivity(ctx, models.ActionInsert, table, "added record")
	return nil
}

func (m *BrowseMenu) editRecord(ctx context.Context, table string) error {
	cols, err := m.browser.Columns(ctx, table)
	if err != nil {
		return err
	}

	pk, ok := m.browser.PrimaryKey(cols)
	if !ok {
		m.write("Table %s has no single-column primary key.", table)
		return nil
	}

	pkValue, err := m.prompter.PositiveInt(fmt.Sprintf("Enter the %s of the record to edit: ", pk.Name), pk.Name)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(cols))
	for _, col := range cols {
		names = append(names, col.Name)
	}
	m.write("Columns: %s", strings.Join(names, ", "))

	col, err := m.prompter.Column("Enter column to update: ", cols)
	if err != nil {
		return err
	}

	value, err := m.prompter.String("Enter new value: ", col.Name, maxValueLength)
	if err != nil {
		return err
	}

	affected, err := m.browser.UpdateByPK(ctx, table, col, value, pk, strconv.Itoa(pkValue))
	if err != nil {
		return err
	}

	if affected == 0 {
		m.write("No record updated. Check the primary key value.")
		return nil
	}

	m.write("Successfully updated record in %s.", table)
	m.recordActivity(ctx, models.ActionUpdate, table, fmt.Sprintf("set %s where %s=%d", col.Name, pk.Name, pkValue))
	return nil
}

func (m *BrowseMenu) deleteRecord(ctx context.Context, table string) error {
	cols, err := m.browser.Columns(ctx, table)
	if err != nil {
		return err
	}

	pk, ok := m.browser.PrimaryKey(cols)
	if !ok {
		m.write("Table %s has no single-column primary key.", table)
		return nil
	}

	pkValue, err := m.prompter.PositiveInt(fmt.Sprintf("Enter the %s of the record to delete: ", pk.Name), pk.Name)
	if err != nil {
		return err
	}

	label := fmt.Sprintf("Are you sure you want to delete record with %s=%d from %s? (yes/no): ", pk.Name, pkValue, table)

	confirmed, err := m.prompter.Confirm(label)
	if err != nil {
		return err
	}

	if !confirmed {
		m.write("Deletion cancelled.")
		return nil
	}

	affected, err := m.browser.DeleteByPK(ctx, table, pk, strconv.Itoa(pkValue))
	if err != nil {
		return err
	}

	if affected == 0 {
		m.write("No record deleted. Check the primary key value.")
		return nil
	}

	m.write("Successfully deleted record from %s.", table)
	m.recordActivity(ctx, models.ActionDelete, table, fmt.Sprintf("deleted record %s=%d", pk.Name, pkValue))
	return nil
}
