package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
)

// TableBrowser provides generic read and write access to any Chinook table.
//
// SQLite cannot bind identifiers, so table and column names are interpolated
// into statements. Every identifier is checked first: tables against
// [models.Tables], columns against PRAGMA table_info output for that table.
// Values always travel as bound parameters.
type TableBrowser struct {
	exec *Executor
}

// NewTableBrowser creates a new TableBrowser using the given executor
func NewTableBrowser(exec *Executor) *TableBrowser {
	return &TableBrowser{exec: exec}
}

// Tables returns the browsable table names in display order.
func (b *TableBrowser) Tables() []string {
	tables := make([]string, len(models.Tables))
	copy(tables, models.Tables)
	return tables
}

// Columns introspects a table's schema.
// Returns [shared.ErrUnknownTable] for tables outside the allowlist.
func (b *TableBrowser) Columns(ctx context.Context, table string) ([]models.Column, error) {
	if !models.IsTable(table) {
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownTable, table)
	}

	rows, err := b.exec.Query(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to introspect %s: %w", table, err)
	}
	defer rows.Close()

	var cols []models.Column
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dfltVal sql.NullString
			pkSlot  int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltVal, &pkSlot); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		cols = append(cols, models.Column{
			Name:       name,
			Type:       colType,
			NotNull:    notNull != 0,
			PrimaryKey: pkSlot > 0,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownTable, table)
	}

	return cols, nil
}

// PrimaryKey returns the table's primary key column when it has exactly one.
// Composite keys (playlist_track) report false: the browser edits and
// deletes by a single key value.
func (b *TableBrowser) PrimaryKey(cols []models.Column) (models.Column, bool) {
	var pk models.Column
	count := 0
	for _, col := range cols {
		if col.PrimaryKey {
			pk = col
			count++
		}
	}
	if count != 1 {
		return models.Column{}, false
	}
	return pk, true
}

// InsertColumns returns the columns a new row needs values for. A lone
// INTEGER primary key is auto-assigned by SQLite and skipped; composite
// keys must be supplied by the caller.
func (b *TableBrowser) InsertColumns(cols []models.Column) []models.Column {
	pk, ok := b.PrimaryKey(cols)
	insertable := make([]models.Column, 0, len(cols))
	for _, col := range cols {
		if ok && col.Name == pk.Name && strings.Contains(strings.ToUpper(col.Type), "INTEGER") {
			continue
		}
		insertable = append(insertable, col)
	}
	return insertable
}

// Rows reads up to limit rows from a table, stringifying every value.
// A limit of zero or below reads the whole table.
func (b *TableBrowser) Rows(ctx context.Context, table string, limit int) (*models.TableDump, error) {
	if !models.IsTable(table) {
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownTable, table)
	}

	query := fmt.Sprintf("SELECT * FROM %s", table)
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := b.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read column names: %w", err)
	}

	dump := &models.TableDump{Table: table, Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		for i := range values {
			values[i] = new(any)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		cells := make([]string, len(columns))
		for i, v := range values {
			cells[i] = formatValue(*(v.(*any)))
		}
		dump.Rows = append(dump.Rows, cells)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return dump, nil
}

// RowCount returns the number of rows in a table.
func (b *TableBrowser) RowCount(ctx context.Context, table string) (int, error) {
	if !models.IsTable(table) {
		return 0, fmt.Errorf("%w: %q", shared.ErrUnknownTable, table)
	}

	var count int
	if err := b.exec.ScanRow(ctx, []any{&count}, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// Counts returns row counts for every browsable table.
func (b *TableBrowser) Counts(ctx context.Context) ([]models.TableCount, error) {
	counts := make([]models.TableCount, 0, len(models.Tables))
	for _, table := range models.Tables {
		count, err := b.RowCount(ctx, table)
		if err != nil {
			return nil, err
		}
		counts = append(counts, models.TableCount{Table: table, Count: count})
	}
	return counts, nil
}

// Insert adds a row with the given column values, which must line up with
// cols. Column names are re-checked against the live schema before they are
// interpolated; values are bound as parameters.
func (b *TableBrowser) Insert(ctx context.Context, table string, cols []models.Column, values []string) error {
	if len(cols) == 0 || len(cols) != len(values) {
		return fmt.Errorf("%w: need one value per column", shared.ErrInvalidInput)
	}

	verified, err := b.verifyColumns(ctx, table, cols)
	if err != nil {
		return err
	}

	names := make([]string, len(verified))
	placeholders := make([]string, len(verified))
	args := make([]any, len(verified))
	for i, col := range verified {
		names[i] = col.Name
		placeholders[i] = "?"
		args[i] = values[i]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(placeholders, ", "))

	if _, err := b.exec.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	return nil
}

// UpdateByPK sets one column of the row whose primary key equals pkValue and
// returns the number of rows changed, zero meaning no such key.
func (b *TableBrowser) UpdateByPK(ctx context.Context, table string, col models.Column, value string, pk models.Column, pkValue string) (int64, error) {
	verified, err := b.verifyColumns(ctx, table, []models.Column{col, pk})
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", table, verified[0].Name, verified[1].Name)
	result, err := b.exec.Exec(ctx, query, value, pkValue)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected, nil
}

// DeleteByPK removes the row whose primary key equals pkValue and returns
// the number of rows deleted, zero meaning no such key.
func (b *TableBrowser) DeleteByPK(ctx context.Context, table string, pk models.Column, pkValue string) (int64, error) {
	verified, err := b.verifyColumns(ctx, table, []models.Column{pk})
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, verified[0].Name)
	result, err := b.exec.Exec(ctx, query, pkValue)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected, nil
}

// verifyColumns resolves the requested column names against the table's live
// schema, returning the canonical columns. Anything not reported by the
// schema is rejected, so a forged column name never reaches a statement.
func (b *TableBrowser) verifyColumns(ctx context.Context, table string, requested []models.Column) ([]models.Column, error) {
	actual, err := b.Columns(ctx, table)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]models.Column, len(actual))
	for _, col := range actual {
		byName[col.Name] = col
	}

	verified := make([]models.Column, len(requested))
	for i, col := range requested {
		match, ok := byName[col.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", shared.ErrUnknownColumn, col.Name, table)
		}
		verified[i] = match
	}
	return verified, nil
}

// formatValue renders a scanned SQLite value for display or export.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case float64:
		// Trailing zeros trimmed so prices render as 0.99 not 0.990000
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", val), "0"), ".")
	default:
		return fmt.Sprintf("%v", val)
	}
}
