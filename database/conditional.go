package database

import (
	"context"
	"fmt"
	"strings"
)

// eligibleUpdates drops every field whose value is nil so a partial
// update only touches the columns the caller actually supplied.
func eligibleUpdates(fields []string, values []any) ([]string, []any) {
	outFields := make([]string, 0, len(fields))
	outValues := make([]any, 0, len(values))

	for i, field := range fields {
		if field == "" || values[i] == nil {
			continue
		}
		outFields = append(outFields, field)
		outValues = append(outValues, values[i])
	}

	return outFields, outValues
}

// buildConditionalUpdate assembles the UPDATE statement for the given
// columns. id is placeholder $1, the values follow in order.
func buildConditionalUpdate(table string, fields []string) string {
	updates := make([]string, len(fields))
	for i, field := range fields {
		updates[i] = fmt.Sprintf("%s = $%d", field, i+2)
	}

	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", table, strings.Join(updates, ", "))
}

// ConditionalUpdate updates the subset of columns whose values are
// non-nil. Zero eligible columns is a no-op signalled with ErrNoFields;
// mismatched slice lengths is a programming error and panics, the HTTP
// catch-all turns that into a 500.
func (d *Database) ConditionalUpdate(ctx context.Context, table string, id int, fields []string, values []any) error {
	if len(fields) != len(values) {
		panic("fields and values must be of equal length")
	}

	filteredFields, filteredValues := eligibleUpdates(fields, values)
	if len(filteredFields) == 0 {
		return ErrNoFields
	}

	q := buildConditionalUpdate(table, filteredFields)
	args := append([]any{id}, filteredValues...)

	count, err := d.exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if count != 1 {
		return ErrNotFound
	}

	return nil
}
