// Package query builds parameterized SQL statements for the tool operations
// and validates the pieces that cannot travel as bound parameters. Builders
// are pure: they perform no I/O and touch no database handle.
package query

import (
	"fmt"
	"sort"
	"strings"
)

// Statement is a parameterized SQL string plus its positional parameters,
// the only artifact handed to the database gateway. User-supplied values are
// always bound; only validated identifiers appear in the SQL text.
type Statement struct {
	SQL    string
	Params []any
}

// ValidationError indicates a structurally invalid request, such as an empty
// data map on insert.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// sortedKeys fixes the column order for a map-valued argument. Go randomizes
// map iteration, so builders sort keys to keep SQL and parameter order
// deterministic for identical input.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ListTables selects user table names from the catalog, excluding the
// sqlite_ internal tables, ordered for stable output.
func ListTables() Statement {
	return Statement{
		SQL: "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
	}
}

// DescribeColumns returns the column metadata query for a table. PRAGMA
// table_info does not accept a bound parameter for the table name, so the
// identifier is interpolated after passing the allow-list check. This is the
// one sanctioned exception to parameter binding.
func DescribeColumns(table string) (Statement, error) {
	if err := ValidateIdentifier(table); err != nil {
		return Statement{}, err
	}
	return Statement{SQL: fmt.Sprintf("PRAGMA table_info(%s)", table)}, nil
}

// DescribeCreateSQL fetches the original CREATE TABLE text for a table.
func DescribeCreateSQL(table string) (Statement, error) {
	if err := ValidateIdentifier(table); err != nil {
		return Statement{}, err
	}
	return Statement{
		SQL:    "SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?",
		Params: []any{table},
	}, nil
}

// Insert builds an INSERT for the given table from a column-to-value map.
// Fails if data is empty.
func Insert(table string, data map[string]any) (Statement, error) {
	if err := ValidateIdentifier(table); err != nil {
		return Statement{}, err
	}
	if len(data) == 0 {
		return Statement{}, &ValidationError{Message: "insert requires at least one column in 'data'"}
	}

	cols := sortedKeys(data)
	placeholders := make([]string, 0, len(cols))
	params := make([]any, 0, len(cols))
	for _, col := range cols {
		if err := ValidateIdentifier(col); err != nil {
			return Statement{}, err
		}
		placeholders = append(placeholders, "?")
		params = append(params, data[col])
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	return Statement{SQL: sql, Params: params}, nil
}

// Update builds an UPDATE ... SET ... WHERE statement. Multiple where
// conditions are ANDed; only equality comparison is supported. SET
// parameters precede WHERE parameters.
func Update(table string, data map[string]any, where map[string]any) (Statement, error) {
	if err := ValidateIdentifier(table); err != nil {
		return Statement{}, err
	}
	if len(data) == 0 {
		return Statement{}, &ValidationError{Message: "update requires at least one column in 'data'"}
	}
	if len(where) == 0 {
		return Statement{}, &ValidationError{Message: "update requires at least one condition in 'where'"}
	}

	setClauses := make([]string, 0, len(data))
	params := make([]any, 0, len(data)+len(where))
	for _, col := range sortedKeys(data) {
		if err := ValidateIdentifier(col); err != nil {
			return Statement{}, err
		}
		setClauses = append(setClauses, col+" = ?")
		params = append(params, data[col])
	}

	whereClauses, whereParams, err := buildWhere(where)
	if err != nil {
		return Statement{}, err
	}
	params = append(params, whereParams...)

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		table, strings.Join(setClauses, ", "), strings.Join(whereClauses, " AND "))
	return Statement{SQL: sql, Params: params}, nil
}

// Delete builds a DELETE ... WHERE statement. An empty where map is rejected
// so a malformed request can never delete an entire table.
func Delete(table string, where map[string]any) (Statement, error) {
	if err := ValidateIdentifier(table); err != nil {
		return Statement{}, err
	}
	if len(where) == 0 {
		return Statement{}, &ValidationError{Message: "delete requires at least one condition in 'where'"}
	}

	whereClauses, params, err := buildWhere(where)
	if err != nil {
		return Statement{}, err
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE %s", table, strings.Join(whereClauses, " AND "))
	return Statement{SQL: sql, Params: params}, nil
}

func buildWhere(where map[string]any) ([]string, []any, error) {
	clauses := make([]string, 0, len(where))
	params := make([]any, 0, len(where))
	for _, col := range sortedKeys(where) {
		if err := ValidateIdentifier(col); err != nil {
			return nil, nil, err
		}
		clauses = append(clauses, col+" = ?")
		params = append(params, where[col])
	}
	return clauses, params, nil
}
