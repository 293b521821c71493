package dispatch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tomyedwab/sqlite-tools/database"
)

// ColumnInfo is the JSON shape of one column in a describe_table result.
type ColumnInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	NotNull      bool   `json:"not_null"`
	PrimaryKey   bool   `json:"primary_key"`
	DefaultValue any    `json:"default_value"`
}

// TableDescription is the JSON shape of a describe_table result.
type TableDescription struct {
	TableName string       `json:"table_name"`
	Columns   []ColumnInfo `json:"columns"`
	CreateSQL string       `json:"create_sql"`
}

func renderTables(names []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d tables:", len(names))
	for _, name := range names {
		sb.WriteString("\n- ")
		sb.WriteString(name)
	}
	return sb.String()
}

// renderDescribe converts PRAGMA table_info rows into the documented JSON
// shape. The pragma reports notnull and pk as integers.
func renderDescribe(table string, rows []map[string]any, createSQL string) (string, error) {
	desc := TableDescription{
		TableName: table,
		Columns:   make([]ColumnInfo, 0, len(rows)),
		CreateSQL: createSQL,
	}
	for _, row := range rows {
		col := ColumnInfo{
			DefaultValue: row["dflt_value"],
		}
		if name, ok := row["name"].(string); ok {
			col.Name = name
		}
		if typ, ok := row["type"].(string); ok {
			col.Type = typ
		}
		col.NotNull = asInt(row["notnull"]) != 0
		col.PrimaryKey = asInt(row["pk"]) != 0
		desc.Columns = append(desc.Columns, col)
	}

	out, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render table description: %w", err)
	}
	return string(out), nil
}

func renderQuery(rows []map[string]any) (string, error) {
	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render query result: %w", err)
	}
	return fmt.Sprintf("Query executed successfully. Found %d rows:\n%s", len(rows), out), nil
}

func renderInsert(mut *database.Mutation) string {
	return fmt.Sprintf("Row inserted successfully. Last insert ID: %d, Changes: %d",
		mut.LastInsertID, mut.Changes)
}

func renderMutation(verb string, mut *database.Mutation) string {
	return fmt.Sprintf("Rows %s successfully. Changes: %d", verb, mut.Changes)
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
