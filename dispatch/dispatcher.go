// Package dispatch maps a named tool and its argument bag to a validated
// SQL statement, executes it against the database gateway, and shapes the
// result into the uniform response envelope shared by every transport.
package dispatch

import (
	"context"
	"fmt"

	"github.com/tomyedwab/sqlite-tools/database"
	"github.com/tomyedwab/sqlite-tools/query"
)

// ContentBlock is one typed block of envelope content. Only text blocks are
// produced today.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Envelope is the dispatcher's sole output type. Transports adapt it to
// their native response shape; they never replace it.
type Envelope struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError"`
}

func textEnvelope(text string) Envelope {
	return Envelope{Content: []ContentBlock{{Type: "text", Text: text}}}
}

func errorEnvelope(text string) Envelope {
	return Envelope{Content: []ContentBlock{{Type: "text", Text: text}}, IsError: true}
}

// Dispatcher is a single-step request handler: validate, build, execute,
// render. It holds no state across calls beyond the open database handle.
type Dispatcher struct {
	db *database.Database
}

func New(db *database.Database) *Dispatcher {
	return &Dispatcher{db: db}
}

// Dispatch runs one operation against the database. Every failure from
// validation, statement building or execution is caught here and converted
// into an error envelope; the dispatcher never panics the process over a
// bad request.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) Envelope {
	desc, ok := Lookup(name)
	if !ok {
		return errorEnvelope(fmt.Sprintf("Unknown tool: %s", name))
	}

	text, err := d.run(ctx, desc.Op, args)
	if err != nil {
		return errorEnvelope(fmt.Sprintf("Error executing %s: %s", name, err.Error()))
	}
	return textEnvelope(text)
}

func (d *Dispatcher) run(ctx context.Context, op Operation, args map[string]any) (string, error) {
	switch op {
	case OpListTables:
		return d.listTables(ctx)
	case OpDescribeTable:
		return d.describeTable(ctx, args)
	case OpRunQuery:
		return d.runQuery(ctx, args)
	case OpInsertRow:
		return d.insertRow(ctx, args)
	case OpUpdateRow:
		return d.updateRow(ctx, args)
	case OpDeleteRow:
		return d.deleteRow(ctx, args)
	}
	return "", fmt.Errorf("operation %s has no handler", op)
}

func (d *Dispatcher) listTables(ctx context.Context) (string, error) {
	rs, err := d.db.ExecuteRead(ctx, query.ListTables())
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		if name, ok := row["name"].(string); ok {
			names = append(names, name)
		}
	}
	return renderTables(names), nil
}

func (d *Dispatcher) describeTable(ctx context.Context, args map[string]any) (string, error) {
	parsed, err := parseDescribeTableArgs(args)
	if err != nil {
		return "", err
	}

	colStmt, err := query.DescribeColumns(parsed.TableName)
	if err != nil {
		return "", err
	}
	cols, err := d.db.ExecuteRead(ctx, colStmt)
	if err != nil {
		return "", err
	}
	if len(cols.Rows) == 0 {
		return "", fmt.Errorf("table '%s' does not exist", parsed.TableName)
	}

	sqlStmt, err := query.DescribeCreateSQL(parsed.TableName)
	if err != nil {
		return "", err
	}
	createRows, err := d.db.ExecuteRead(ctx, sqlStmt)
	if err != nil {
		return "", err
	}
	createSQL := ""
	if len(createRows.Rows) > 0 {
		if s, ok := createRows.Rows[0]["sql"].(string); ok {
			createSQL = s
		}
	}

	return renderDescribe(parsed.TableName, cols.Rows, createSQL)
}

func (d *Dispatcher) runQuery(ctx context.Context, args map[string]any) (string, error) {
	parsed, err := parseQueryArgs(args)
	if err != nil {
		return "", err
	}
	if err := query.ValidateRead(parsed.Query); err != nil {
		return "", err
	}
	rs, err := d.db.ExecuteRead(ctx, query.Statement{SQL: parsed.Query})
	if err != nil {
		return "", err
	}
	return renderQuery(rs.Rows)
}

func (d *Dispatcher) insertRow(ctx context.Context, args map[string]any) (string, error) {
	parsed, err := parseInsertArgs(args)
	if err != nil {
		return "", err
	}
	stmt, err := query.Insert(parsed.TableName, parsed.Data)
	if err != nil {
		return "", err
	}
	mut, err := d.db.ExecuteWrite(ctx, stmt)
	if err != nil {
		return "", err
	}
	return renderInsert(mut), nil
}

func (d *Dispatcher) updateRow(ctx context.Context, args map[string]any) (string, error) {
	parsed, err := parseUpdateArgs(args)
	if err != nil {
		return "", err
	}
	stmt, err := query.Update(parsed.TableName, parsed.Data, parsed.Where)
	if err != nil {
		return "", err
	}
	mut, err := d.db.ExecuteWrite(ctx, stmt)
	if err != nil {
		return "", err
	}
	return renderMutation("updated", mut), nil
}

func (d *Dispatcher) deleteRow(ctx context.Context, args map[string]any) (string, error) {
	parsed, err := parseDeleteArgs(args)
	if err != nil {
		return "", err
	}
	stmt, err := query.Delete(parsed.TableName, parsed.Where)
	if err != nil {
		return "", err
	}
	mut, err := d.db.ExecuteWrite(ctx, stmt)
	if err != nil {
		return "", err
	}
	return renderMutation("deleted", mut), nil
}
