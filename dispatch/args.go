package dispatch

import (
	"fmt"

	"github.com/tomyedwab/sqlite-tools/query"
)

// Typed argument structs, parsed from the raw argument bag before any SQL
// work happens. A request that fails to parse never reaches a builder.

type DescribeTableArgs struct {
	TableName string
}

type QueryArgs struct {
	Query string
}

type InsertArgs struct {
	TableName string
	Data      map[string]any
}

type UpdateArgs struct {
	TableName string
	Data      map[string]any
	Where     map[string]any
}

type DeleteArgs struct {
	TableName string
	Where     map[string]any
}

func requireString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", &query.ValidationError{Message: fmt.Sprintf("missing required argument '%s'", key)}
	}
	s, ok := v.(string)
	if !ok {
		return "", &query.ValidationError{Message: fmt.Sprintf("argument '%s' must be a string", key)}
	}
	if s == "" {
		return "", &query.ValidationError{Message: fmt.Sprintf("argument '%s' must not be empty", key)}
	}
	return s, nil
}

func requireMap(args map[string]any, key string) (map[string]any, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, &query.ValidationError{Message: fmt.Sprintf("missing required argument '%s'", key)}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &query.ValidationError{Message: fmt.Sprintf("argument '%s' must be an object", key)}
	}
	return m, nil
}

func requireNonEmptyMap(args map[string]any, key string) (map[string]any, error) {
	m, err := requireMap(args, key)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, &query.ValidationError{Message: fmt.Sprintf("argument '%s' must not be empty", key)}
	}
	return m, nil
}

func parseDescribeTableArgs(args map[string]any) (DescribeTableArgs, error) {
	table, err := requireString(args, "table_name")
	if err != nil {
		return DescribeTableArgs{}, err
	}
	return DescribeTableArgs{TableName: table}, nil
}

func parseQueryArgs(args map[string]any) (QueryArgs, error) {
	q, err := requireString(args, "query")
	if err != nil {
		return QueryArgs{}, err
	}
	return QueryArgs{Query: q}, nil
}

func parseInsertArgs(args map[string]any) (InsertArgs, error) {
	table, err := requireString(args, "table_name")
	if err != nil {
		return InsertArgs{}, err
	}
	data, err := requireNonEmptyMap(args, "data")
	if err != nil {
		return InsertArgs{}, err
	}
	return InsertArgs{TableName: table, Data: data}, nil
}

func parseUpdateArgs(args map[string]any) (UpdateArgs, error) {
	table, err := requireString(args, "table_name")
	if err != nil {
		return UpdateArgs{}, err
	}
	data, err := requireNonEmptyMap(args, "data")
	if err != nil {
		return UpdateArgs{}, err
	}
	where, err := requireMap(args, "where")
	if err != nil {
		return UpdateArgs{}, err
	}
	return UpdateArgs{TableName: table, Data: data, Where: where}, nil
}

func parseDeleteArgs(args map[string]any) (DeleteArgs, error) {
	table, err := requireString(args, "table_name")
	if err != nil {
		return DeleteArgs{}, err
	}
	where, err := requireMap(args, "where")
	if err != nil {
		return DeleteArgs{}, err
	}
	return DeleteArgs{TableName: table, Where: where}, nil
}
