package dispatch

// Operation names the six database actions exposed to callers. The set is
// closed; anything else is rejected as an unknown tool.
type Operation string

const (
	OpListTables    Operation = "list_tables"
	OpDescribeTable Operation = "describe_table"
	OpRunQuery      Operation = "run_query"
	OpInsertRow     Operation = "insert_row"
	OpUpdateRow     Operation = "update_row"
	OpDeleteRow     Operation = "delete_row"
)

// ArgSpec describes one argument of an operation for schema generation.
// Type is a JSON schema primitive ("string" or "object").
type ArgSpec struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Descriptor describes one operation: its name, a human-readable
// description, and its argument schema. Both transport adapters derive
// their tool listings from this registry so the surfaces cannot drift.
type Descriptor struct {
	Op          Operation
	Description string
	Args        []ArgSpec
}

var registry = []Descriptor{
	{
		Op:          OpListTables,
		Description: "List all user tables in the SQLite database",
	},
	{
		Op:          OpDescribeTable,
		Description: "Get the schema of a table: columns, types, flags and the original CREATE statement",
		Args: []ArgSpec{
			{Name: "table_name", Type: "string", Description: "Name of the table to describe", Required: true},
		},
	},
	{
		Op:          OpRunQuery,
		Description: "Execute a read-only SELECT query and return the matching rows",
		Args: []ArgSpec{
			{Name: "query", Type: "string", Description: "The SELECT query to execute", Required: true},
		},
	},
	{
		Op:          OpInsertRow,
		Description: "Insert a single row into a table",
		Args: []ArgSpec{
			{Name: "table_name", Type: "string", Description: "Name of the table to insert into", Required: true},
			{Name: "data", Type: "object", Description: "Column-to-value map for the new row", Required: true},
		},
	},
	{
		Op:          OpUpdateRow,
		Description: "Update rows in a table matching equality conditions",
		Args: []ArgSpec{
			{Name: "table_name", Type: "string", Description: "Name of the table to update", Required: true},
			{Name: "data", Type: "object", Description: "Column-to-value map of new values", Required: true},
			{Name: "where", Type: "object", Description: "Equality conditions selecting the rows to update, ANDed together", Required: true},
		},
	},
	{
		Op:          OpDeleteRow,
		Description: "Delete rows from a table matching equality conditions",
		Args: []ArgSpec{
			{Name: "table_name", Type: "string", Description: "Name of the table to delete from", Required: true},
			{Name: "where", Type: "object", Description: "Equality conditions selecting the rows to delete, ANDed together", Required: true},
		},
	},
}

// Registry returns the descriptors for all six operations in a fixed order.
func Registry() []Descriptor {
	return registry
}

// Lookup returns the descriptor for an operation name, if it exists.
func Lookup(name string) (Descriptor, bool) {
	for _, d := range registry {
		if string(d.Op) == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
