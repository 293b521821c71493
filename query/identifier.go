package query

import "strings"

// IdentifierError indicates a table or column name that failed the
// allow-list check and therefore cannot be interpolated into SQL.
type IdentifierError struct {
	Name   string
	Reason string
}

func (e *IdentifierError) Error() string {
	return `invalid identifier "` + e.Name + `": ` + e.Reason
}

// Reserved words that are rejected as identifiers even though they pass the
// character check. SQLite would accept some of these when quoted, but we
// never quote interpolated identifiers.
var reservedWords = map[string]bool{
	"select": true, "insert": true, "update": true, "delete": true,
	"drop": true, "create": true, "alter": true, "table": true,
	"from": true, "where": true, "join": true, "union": true,
	"order": true, "group": true, "having": true, "limit": true,
	"index": true, "trigger": true, "view": true, "pragma": true,
	"attach": true, "detach": true, "vacuum": true, "replace": true,
	"values": true, "set": true, "into": true, "and": true, "or": true,
	"not": true, "null": true, "default": true, "primary": true,
	"transaction": true, "commit": true, "rollback": true,
}

// ValidateIdentifier is the single gate through which every table and column
// name must pass before being interpolated into a statement. SQL placeholders
// cannot bind identifiers, so this check is what stands between a caller
// controlled name and the SQL text.
func ValidateIdentifier(name string) error {
	if name == "" {
		return &IdentifierError{Name: name, Reason: "must not be empty"}
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return &IdentifierError{Name: name, Reason: "must not start with a digit"}
			}
		default:
			return &IdentifierError{Name: name, Reason: "only letters, digits and underscores are allowed"}
		}
	}
	if reservedWords[strings.ToLower(name)] {
		return &IdentifierError{Name: name, Reason: "is a reserved SQL keyword"}
	}
	return nil
}
