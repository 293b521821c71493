package query

import "strings"

// ValidateRead gates free-form queries before they reach the database. Two
// lexical checks: the statement must begin with the token SELECT, and it may
// not chain additional statements with semicolons (a trailing terminator is
// tolerated). This is not a SQL parser; anything it passes can still fail in
// the driver, but nothing that mutates via chaining gets through.
func ValidateRead(sql string) error {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return &ValidationError{Message: "query must not be empty"}
	}

	if !strings.HasPrefix(strings.ToLower(trimmed), "select") {
		return &ValidationError{Message: "Only SELECT queries are allowed"}
	}

	// Reject multi-statement input. A single trailing semicolon is fine.
	body := strings.TrimRight(trimmed, " \t\n\r")
	body = strings.TrimSuffix(body, ";")
	if strings.Contains(body, ";") {
		return &ValidationError{Message: "multiple SQL statements are not allowed"}
	}
	return nil
}
