package query

import "testing"

func TestValidateRead(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		wantErr bool
	}{
		{name: "plain select", sql: "SELECT * FROM users", wantErr: false},
		{name: "lowercase select", sql: "select id from users", wantErr: false},
		{name: "leading whitespace", sql: "   SELECT 1", wantErr: false},
		{name: "trailing semicolon", sql: "SELECT 1;", wantErr: false},
		{name: "trailing semicolon and spaces", sql: "SELECT 1 ;  ", wantErr: false},
		{name: "empty", sql: "", wantErr: true},
		{name: "whitespace only", sql: "   ", wantErr: true},
		{name: "delete statement", sql: "DELETE FROM users", wantErr: true},
		{name: "insert statement", sql: "INSERT INTO users VALUES (1)", wantErr: true},
		{name: "drop statement", sql: "DROP TABLE users", wantErr: true},
		{name: "pragma", sql: "PRAGMA table_info(users)", wantErr: true},
		{name: "select embedded mid-statement", sql: "DELETE FROM users WHERE id IN (SELECT id FROM old)", wantErr: true},
		{name: "chained statements", sql: "SELECT 1; DROP TABLE users", wantErr: true},
		{name: "chained with trailing terminator", sql: "SELECT 1; DELETE FROM users;", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRead(tt.sql)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateRead(%q) = nil, want error", tt.sql)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateRead(%q) = %v, want nil", tt.sql, err)
			}
		})
	}
}

func TestValidateReadRejectionMessage(t *testing.T) {
	err := ValidateRead("DELETE FROM users")
	if err == nil {
		t.Fatal("expected error for non-SELECT statement")
	}
	if err.Error() != "Only SELECT queries are allowed" {
		t.Errorf("unexpected rejection message: %q", err.Error())
	}
}
