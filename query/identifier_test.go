package query

import "testing"

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantErr    bool
	}{
		{name: "simple lowercase", identifier: "users", wantErr: false},
		{name: "mixed case", identifier: "UserAccounts", wantErr: false},
		{name: "with underscore", identifier: "user_accounts", wantErr: false},
		{name: "leading underscore", identifier: "_private", wantErr: false},
		{name: "with digits", identifier: "table2", wantErr: false},
		{name: "empty", identifier: "", wantErr: true},
		{name: "leading digit", identifier: "2users", wantErr: true},
		{name: "embedded space", identifier: "user accounts", wantErr: true},
		{name: "semicolon injection", identifier: "users; DROP TABLE users", wantErr: true},
		{name: "quote injection", identifier: `users"`, wantErr: true},
		{name: "hyphen", identifier: "user-accounts", wantErr: true},
		{name: "parenthesis", identifier: "users)", wantErr: true},
		{name: "reserved keyword", identifier: "select", wantErr: true},
		{name: "reserved keyword uppercase", identifier: "DROP", wantErr: true},
		{name: "reserved keyword mixed case", identifier: "Table", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.identifier)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateIdentifier(%q) = nil, want error", tt.identifier)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateIdentifier(%q) = %v, want nil", tt.identifier, err)
			}
			if err != nil {
				if _, ok := err.(*IdentifierError); !ok {
					t.Errorf("ValidateIdentifier(%q) returned %T, want *IdentifierError", tt.identifier, err)
				}
			}
		})
	}
}
