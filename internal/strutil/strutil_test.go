package strutil

import "testing"

func TestConstraintNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"PKName", PKName("users"), "PK_users"},
		{"FKName", FKName("orders", "users"), "FK_orders_users"},
		{"UQName single", UQName("users", "email"), "UQ_usersemail"},
		{"UQName multi", UQName("users", "email", "tenant"), "UQ_usersemailtenant"},
		{"IXName single", IXName("users", "email"), "IX_users_email"},
		{"IXName multi", IXName("users", "email", "tenant"), "IX_users_emailtenant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestQuoteWithRoundTrip(t *testing.T) {
	tests := []struct {
		input  string
		quoted string
	}{
		{"users", "[users]"},
		{"us]ers", "[us]]ers]"},
		{"", "[]"},
		{"a]b]c", "[a]]b]]c]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := QuoteWith(tt.input, '[', ']')
			if got != tt.quoted {
				t.Errorf("QuoteWith() = %q, want %q", got, tt.quoted)
			}
			back := UnquoteWith(got, '[', ']')
			if back != tt.input {
				t.Errorf("UnquoteWith(QuoteWith(%q)) = %q", tt.input, back)
			}
		})
	}
}

func TestUnquoteWithUnquoted(t *testing.T) {
	if got := UnquoteWith("users", '[', ']'); got != "users" {
		t.Errorf("unquoted name should pass through, got %q", got)
	}
}

func TestEnsureTerminator(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"SELECT 1", "SELECT 1;"},
		{"SELECT 1;", "SELECT 1;"},
		{"SELECT 1;  \n", "SELECT 1;"},
		{"SELECT 1  ", "SELECT 1;"},
	}

	for _, tt := range tests {
		if got := EnsureTerminator(tt.input); got != tt.want {
			t.Errorf("EnsureTerminator(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
