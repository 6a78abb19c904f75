package compiler

import "testing"

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantPath string
		wantOK   bool
	}{
		{name: "plain", line: "@import(a.txt)", wantPath: "a.txt", wantOK: true},
		{name: "with newline", line: "@import(a.txt)\n", wantPath: "a.txt", wantOK: true},
		{name: "crlf", line: "@import(a.txt)\r\n", wantPath: "a.txt", wantOK: true},
		{name: "surrounding whitespace", line: "  \t@import(sub/b.txt)  \n", wantPath: "sub/b.txt", wantOK: true},
		{name: "parent segments", line: "@import(../../c.txt)", wantPath: "../../c.txt", wantOK: true},
		{name: "absolute", line: "@import(/etc/motd)", wantPath: "/etc/motd", wantOK: true},
		{name: "spaces inside path", line: "@import(my file.txt)", wantPath: "my file.txt", wantOK: true},
		{name: "empty path", line: "@import()", wantOK: false},
		{name: "trailing text", line: "@import(a.txt) trailing", wantOK: false},
		{name: "leading text", line: "see @import(a.txt)", wantOK: false},
		{name: "nested parens", line: "@import(a(1).txt)", wantOK: false},
		{name: "missing close", line: "@import(a.txt", wantOK: false},
		{name: "wrong keyword", line: "@include(a.txt)", wantOK: false},
		{name: "case sensitive", line: "@IMPORT(a.txt)", wantOK: false},
		{name: "literal", line: "Content of file A.\n", wantOK: false},
		{name: "blank", line: "\n", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := ParseDirective(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseDirective(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if path != tt.wantPath {
				t.Errorf("ParseDirective(%q) path = %q, want %q", tt.line, path, tt.wantPath)
			}
		})
	}
}
