package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewlinePassBraces(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		input     string
		want      string
		wantSkips []string
	}{
		{
			name:  "trailing brace moves to its own line",
			input: "\tif (v > 0) {\n\t\treturn (1);\n\t}",
			want:  "\tif (v > 0)\n\t{\n\n\t\treturn (1);\n\t}",
		},
		{
			name:  "function brace at column zero",
			input: "int f(void) {\n\treturn (0);\n}",
			want:  "int f(void)\n{\n\n\treturn (0);\n}",
		},
		{
			name:  "empty body on one line is exempt",
			input: "void noop(void) {}",
			want:  "void noop(void) {}",
		},
		{
			name:  "brace already alone stays",
			input: "int f(void)\n{\n\treturn (0);\n}",
			want:  "int f(void)\n{\n\n\treturn (0);\n}",
		},
		{
			name:  "immediately closed block gets no blank",
			input: "int f(void)\n{\n}",
			want:  "int f(void)\n{\n}",
		},
		{
			name:      "do while tail is skipped",
			input:     "\tdo\n\t{\n\t\tx++;\n\t} while (x < 10);",
			want:      "\tdo\n\t{\n\n\t\tx++;\n\t} while (x < 10);",
			wantSkips: []string{"closing brace shares a line with code"},
		},
		{
			name:      "else chain is skipped",
			input:     "\t} else {",
			want:      "\t} else {",
			wantSkips: []string{"closing brace shares a line with code"},
		},
		{
			name:  "struct terminator is exempt",
			input: "};",
			want:  "};",
		},
		{
			name:  "comment after the brace survives the split",
			input: "\tif (x) { // note\n\t\tgo_on();",
			want:  "\tif (x)\n\t{ // note\n\n\t\tgo_on();",
		},
		{
			name:  "brace inside a string stays",
			input: "\ts = \"{\";",
			want:  "\ts = \"{\";",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, res := applyPass(t, &newlinePass{}, tc.input)

			assert.Equal(t, tc.want, got)
			if len(tc.wantSkips) == 0 {
				assert.Empty(t, res.Skips)
			} else {
				assert.Equal(t, tc.wantSkips, skipReasons(res))
			}
		})
	}
}

func TestNewlinePassDeclarationBlanks(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "blank inserted after bare declaration",
			input: "\tint x;\n\tx = 0;",
			want:  "\tint x;\n\n\tx = 0;",
		},
		{
			name:  "pointer declaration counts",
			input: "\tchar *s;\n\ts = 0;",
			want:  "\tchar *s;\n\n\ts = 0;",
		},
		{
			name:  "array declaration counts",
			input: "\tint arr[3];\n\tarr[0] = 1;",
			want:  "\tint arr[3];\n\n\tarr[0] = 1;",
		},
		{
			name:  "return statement shaped like a declaration",
			input: "\treturn x;\n\tx = 0;",
			want:  "\treturn x;\n\tx = 0;",
		},
		{
			name:  "blank already present",
			input: "\tint x;\n\n\tx = 0;",
			want:  "\tint x;\n\n\tx = 0;",
		},
		{
			name:  "declaration on the last line",
			input: "\tint x;",
			want:  "\tint x;",
		},
		{
			name:  "consecutive declarations each get a blank",
			input: "\tint x;\n\tint y;\n\tx = 0;",
			want:  "\tint x;\n\n\tint y;\n\n\tx = 0;",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, _ := applyPass(t, &newlinePass{}, tc.input)

			assert.Equal(t, tc.want, got)
		})
	}
}
