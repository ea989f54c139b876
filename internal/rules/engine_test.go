package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norm42-dev/norm42/internal/header"
	"github.com/norm42-dev/norm42/internal/identity"
)

var engineIdentity = identity.Identity{
	Login: "mrichard",
	Email: "mrichard@student.42.fr",
}

func TestEngineCanonicalBody(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, Options{SkipHeaders: true})
	input := "int main(void)\n{\n\tint i = 0;\n\treturn (i);\n}\n"
	want := "int main(void)\n{\n\tint i;\n\n\ti = 0;\n\treturn (i);\n}\n"

	got, results := eng.Format("main.c", input)

	assert.Equal(t, want, got)
	require.Len(t, results, 5)
	for _, res := range results {
		assert.Empty(t, res.Skips)
	}
}

func TestEngineFullFile(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, Options{Identity: engineIdentity})
	input := "int main(void)\n{\n    int count = 42;\n\n\n\n    return (count);\n}"

	want := strings.Join([]string{
		"/* ************************************************************************** */",
		"/*                                                                            */",
		"/*                                                        :::      ::::::::   */",
		"/*   main.c                                             :+:      :+:    :+:   */",
		"/*                                                    +:+ +:+         +:+     */",
		"/*   By: mrichard <mrichard@student.42.fr>          +#+  +:+       +#+        */",
		"/*                                                +#+#+#+#+#+   +#+           */",
		"/*   Created: 2024/03/01 10:30:00 by mrichard          #+#    #+#             */",
		"/*   Updated: 2024/03/01 10:30:00 by mrichard         ###   ########.fr       */",
		"/*                                                                            */",
		"/* ************************************************************************** */",
		"",
		"int main(void)",
		"{",
		"\tint count;",
		"",
		"\tcount = 42;",
		"",
		"\treturn (count);",
		"}",
		"",
	}, "\n")

	got, results := eng.Format("main.c", input)

	assert.Equal(t, want, got)
	require.Len(t, results, 6)
	assert.Equal(t, []string{"indent", "decl-split", "newline", "prune", "header", "eof"},
		[]string{results[0].Pass, results[1].Pass, results[2].Pass, results[3].Pass, results[4].Pass, results[5].Pass})
}

func TestEngineIdempotent(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"canonical":     "int main(void)\n{\n\tint i = 0;\n\treturn (i);\n}\n",
		"space indents": "int main(void)\n{\n    int count = 42;\n\n\n\n    return (count);\n}",
		"do while":      "void loop(void)\n{\n\tint x;\n\n\tx = 0;\n\tdo\n\t{\n\t\tx++;\n\t} while (x < 10);\n}\n",
		"inline braces": "int check(int v)\n{\n\tif (v > 0) {\n\t\treturn (1);\n\t}\n\treturn (0);\n}\n",
		"malformed":     "}{\n\x01weird\n\n\n",
		"empty":         "",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			eng := newTestEngine(t, Options{Identity: engineIdentity})
			once, _ := eng.Format("main.c", input)
			twice, _ := eng.Format("main.c", once)

			assert.Equal(t, once, twice)
		})
	}
}

func TestEngineRefreshKeepsCreation(t *testing.T) {
	t.Parallel()

	first := newTestEngine(t, Options{
		Identity: engineIdentity,
		Clock:    testClock(t, "2024/03/01 10:30:00"),
	})
	original, _ := first.Format("main.c", "int main(void)\n{\n\treturn (0);\n}\n")

	later := newTestEngine(t, Options{
		Identity: identity.Identity{Login: "other", Email: "other@student.42.fr"},
		Clock:    testClock(t, "2025/06/15 08:00:00"),
	})
	refreshed, _ := later.Format("main.c", original)

	assert.Contains(t, refreshed, "Created: 2024/03/01 10:30:00 by mrichard")
	assert.Contains(t, refreshed, "Updated: 2025/06/15 08:00:00 by other")
	assert.NotContains(t, refreshed, "Updated: 2024/03/01 10:30:00")
}

func TestEngineCollectsSkips(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, Options{SkipHeaders: true})
	input := "void f(void)\n{\n      bad;\n\tint a, b = 2;\n}\n"

	got, results := eng.Format("f.c", input)

	require.NotEmpty(t, got)

	var reasons []string
	for _, res := range results {
		reasons = append(reasons, skipReasons(res)...)
	}
	assert.Contains(t, reasons, "leading spaces are not a whole number of indent stops")
	assert.Contains(t, reasons, "multiple declarators in one statement")
}

func TestEngineNormalisesCRLF(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, Options{SkipHeaders: true})
	got, _ := eng.Format("x.c", "int x;\r\nint y;\r\n")

	assert.Equal(t, "int x;\n\nint y;\n", got)
	assert.NotContains(t, got, "\r")
}

func TestEngineDefaultsIndentWidth(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, Options{SkipHeaders: true, IndentWidth: 0})
	got, _ := eng.Format("x.c", "    int i;\n")

	assert.Equal(t, "\tint i;\n", got)
}

func TestEngineHeaderOnlyOnce(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, Options{Identity: engineIdentity})
	once, _ := eng.Format("main.c", "int x;\n")
	twice, _ := eng.Format("main.c", once)

	assert.Equal(t, 1, strings.Count(twice, header.BorderLine+"\n"+"/*"))
}
