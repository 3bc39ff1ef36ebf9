package tweaks

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/lintmux/internal/diagnostic"
	"github.com/scan-io-git/lintmux/internal/options"
)

func TestApplyWithoutRules(t *testing.T) {
	in := []diagnostic.Diagnostic{
		{Source: diagnostic.SourcePylint, Path: "a.py", Line: 1, Code: "C0114", Message: "Missing module docstring"},
		{Source: diagnostic.SourceFlake8, Path: "a.py", Line: 2, Code: "F401", Message: "'os' imported but unused"},
	}

	got := Apply(in, Table{}, options.New())
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestApplyPassesOnlyDeclaredOptions(t *testing.T) {
	cfg := options.New(
		options.Arg{Option: options.Pylint, Value: []string{"--secret"}},
		options.Arg{Option: options.AllowedOnecharNames, Value: []string{"i"}},
	)

	var seen []options.Arg
	table := Table{
		{Source: diagnostic.SourcePylint, Code: "X1"}: {
			UsedOptions: []options.Option{options.AllowedOnecharNames},
			ShouldKeep: func(_ diagnostic.Diagnostic, relevant []options.Arg) bool {
				seen = relevant
				return true
			},
		},
	}

	Apply([]diagnostic.Diagnostic{{Source: diagnostic.SourcePylint, Code: "X1"}}, table, cfg)

	require.Len(t, seen, 1)
	assert.Equal(t, options.AllowedOnecharNames, seen[0].Option)
}

func TestApplyDropsAndRewords(t *testing.T) {
	table := Table{
		{Source: diagnostic.SourcePylint, Code: "DROP"}: {
			ShouldKeep: func(diagnostic.Diagnostic, []options.Arg) bool { return false },
			Reword:     func(diagnostic.Diagnostic) string { t.Fatal("reword called on dropped diagnostic"); return "" },
		},
		{Source: diagnostic.SourcePylint, Code: "REWORD"}: {
			Reword: func(d diagnostic.Diagnostic) string { return "new " + d.Message },
		},
	}
	in := []diagnostic.Diagnostic{
		{Source: diagnostic.SourcePylint, Path: "a.py", Line: 3, Column: 4, Code: "REWORD", Message: "old", EndLine: diagnostic.IntPtr(3)},
		{Source: diagnostic.SourcePylint, Path: "a.py", Line: 1, Column: 1, Code: "DROP", Message: "gone"},
		{Source: diagnostic.SourceFlake8, Path: "a.py", Line: 2, Column: 1, Code: "REWORD", Message: "other source"},
	}

	got := Apply(in, table, options.New())

	require.Len(t, got, 2)
	assert.Equal(t, "new old", got[0].Message)
	assert.Equal(t, "other source", got[1].Message)
	assert.Equal(t, "old", in[0].Message, "input is not mutated")

	reworded := got[0]
	reworded.Message = in[0].Message
	assert.Equal(t, in[0], reworded, "only the message changes")
}

func TestDefaultInvalidName(t *testing.T) {
	d := diagnostic.Diagnostic{
		Source:  diagnostic.SourcePylint,
		Code:    "C0103",
		Message: `Variable name "i" doesn't conform to snake_case naming style`,
	}
	longName := d.WithMessage(`Constant name "value" doesn't conform to UPPER_CASE naming style`)

	allowed := options.New(options.Arg{Option: options.AllowedOnecharNames, Value: []string{"i", "j"}})
	assert.Empty(t, Apply([]diagnostic.Diagnostic{d}, Default(), allowed))
	assert.Len(t, Apply([]diagnostic.Diagnostic{longName}, Default(), allowed), 1)

	assert.Len(t, Apply([]diagnostic.Diagnostic{d}, Default(), options.New()), 1)
}

func TestDefaultRewords(t *testing.T) {
	tests := []struct {
		name string
		in   diagnostic.Diagnostic
		want string
	}{
		{
			name: "no-else-return",
			in: diagnostic.Diagnostic{Source: diagnostic.SourcePylint, Code: "R1705",
				Message: `Unnecessary "else" after "return", remove the "else" and de-indent the code inside it`},
			want: `The "else" is redundant because the branch before it always ends with "return"; remove it and de-indent its body`,
		},
		{
			name: "no-else-raise with elif",
			in: diagnostic.Diagnostic{Source: diagnostic.SourcePylint, Code: "R1720",
				Message: `Unnecessary "elif" after "raise", remove the leading "el" from "elif"`},
			want: `The "elif" is redundant because the branch before it always ends with "raise"; remove it and de-indent its body`,
		},
		{
			name: "consider-using-enumerate",
			in:   diagnostic.Diagnostic{Source: diagnostic.SourcePylint, Code: "C0200", Message: "Consider using enumerate instead of iterating with range and len"},
			want: enumerateHint,
		},
		{
			name: "line too long",
			in:   diagnostic.Diagnostic{Source: diagnostic.SourceFlake8, Code: "E501", Message: "line too long (90 > 79 characters)"},
			want: "line is 90 characters long, the limit is 79",
		},
		{
			name: "unrecognised message kept",
			in:   diagnostic.Diagnostic{Source: diagnostic.SourceFlake8, Code: "E501", Message: "something else"},
			want: "something else",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply([]diagnostic.Diagnostic{tt.in}, Default(), options.New())
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Message)
		})
	}
}
