package boolexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAllVars(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name:     "single variable",
			src:      "x",
			expected: []string{"x"},
		},
		{
			name:     "scoped function name is not a variable",
			src:      "TMath::Sqrt(arg1, arg2)",
			expected: []string{"arg1", "arg2"},
		},
		{
			name:     "receivers count, selectors do not",
			src:      "arg1->test(arg2, arg3) && arg4->call() && arg5.call(arg6) || arg7.arg8",
			expected: []string{"arg2", "arg3", "arg1", "arg4", "arg6", "arg5", "arg7"},
		},
		{
			name: "deepest level first",
			src: "!(FUNC1(arg1, arg2) && FUNC2(FUNC3(arg3, arg4, FUNC4(1, 2)) + arg6))||" +
				"FUNC6(arg7, arg8, arg9*FUNC7(arg10+arg11))",
			expected: []string{"arg3", "arg4", "arg10", "arg11", "arg6", "arg1", "arg2", "arg9", "arg7", "arg8"},
		},
		{
			name:     "literals and units",
			src:      "k_PT + pi_PT > 1400.0*MeV && true",
			expected: []string{"k_PT", "pi_PT", "MeV"},
		},
		{
			name:     "duplicates collapse",
			src:      "a + a * b - a",
			expected: []string{"a", "b"},
		},
		{
			name:     "scoped variable",
			src:      "Units::GeV * 3",
			expected: []string{"Units::GeV"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vars, err := FindAllVars(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, vars)
		})
	}
}

func TestFindAllArgs(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name:     "simple",
			src:      "FUNC1(arg1, arg2)",
			expected: []string{"arg1", "arg2"},
		},
		{
			name:     "nested",
			src:      "FUNC1(arg1, arg2, Rand(arg3, arg4, FUNC2(arg5 * 2.3, arg6 + arg7)))",
			expected: []string{"arg5", "arg6", "arg7", "arg3", "arg4", "arg1", "arg2"},
		},
		{
			name: "boolean context",
			src: "!(FUNC1(arg1, arg2) > 1 && FUNC2(FUNC3(arg3, arg4, FUNC4(1, 2)) +" +
				"arg6)) <= 3 || FUNC6(arg7 != 3, arg8, arg9*FUNC7())",
			expected: []string{"arg3", "arg4", "arg1", "arg2", "arg6", "arg7", "arg9", "arg8"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args, err := FindAllArgs(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, args)
		})
	}

	t.Run("variables outside calls are ignored", func(t *testing.T) {
		args, err := FindAllArgs("a + f(b)")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, args)
	})
}

func TestFindAllEmpty(t *testing.T) {
	vars, err := FindAllVars("")
	require.NoError(t, err)
	assert.Empty(t, vars)

	args, err := FindAllArgs("")
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestFindAllVarsParseError(t *testing.T) {
	_, err := FindAllVars("a +* b")
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestSubtreesOrder(t *testing.T) {
	expr, err := Parse("a + f(b)")
	require.NoError(t, err)

	var got []string
	for _, sub := range Subtrees(expr) {
		got = append(got, sub.String())
	}
	assert.Equal(t, []string{"b", "b", "a", "f(b)", "(a + f(b))"}, got)
	assert.Nil(t, Subtrees(nil))
}
