package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariable(t *testing.T) {
	t.Run("terminal", func(t *testing.T) {
		v := &Variable{Name: "test"}
		assert.True(t, v.IsTerminal())
		assert.False(t, v.IsLiteral())
		assert.Empty(t, v.Type)
		assert.Empty(t, v.Rvals)
	})

	t.Run("literal is not terminal", func(t *testing.T) {
		v := NewLiteral("pi", "3.14")
		assert.True(t, v.IsLiteral())
		assert.False(t, v.IsTerminal())
	})

	t.Run("candidates", func(t *testing.T) {
		v := NewVariable("test", "", "a+B", "a")
		cands, err := v.Candidates()
		require.NoError(t, err)
		assert.Equal(t, []Candidate{
			{Expr: "a+B", Deps: []string{"a", "B"}},
			{Expr: "a", Deps: []string{"a"}},
		}, cands)
	})

	t.Run("malformed candidate", func(t *testing.T) {
		_, err := NewVariable("test", "", "a+").Candidates()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `variable "test"`)
	})
}

func TestVariableString(t *testing.T) {
	assert.Equal(t, "Double_t test = a+b|a|b", NewVariable("test", "Double_t", "a+b", "a", "b").String())
	assert.Equal(t, "pi := 3.14", NewLiteral("pi", "3.14").String())
	assert.Equal(t, "sel0 = a > 1", NewVariable("sel0", "", "a > 1").String())
}

func TestTable(t *testing.T) {
	tbl := NewTable(&Variable{Name: "b"}, &Variable{Name: "a"})
	tbl.Set("c", &Variable{Name: "c"})
	tbl.Set("b", NewVariable("b", "", "x"))

	assert.Equal(t, []string{"b", "a", "c"}, tbl.Keys())
	assert.Equal(t, 3, tbl.Len())
	b, ok := tbl.Get("b")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, b.Rvals)

	var missing *Table
	_, ok = missing.Get("a")
	assert.False(t, ok)
	assert.Empty(t, missing.Variables())

	scopes := Scopes{}
	scopes.Table("raw").Set("x", &Variable{Name: "x"})
	_, ok = scopes.Lookup("raw", "x")
	assert.True(t, ok)
	_, ok = scopes.Lookup("nope", "x")
	assert.False(t, ok)
}
