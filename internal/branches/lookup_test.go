package branches

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDump(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileLookup(t *testing.T) {
	path := writeDump(t, t.TempDir(), "ntuple.yml", `
TupleB0/DecayTree;1:
  Y_PT: Double_t
  runNumber: uint32_t
TupleB0/DecayTree;2:
  Y_PT: Double_t
  Y_PE: Double_t
  eventNumber: uint64_t
GetIntegratedLuminosity/LumiTuple:
  IntegratedLuminosity: Double_t
`)

	dump, err := NewFileLookup().Dump(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"TupleB0/DecayTree", "GetIntegratedLuminosity/LumiTuple"}, dump.Names())

	tree, ok := dump.Tree("TupleB0/DecayTree")
	require.True(t, ok)
	assert.Equal(t, []Branch{
		{Name: "Y_PT", Type: "Double_t"},
		{Name: "Y_PE", Type: "Double_t"},
		{Name: "eventNumber", Type: "ULong64_t"},
	}, tree.Branches())
}

func TestFileLookupErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileLookup().Dump(context.Background(), filepath.Join(dir, "none.yml"))
	assert.ErrorContains(t, err, "failed to read ntuple dump")

	_, err = NewFileLookup().Dump(context.Background(), writeDump(t, dir, "list.yml", "- a\n- b\n"))
	assert.ErrorContains(t, err, "expected a mapping")

	_, err = NewFileLookup().Dump(context.Background(), writeDump(t, dir, "bad.yml", "T: [a]\n"))
	assert.ErrorContains(t, err, "must map branch names")

	dump, err := NewFileLookup().Dump(context.Background(), writeDump(t, dir, "empty.yml", ""))
	require.NoError(t, err)
	assert.Empty(t, dump.Names())
}

func TestTypeHint(t *testing.T) {
	assert.Equal(t, "ULong64_t", TypeHint("uint64_t"))
	assert.Equal(t, "UInt_t", TypeHint("uint32_t"))
	assert.Equal(t, "Float_t", TypeHint("Float_t"))
	assert.Equal(t, "Tree", TreeName("Tree;13"))
	assert.Equal(t, "Tree", TreeName("Tree"))
}

func TestTree(t *testing.T) {
	tree := NewTree("T", Branch{"a", "Int_t"}, Branch{"b", "Double_t"}, Branch{"a", "Float_t"})
	assert.Equal(t, 2, tree.Len())
	typ, ok := tree.Type("a")
	assert.True(t, ok)
	assert.Equal(t, "Float_t", typ)

	tree.Update(NewTree("T", Branch{"c", "Bool_t"}, Branch{"b", "Float_t"}))
	assert.Equal(t, []Branch{{"a", "Float_t"}, {"b", "Float_t"}, {"c", "Bool_t"}}, tree.Branches())

	var empty *Dump
	_, ok = empty.Tree("T")
	assert.False(t, ok)
}
