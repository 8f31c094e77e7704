package branches

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLookup map[string]*Dump

func (m mapLookup) Dump(_ context.Context, path string) (*Dump, error) {
	d, ok := m[path]
	if !ok {
		return nil, errors.New("no such ntuple: " + path)
	}
	return d, nil
}

func TestDumpNtuples(t *testing.T) {
	lookup := mapLookup{
		"main.root": NewDump(
			NewTree("A", Branch{"a_pt", "Double_t"}),
			NewTree("B", Branch{"b_pt", "Double_t"}),
			NewTree("Lumi", Branch{"lumi", "Double_t"}),
		),
		"friend1.root": NewDump(NewTree("A", Branch{"a_bdt", "Float_t"})),
		"friend2.root": NewDump(
			NewTree("A", Branch{"a_pid", "Float_t"}),
			NewTree("B", Branch{"b_pid", "Float_t"}),
		),
	}

	nt, err := DumpNtuples(context.Background(), lookup, "main.root", []string{"friend1.root", "friend2.root"}, []string{"Lumi"})
	require.NoError(t, err)

	assert.Equal(t, "main.root", nt.Path)
	assert.Equal(t, []string{"A", "B"}, nt.Trees.Names())
	assert.Equal(t, map[string][]bool{
		"A": {true, true},
		"B": {false, true},
	}, nt.Relations)

	a, _ := nt.Trees.Tree("A")
	assert.Equal(t, []Branch{{"a_pt", "Double_t"}, {"a_bdt", "Float_t"}, {"a_pid", "Float_t"}}, a.Branches())

	orig, _ := lookup["main.root"].Tree("A")
	assert.Equal(t, 1, orig.Len(), "the lookup's trees must not be modified")
}

func TestDumpNtuplesNoFriends(t *testing.T) {
	lookup := mapLookup{"main.root": NewDump(NewTree("A"))}
	nt, err := DumpNtuples(context.Background(), lookup, "main.root", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string][]bool{"A": {}}, nt.Relations)
}

func TestDumpNtuplesErrors(t *testing.T) {
	lookup := mapLookup{"main.root": NewDump(NewTree("A"))}

	_, err := DumpNtuples(context.Background(), lookup, "missing.root", nil, nil)
	assert.Error(t, err)

	_, err = DumpNtuples(context.Background(), lookup, "main.root", []string{"missing.root"}, nil)
	assert.ErrorContains(t, err, "friend ntuple")
}
