package branches

import (
	"context"
	"fmt"
	"slices"
)

// Ntuples is the combined view of a main ntuple and its friends.
type Ntuples struct {
	Path    string
	Friends []string
	// Trees holds the main ntuple's trees, extended with the branches of
	// every friend that has a tree of the same name.
	Trees *Dump
	// Relations records, per tree, whether each friend (in order) has it.
	Relations map[string][]bool
}

// DumpNtuples dumps the main ntuple, removes blocked trees and folds in the
// friends.
func DumpNtuples(ctx context.Context, l Lookup, path string, friends, blocked []string) (*Ntuples, error) {
	primary, err := l.Dump(ctx, path)
	if err != nil {
		return nil, err
	}

	trees := NewDump()
	relations := make(map[string][]bool)
	for _, t := range primary.Trees() {
		if slices.Contains(blocked, t.Name) {
			continue
		}
		trees.Add(t.clone())
		relations[t.Name] = []bool{}
	}

	for _, friend := range friends {
		fd, err := l.Dump(ctx, friend)
		if err != nil {
			return nil, fmt.Errorf("friend ntuple: %w", err)
		}
		for _, t := range trees.Trees() {
			ft, ok := fd.Tree(t.Name)
			relations[t.Name] = append(relations[t.Name], ok)
			if ok {
				t.Update(ft)
			}
		}
	}

	return &Ntuples{
		Path:      path,
		Friends:   append([]string(nil), friends...),
		Trees:     trees,
		Relations: relations,
	}, nil
}
