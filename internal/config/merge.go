package config

// Merge returns the effective section for an output tree. With inherit set,
// the tree section extends global: lists are concatenated global first with
// duplicates dropped, and ordered maps keep global order with tree entries
// overriding values and new keys appended. Without inherit, a copy of the
// tree section is returned. Neither argument is modified.
func Merge(global, tree *Section, inherit bool) *Section {
	if global == nil || !inherit {
		global = &Section{}
	}
	if tree == nil {
		tree = &Section{}
	}
	return &Section{
		Keep:            mergeLists(global.Keep, tree.Keep),
		Drop:            mergeLists(global.Drop, tree.Drop),
		Rename:          mergePairs(global.Rename, tree.Rename),
		Calculation:     mergePairs(global.Calculation, tree.Calculation),
		Selection:       mergeLists(global.Selection, tree.Selection),
		GlobalSelection: mergeLists(global.GlobalSelection, tree.GlobalSelection),
		SkipNames:       mergeLists(global.SkipNames, tree.SkipNames),
		Mute:            mergeLists(global.Mute, tree.Mute),
	}
}

func mergeLists(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, item := range list {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

func mergePairs(base, override []Pair) []Pair {
	var out []Pair
	index := make(map[string]int)
	for _, list := range [][]Pair{base, override} {
		for _, p := range list {
			if i, ok := index[p.Key]; ok {
				out[i].Value = p.Value
				continue
			}
			index[p.Key] = len(out)
			out = append(out, p)
		}
	}
	return out
}
