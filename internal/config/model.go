package config

// Model is the whole configuration.
type Model struct {
	Headers Headers
	// Global holds the top-level sections shared by all output trees.
	Global *Section
	// Outputs are kept in file order. Output order decides the order of
	// trees in the generated directive.
	Outputs []*Output
}

// Headers lists C++ includes.
type Headers struct {
	System []string
	User   []string
}

// Pair is one entry of an ordered mapping.
type Pair struct {
	Key   string
	Value string
}

// Section is the set of directives that can appear both globally and per
// output tree.
type Section struct {
	// Keep and Drop are regular expressions matched against raw branch names.
	Keep []string
	Drop []string
	// Rename maps raw branch names to output names.
	Rename []Pair
	// Calculation maps output names to "type; rval1; rval2..." definitions.
	Calculation     []Pair
	Selection       []string
	GlobalSelection []string
	SkipNames       []string
	// Mute holds regular expressions that silence unresolved warnings.
	Mute []string
}

// Output is one output tree.
type Output struct {
	Name string
	// Input is the name of the input tree in the ntuple.
	Input string
	// Inherit is nil when unset, which means true.
	Inherit *bool
	Section *Section
	// Extra carries unknown keys through to the directive unchanged.
	Extra map[string]any
}

// Inherits reports whether the output tree extends the global section.
func (o *Output) Inherits() bool {
	return o.Inherit == nil || *o.Inherit
}

// Lookup returns the value stored under key.
func Lookup(pairs []Pair, key string) (string, bool) {
	for _, p := range pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}
