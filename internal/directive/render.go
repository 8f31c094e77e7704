package directive

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/ntuplegen/internal/dag"
)

// Output formats accepted by Render.
const (
	FormatDebug = "debug"
	FormatYAML  = "yaml"
	FormatCpp   = "cpp"
	FormatDot   = "dot"
)

// Formats lists every supported output format.
var Formats = []string{FormatDebug, FormatYAML, FormatCpp, FormatDot}

// Render writes d to w in the named format.
func Render(w io.Writer, d *Directive, format string) error {
	switch format {
	case FormatDebug:
		return WriteDebug(w, d)
	case FormatYAML:
		return WriteYAML(w, d)
	case FormatCpp:
		return WriteDeclarations(w, d)
	case FormatDot:
		return WriteDot(w, d)
	}
	return fmt.Errorf("unknown output format %q, expected one of %s", format, strings.Join(Formats, ", "))
}

// WriteDebug writes a Markdown summary of every tree.
func WriteDebug(w io.Writer, d *Directive) error {
	bw := bufio.NewWriter(w)
	for _, t := range d.Trees {
		fmt.Fprintf(bw, "# %s, from %s\n\n", t.Name, t.InputTree)

		fmt.Fprint(bw, "## Selection-related\n\n")
		writeSection(bw, "Cuts", t.Sel)
		writeSection(bw, "Pre-cut variables", nodeStrings(t.PreSelVars))
		writeSection(bw, "Post-cut variables", nodeStrings(t.PostSelVars))

		fmt.Fprint(bw, "## Input, output and temp variables\n\n")
		writeSection(bw, "Input variables", nodeStrings(t.Input))
		writeSection(bw, "Output variables", nodeStrings(t.Output))
		writeSection(bw, "Temp variables", nodeStrings(t.Tmp))

		fmt.Fprint(bw, "## Input variable full names\n")
		for _, br := range t.InputBr {
			fmt.Fprintf(bw, " - %s\n", br)
		}
		fmt.Fprint(bw, "\n")
	}
	return bw.Flush()
}

func writeSection(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "### %s\n", title)
	for _, it := range items {
		fmt.Fprintf(w, " - %s\n", it)
	}
	fmt.Fprint(w, "\n")
}

func nodeStrings(nodes []*dag.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.String()
	}
	return out
}

type yamlNode struct {
	Name  string `yaml:"name"`
	Fname string `yaml:"fname"`
	Type  string `yaml:"type,omitempty"`
	Rval  string `yaml:"rval"`
}

type yamlUnresolved struct {
	Kind    string   `yaml:"kind"`
	Name    string   `yaml:"name"`
	Expr    string   `yaml:"expr"`
	Missing []string `yaml:"missing,omitempty"`
}

type yamlTree struct {
	Name        string           `yaml:"name"`
	InputTree   string           `yaml:"input_tree"`
	Sel         []string         `yaml:"sel"`
	PreSelVars  []yamlNode       `yaml:"pre_sel_vars"`
	PostSelVars []yamlNode       `yaml:"post_sel_vars"`
	Input       []yamlNode       `yaml:"input"`
	Output      []yamlNode       `yaml:"output"`
	Tmp         []yamlNode       `yaml:"tmp"`
	InputBr     []string         `yaml:"input_br"`
	Dropped     []string         `yaml:"dropped,omitempty"`
	Unresolved  []yamlUnresolved `yaml:"unresolved,omitempty"`
	Extra       map[string]any   `yaml:"extra,omitempty"`
}

type yamlDirective struct {
	SystemHeaders []string          `yaml:"system_headers"`
	UserHeaders   []string          `yaml:"user_headers"`
	Ntuple        string            `yaml:"ntuple"`
	Friends       []string          `yaml:"friends"`
	InputTrees    []string          `yaml:"input_trees"`
	TreeRelations map[string][]bool `yaml:"tree_relations"`
	Trees         []yamlTree        `yaml:"trees"`
}

func yamlNodes(nodes []*dag.Node) []yamlNode {
	out := make([]yamlNode, len(nodes))
	for i, n := range nodes {
		out[i] = yamlNode{Name: n.Name, Fname: n.Fname(), Type: n.Type, Rval: n.Rval()}
	}
	return out
}

// WriteYAML writes the directive as a YAML document for template engines.
func WriteYAML(w io.Writer, d *Directive) error {
	doc := yamlDirective{
		SystemHeaders: d.SystemHeaders,
		UserHeaders:   d.UserHeaders,
		Ntuple:        d.Ntuple,
		Friends:       d.Friends,
		InputTrees:    d.InputTrees,
		TreeRelations: d.TreeRelations,
	}
	for _, t := range d.Trees {
		yt := yamlTree{
			Name:        t.Name,
			InputTree:   t.InputTree,
			Sel:         t.Sel,
			PreSelVars:  yamlNodes(t.PreSelVars),
			PostSelVars: yamlNodes(t.PostSelVars),
			Input:       yamlNodes(t.Input),
			Output:      yamlNodes(t.Output),
			Tmp:         yamlNodes(t.Tmp),
			InputBr:     t.InputBr,
			Dropped:     t.Dropped,
			Extra:       t.Extra,
		}
		for _, u := range t.Unresolved {
			yt.Unresolved = append(yt.Unresolved, yamlUnresolved{
				Kind: u.Kind.String(), Name: u.Name, Expr: u.Expr, Missing: u.Missing,
			})
		}
		doc.Trees = append(doc.Trees, yt)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode directive: %w", err)
	}
	return enc.Close()
}

// WriteDeclarations writes, per tree, the C++ reader declarations for input
// branches, the pre-cut assignments, the cut and the post-cut assignments.
func WriteDeclarations(w io.Writer, d *Directive) error {
	bw := bufio.NewWriter(w)
	for _, h := range d.SystemHeaders {
		fmt.Fprintf(bw, "#include <%s>\n", h)
	}
	for _, h := range d.UserHeaders {
		fmt.Fprintf(bw, "#include %s\n", strconv.Quote(h))
	}
	if len(d.SystemHeaders)+len(d.UserHeaders) > 0 {
		fmt.Fprint(bw, "\n")
	}

	for _, t := range d.Trees {
		fmt.Fprintf(bw, "// %s, from %s\n", t.Name, t.InputTree)
		for _, n := range t.Input {
			fmt.Fprintf(bw, "TTreeReaderValue<%s> %s_reader(reader, %s);\n", n.Type, n.Fname(), strconv.Quote(n.Name))
		}
		for _, n := range t.Input {
			fmt.Fprintf(bw, "%s %s = *%s_reader;\n", n.Type, n.Fname(), n.Fname())
		}
		writeAssignments(bw, t.PreSelVars)
		fmt.Fprintf(bw, "if (!(%s)) continue;\n", strings.Join(t.Sel, " && "))
		writeAssignments(bw, t.PostSelVars)
		fmt.Fprint(bw, "\n")
	}
	return bw.Flush()
}

func writeAssignments(w io.Writer, nodes []*dag.Node) {
	for _, n := range nodes {
		if n.IsLiteral() {
			continue
		}
		fmt.Fprintf(w, "%s %s = %s;\n", n.Type, n.Fname(), n.Rval())
	}
}

// WriteDot writes the dependency graph of every tree in Graphviz format,
// one cluster per tree.
func WriteDot(w io.Writer, d *Directive) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph directive {")
	fmt.Fprintln(bw, "  rankdir=LR;")
	for i, t := range d.Trees {
		g, err := dag.GraphOf(t.Resolved)
		if err != nil {
			return fmt.Errorf("tree %q: %w", t.Name, err)
		}
		fmt.Fprintf(bw, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(bw, "    label=%s;\n", strconv.Quote(t.Name))
		for _, id := range g.IDs() {
			fmt.Fprintf(bw, "    %s [label=%s];\n", strconv.Quote(t.Name+"/"+id), strconv.Quote(id))
		}
		for _, id := range g.IDs() {
			deps, err := g.Dependents(id)
			if err != nil {
				return err
			}
			for _, dep := range deps {
				fmt.Fprintf(bw, "    %s -> %s;\n", strconv.Quote(t.Name+"/"+id), strconv.Quote(t.Name+"/"+dep))
			}
		}
		fmt.Fprintln(bw, "  }")
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
