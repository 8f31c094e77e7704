package yamlconf

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/ntuplegen/internal/config"
	"github.com/specialistvlad/ntuplegen/internal/ctxlog"
)

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every path in turn. Later files extend the global section of
// earlier ones and add output trees; redefining an output tree is an error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := &config.Model{Global: &config.Section{}}
	seen := make(map[string]struct{})

	for _, path := range paths {
		root, err := readFile(path, nil)
		if err != nil {
			return nil, err
		}
		var doc fileDoc
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}

		model.Headers.System = append(model.Headers.System, doc.Headers.System...)
		model.Headers.User = append(model.Headers.User, doc.Headers.User...)
		model.Global = config.Merge(model.Global, doc.sectionDoc.section(), true)

		for _, out := range doc.Output {
			if _, dup := seen[out.Name]; dup {
				return nil, fmt.Errorf("%s: output tree %q defined more than once", path, out.Name)
			}
			seen[out.Name] = struct{}{}
			model.Outputs = append(model.Outputs, out)
		}
	}

	logger.Debug("YAML loading complete.", "outputs", len(model.Outputs))
	return model, nil
}

type fileDoc struct {
	Headers struct {
		System []string `yaml:"system"`
		User   []string `yaml:"user"`
	} `yaml:"headers"`
	sectionDoc `yaml:",inline"`
	Output     outputList `yaml:"output"`
}

type sectionDoc struct {
	Keep            []string   `yaml:"keep"`
	Drop            []string   `yaml:"drop"`
	Rename          orderedMap `yaml:"rename"`
	Calculation     orderedMap `yaml:"calculation"`
	Selection       []string   `yaml:"selection"`
	GlobalSelection []string   `yaml:"global_selection"`
	SkipNames       []string   `yaml:"skip_names"`
	Mute            []string   `yaml:"mute"`
}

func (s sectionDoc) section() *config.Section {
	return &config.Section{
		Keep:            s.Keep,
		Drop:            s.Drop,
		Rename:          s.Rename,
		Calculation:     s.Calculation,
		Selection:       s.Selection,
		GlobalSelection: s.GlobalSelection,
		SkipNames:       s.SkipNames,
		Mute:            s.Mute,
	}
}

type outputDoc struct {
	Input      string `yaml:"input"`
	Inherit    *bool  `yaml:"inherit"`
	sectionDoc `yaml:",inline"`
}

// knownOutputKeys are consumed by outputDoc; everything else goes to Extra.
var knownOutputKeys = []string{
	"input", "inherit", "keep", "drop", "rename", "calculation",
	"selection", "global_selection", "skip_names", "mute",
}

type orderedMap []config.Pair

func (m *orderedMap) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		var val string
		if err := n.Content[i+1].Decode(&val); err != nil {
			return fmt.Errorf("line %d: value of %q: %w", n.Content[i+1].Line, n.Content[i].Value, err)
		}
		*m = append(*m, config.Pair{Key: n.Content[i].Value, Value: val})
	}
	return nil
}

type outputList []*config.Output

func (o *outputList) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: output must map tree names to definitions", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, body := n.Content[i].Value, n.Content[i+1]

		var doc outputDoc
		if err := body.Decode(&doc); err != nil {
			return fmt.Errorf("output tree %q: %w", name, err)
		}
		if doc.Input == "" {
			return fmt.Errorf("output tree %q: missing input tree", name)
		}

		var extra map[string]any
		if err := body.Decode(&extra); err != nil {
			return fmt.Errorf("output tree %q: %w", name, err)
		}
		for _, k := range knownOutputKeys {
			delete(extra, k)
		}
		if len(extra) == 0 {
			extra = nil
		}

		*o = append(*o, &config.Output{
			Name:    name,
			Input:   doc.Input,
			Inherit: doc.Inherit,
			Section: doc.sectionDoc.section(),
			Extra:   extra,
		})
	}
	return nil
}
