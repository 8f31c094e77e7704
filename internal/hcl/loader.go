package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/ntuplegen/internal/config"
	"github.com/specialistvlad/ntuplegen/internal/ctxlog"
	"github.com/specialistvlad/ntuplegen/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths. Directories are walked
// recursively. Global sections from several files are merged, and an output
// tree may only be defined once.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := &config.Model{Global: &config.Section{}}
	seen := make(map[string]struct{})
	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, h := range root.Headers {
			model.Headers.System = append(model.Headers.System, h.System...)
			model.Headers.User = append(model.Headers.User, h.User...)
		}

		global, extra, err := translateSection(ctx, root.Remain)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", file, err)
		}
		for name := range extra {
			logger.Warn("Ignoring unknown top-level attribute.", "file", file, "attribute", name)
		}
		model.Global = config.Merge(model.Global, global, true)

		for _, ob := range root.Outputs {
			if _, dup := seen[ob.Name]; dup {
				return nil, fmt.Errorf("in %s: output tree %q defined more than once", file, ob.Name)
			}
			seen[ob.Name] = struct{}{}

			out, err := translateOutput(ctx, ob)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Outputs = append(model.Outputs, out)
		}
	}

	logger.Debug("HCL loading complete.", "files", len(hclFiles), "outputs", len(model.Outputs))
	return model, nil
}

func translateOutput(ctx context.Context, ob *outputBlock) (*config.Output, error) {
	section, extra, err := translateSection(ctx, ob.Remain)
	if err != nil {
		return nil, fmt.Errorf("output tree %q: %w", ob.Name, err)
	}
	if ob.Input == "" {
		return nil, fmt.Errorf("output tree %q: missing input tree", ob.Name)
	}
	return &config.Output{
		Name:    ob.Name,
		Input:   ob.Input,
		Inherit: ob.Inherit,
		Section: section,
		Extra:   extra,
	}, nil
}

// translateSection reads the section attributes of body. Attributes that
// are not part of a section are returned as plain Go values.
func translateSection(ctx context.Context, body hcl.Body) (*config.Section, map[string]any, error) {
	section := &config.Section{}
	if body == nil {
		return section, nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, nil, diags
	}

	lists := map[string]*[]string{
		attrKeep:            &section.Keep,
		attrDrop:            &section.Drop,
		attrSelection:       &section.Selection,
		attrGlobalSelection: &section.GlobalSelection,
		attrSkipNames:       &section.SkipNames,
		attrMute:            &section.Mute,
	}
	pairs := map[string]*[]config.Pair{
		attrRename:      &section.Rename,
		attrCalculation: &section.Calculation,
	}

	var extra map[string]any
	for name, attr := range attrs {
		if target, ok := lists[name]; ok {
			if err := decodeAttr(ctx, attr, target); err != nil {
				return nil, nil, err
			}
			continue
		}
		if target, ok := pairs[name]; ok {
			p, err := decodePairs(ctx, attr)
			if err != nil {
				return nil, nil, err
			}
			*target = p
			continue
		}

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, nil, diags
		}
		gv, err := toGo(val)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: attribute %q: %w", attr.Range, name, err)
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[name] = gv
	}
	return section, extra, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found. A missing path is skipped.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return allFiles, nil
}
