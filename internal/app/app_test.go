package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/ntuplegen/internal/branches"
	"github.com/specialistvlad/ntuplegen/internal/config"
	"github.com/specialistvlad/ntuplegen/internal/hcl"
	"github.com/specialistvlad/ntuplegen/internal/yamlconf"
)

const babymakerYAML = `
headers:
  system: [cmath]
rename:
  Y_PT: y_pt
calculation:
  y_pt_gev: "Double_t; y_pt / GeV"
skip_names: [GeV]
output:
  YTuple:
    input: TupleB0/DecayTree
    selection: ["Y_PT > cut"]
  Orphan:
    input: TupleB0/Missing
`

const ntupleDump = `
TupleB0/DecayTree;1:
  Y_PT: Double_t
  Y_PE: Double_t
`

const wantCpp = "#include <cmath>\n\n" +
	"// YTuple, from TupleB0/DecayTree\n" +
	"TTreeReaderValue<Double_t> raw_Y_PT_reader(reader, \"Y_PT\");\n" +
	"Double_t raw_Y_PT = *raw_Y_PT_reader;\n" +
	"if (!(true && raw_Y_PT > 1000)) continue;\n" +
	"Double_t rename_y_pt = raw_Y_PT;\n" +
	"Double_t calculation_y_pt_gev = rename_y_pt / GeV;\n\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg, err := NewConfig(Config{
		ConfigPath: writeFile(t, dir, "babymaker.yml", babymakerYAML),
		NtuplePath: writeFile(t, dir, "ntuple.yml", ntupleDump),
		Literals:   []config.Pair{{Key: "cut", Value: "1000"}},
		Format:     "cpp",
	})
	require.NoError(t, err)
	return cfg
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	a, out, logs := SetupAppTest(t, cfg)

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, wantCpp, out.String())
	assert.Contains(t, logs.String(), "=== Handling output tree YTuple ===")
	assert.Contains(t, logs.String(), "Input tree TupleB0/Missing not found, skipping Orphan...")
	assert.Contains(t, logs.String(), "Directive written.")
}

func TestRun_OutputFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputPath = filepath.Join(t.TempDir(), "directive.cpp")
	a, out, _ := SetupAppTest(t, cfg)

	require.NoError(t, a.Run(context.Background()))

	assert.Empty(t, out.String())
	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, wantCpp, string(data))
}

func TestRun_HCLDirectory(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	writeFile(t, dir, "main.hcl", `
rename = {
  Y_PE = "y_pe"
}
output "ETuple" {
  input = "TupleB0/DecayTree"
}
`)
	cfg.ConfigPath = dir
	cfg.Format = "debug"
	a, out, _ := SetupAppTest(t, cfg)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "# ETuple, from TupleB0/DecayTree\n")
	assert.Contains(t, out.String(), " - Double_t rename.y_pe = raw_Y_PE\n")
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing ntuple dump", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.NtuplePath = filepath.Join(t.TempDir(), "absent.yml")
		a, _, _ := SetupAppTest(t, cfg)

		err := a.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to dump ntuple structure")
	})

	t.Run("loader failure", func(t *testing.T) {
		boom := errors.New("boom")
		a, _, _ := SetupAppTest(t, testConfig(t), WithLoader(failingLoader{err: boom}))

		err := a.Run(context.Background())
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failed to load configuration")
	})

	t.Run("invalid calculation", func(t *testing.T) {
		model := &config.Model{Outputs: []*config.Output{{
			Name:    "T",
			Input:   "TupleB0/DecayTree",
			Section: &config.Section{Calculation: []config.Pair{{Key: "x", Value: "double"}}},
		}}}
		a, _, _ := SetupAppTest(t, testConfig(t), WithLoader(staticLoader{model: model}))

		err := a.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to build directive")
		assert.Contains(t, err.Error(), "illegal specification for x: double")
	})
}

func TestWithLookup(t *testing.T) {
	lookup := staticLookup{dump: branches.NewDump(
		branches.NewTree("TupleB0/DecayTree", branches.Branch{Name: "Y_PT", Type: "Float_t"}),
	)}
	cfg := testConfig(t)
	cfg.Format = "yaml"
	a, out, _ := SetupAppTest(t, cfg, WithLookup(lookup))

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "type: Float_t")
}

func TestLoaderFor(t *testing.T) {
	assert.IsType(t, &yamlconf.Loader{}, loaderFor("a/babymaker.yml"))
	assert.IsType(t, &yamlconf.Loader{}, loaderFor("babymaker.YAML"))
	assert.IsType(t, &hcl.Loader{}, loaderFor("babymaker.hcl"))
	assert.IsType(t, &hcl.Loader{}, loaderFor("configs/"))
}

type failingLoader struct{ err error }

func (l failingLoader) Load(context.Context, ...string) (*config.Model, error) {
	return nil, l.err
}

type staticLoader struct{ model *config.Model }

func (l staticLoader) Load(context.Context, ...string) (*config.Model, error) {
	return l.model, nil
}

type staticLookup struct{ dump *branches.Dump }

func (l staticLookup) Dump(context.Context, string) (*branches.Dump, error) {
	return l.dump, nil
}
