package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/ntuplegen/internal/app"
	"github.com/specialistvlad/ntuplegen/internal/config"
)

func TestParse(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse([]string{
		"babymaker.yml",
		"-n", "ntuple.yml",
		"--friend", "friend1.yml,friend2.yml",
		"--block-tree", "GetIntegratedLuminosity/LumiTuple",
		"-l", "pi=3.14",
		"--literal", "cuts=a>1,b<2",
		"-o", "out.cpp",
		"--format", "CPP",
		"--log-level", "debug",
		"--log-format", "json",
		"--workers", "4",
	}, &out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, &app.Config{
		ConfigPath:   "babymaker.yml",
		NtuplePath:   "ntuple.yml",
		Friends:      []string{"friend1.yml", "friend2.yml"},
		BlockedTrees: []string{"GetIntegratedLuminosity/LumiTuple"},
		Literals: []config.Pair{
			{Key: "pi", Value: "3.14"},
			{Key: "cuts", Value: "a>1,b<2"},
		},
		OutputPath:  "out.cpp",
		Format:      "cpp",
		LogFormat:   "json",
		LogLevel:    "debug",
		WorkerCount: 4,
	}, cfg)
}

func TestParse_ConfigFlagWins(t *testing.T) {
	cfg, _, err := Parse([]string{"-c", "flag.hcl", "-n", "n.yml", "positional.yml"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "flag.hcl", cfg.ConfigPath)
	assert.Equal(t, "debug", cfg.Format)
}

func TestParse_Exit(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {}} {
		var out bytes.Buffer
		cfg, exit, err := Parse(args, &out)
		require.NoError(t, err, args)
		assert.True(t, exit, args)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"--nope"}, "unknown flag: --nope"},
		{"too many args", []string{"a.yml", "b.yml"}, "accepts at most 1 arg(s)"},
		{"missing ntuple", []string{"a.yml"}, "NtuplePath is a required"},
		{"bad literal", []string{"a.yml", "-n", "n.yml", "-l", "pi"}, `invalid literal "pi"`},
		{"bad format", []string{"a.yml", "-n", "n.yml", "--format", "xml"}, `invalid format "xml"`},
		{"bad workers", []string{"a.yml", "-n", "n.yml", "--workers", "ten"}, "invalid argument"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, exit, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.False(t, exit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
