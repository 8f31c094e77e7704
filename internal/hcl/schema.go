package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode the top-level blocks from any file. Section
// attributes are read from Remain.
type fileRoot struct {
	Headers []*headersBlock `hcl:"headers,block"`
	Outputs []*outputBlock  `hcl:"output,block"`
	Remain  hcl.Body        `hcl:",remain"`
}

type headersBlock struct {
	System []string `hcl:"system,optional"`
	User   []string `hcl:"user,optional"`
}

type outputBlock struct {
	Name    string   `hcl:"name,label"`
	Input   string   `hcl:"input"`
	Inherit *bool    `hcl:"inherit,optional"`
	Remain  hcl.Body `hcl:",remain"`
}

// Section attribute names shared by the top level and output blocks.
const (
	attrKeep            = "keep"
	attrDrop            = "drop"
	attrRename          = "rename"
	attrCalculation     = "calculation"
	attrSelection       = "selection"
	attrGlobalSelection = "global_selection"
	attrSkipNames       = "skip_names"
	attrMute            = "mute"
)
