package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/tie/modupdater/manifest/jsonspec"
)

// Patch lists changes applied to a manifest before updating it.
type Patch struct {
	// Add appends projects with no pinned file.
	Add []int `hcl:"add,optional" yaml:"add"`
	// Remove drops the first entry of each project.
	Remove []int `hcl:"remove,optional" yaml:"remove"`
	// Freeze keeps the pinned file of each project as is.
	Freeze []int `hcl:"freeze,optional" yaml:"freeze"`

	Remain hcl.Body `hcl:",remain" yaml:"-"`
}

// ParsePatch decodes a patch from src. Files ending in .json are read
// as JSON, .yaml and .yml as YAML, anything else as native HCL syntax.
// The returned diagnostics refer to the parser's files.
func ParsePatch(p *hclparse.Parser, src []byte, filename string) (*Patch, hcl.Diagnostics) {
	var file *hcl.File
	var diags hcl.Diagnostics
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		file, diags = p.ParseJSON(src, filename)
	case ".yaml", ".yml":
		return parseYAMLPatch(src, filename)
	default:
		file, diags = p.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, diags
	}
	var patch Patch
	diags = append(diags, gohcl.DecodeBody(file.Body, nil, &patch)...)
	if diags.HasErrors() {
		return nil, diags
	}
	return &patch, diags
}

func parseYAMLPatch(src []byte, filename string) (*Patch, hcl.Diagnostics) {
	var patch Patch
	if err := yaml.Unmarshal(src, &patch); err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid YAML patch",
			Detail:   fmt.Sprintf("Failed to decode %s: %s.", filename, err),
		}}
	}
	return &patch, nil
}

// Apply adds and removes manifest entries and returns the set of
// frozen project IDs. Added entries get file ID 0 so that any
// available file is newer.
func (p *Patch) Apply(m *jsonspec.Manifest) map[int]bool {
	if p == nil {
		return nil
	}
	for _, id := range p.Add {
		m.Files = append(m.Files, jsonspec.File{
			ProjectID: id,
			FileID:    0,
			Required:  true,
		})
	}
	for _, id := range p.Remove {
		i := m.Index(id)
		if i < 0 {
			continue
		}
		m.Files = append(m.Files[:i], m.Files[i+1:]...)
	}
	frozen := make(map[int]bool, len(p.Freeze))
	for _, id := range p.Freeze {
		frozen[id] = true
	}
	return frozen
}
