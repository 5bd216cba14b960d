// Package frameset loads frame declarations from HCL files for the CLI.
//
// A declaration file is a sequence of frame blocks:
//
//	frame "rocket" {
//	  path = "launches.rocket"
//	}
//
//	frame "payloads" {
//	  path   = "launches.rocket.payloads"
//	  nested = true
//	}
//
// The block label must equal the last segment of the path, since captured
// frames are keyed by that segment.
package frameset

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/galpin/pluck/api"
)

// Set holds the declared frame paths in declaration order, plus the paths
// explicitly marked as containing nested frames.
type Set struct {
	Frames []api.Path
	Nested []api.Path
}

type hclFile struct {
	Frames []*hclFrame `hcl:"frame,block"`
}

type hclFrame struct {
	Name   string `hcl:"name,label"`
	Path   string `hcl:"path"`
	Nested bool   `hcl:"nested,optional"`
}

// Load parses and validates a frame declaration file.
func Load(path string) (*Set, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w", path, diags)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %w", path, diags)
	}

	set := &Set{}
	for _, f := range parsed.Frames {
		p := api.ParsePath(f.Path)
		if len(p) == 0 {
			return nil, fmt.Errorf("frame %q: path must not be empty", f.Name)
		}
		if p.Last() != f.Name {
			return nil, fmt.Errorf("frame %q: last path segment is %q, must match the frame name", f.Name, p.Last())
		}
		set.Frames = append(set.Frames, p)
		if f.Nested {
			set.Nested = append(set.Nested, p)
		}
	}
	return set, nil
}
