package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// AnalysisSettings are the optional analysis overrides a building file
// may carry. Zero values mean "not set"; the caller falls back to its
// defaults for those.
type AnalysisSettings struct {
	Damping       float64 `hcl:"damping,optional"`        // target damping ratio
	Dt            float64 `hcl:"dt,optional"`             // ground motion sampling interval (s)
	DtOut         float64 `hcl:"dt_out,optional"`         // output/analysis step (s)
	Duration      float64 `hcl:"duration,optional"`       // analysis stop time (s)
	Gamma         float64 `hcl:"gamma,optional"`          // Newmark gamma
	Beta          float64 `hcl:"beta,optional"`           // Newmark beta
	Tolerance     float64 `hcl:"tolerance,optional"`      // unbalanced norm tolerance
	MaxIterations int     `hcl:"max_iterations,optional"` // Newton iteration cap
	Scale         float64 `hcl:"scale,optional"`          // record scale factor
}

type storyBlock struct {
	Mass           float64 `hcl:"mass"`
	YieldStrength  float64 `hcl:"yield_strength"`
	Stiffness      float64 `hcl:"stiffness"`
	HardeningRatio float64 `hcl:"hardening_ratio,optional"`
}

type buildingBlock struct {
	Name    string       `hcl:"name,label"`
	Stories []storyBlock `hcl:"story,block"`
}

type configRoot struct {
	Building *buildingBlock    `hcl:"building,block"`
	Analysis *AnalysisSettings `hcl:"analysis,block"`
}

// LoadConfig reads a building definition file. The file holds one
// labeled building block with its story blocks bottom-to-top, plus an
// optional analysis block:
//
//	building "three-story" {
//	  story { mass = 0.1  yield_strength = 0.55  stiffness = 60 }
//	  ...
//	}
//	analysis { damping = 0.05 }
//
// Story parameter positivity is not checked here; the solver rejects
// non-physical models on its own.
func LoadConfig(path string) (*BuildingModel, *AnalysisSettings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, diags)
	}

	var root configRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, nil, fmt.Errorf("decoding %s: %w", path, diags)
	}
	if root.Building == nil {
		return nil, nil, fmt.Errorf("%s: no building block defined", path)
	}
	if len(root.Building.Stories) == 0 {
		return nil, nil, fmt.Errorf("%s: building %q has no story blocks", path, root.Building.Name)
	}

	bm := &BuildingModel{Stories: make([]Story, 0, len(root.Building.Stories))}
	for _, s := range root.Building.Stories {
		bm.Stories = append(bm.Stories, Story{
			Mass:           s.Mass,
			YieldStrength:  s.YieldStrength,
			Stiffness:      s.Stiffness,
			HardeningRatio: s.HardeningRatio,
		})
	}

	settings := root.Analysis
	if settings == nil {
		settings = &AnalysisSettings{}
	}
	return bm, settings, nil
}
