package model

import "github.com/jjaramillod93/goshake/internal/units"

// Story holds the mass and hysteretic spring parameters of one floor.
// Stories are ordered bottom-to-top and are not modified after the
// building is assembled; validity of the values (positive mass and
// stiffness) is enforced by the solver, not here.
type Story struct {
	// Mass lumped at the floor level (Ton)
	Mass float64

	// Yield strength of the story spring (kN)
	YieldStrength float64

	// Initial (elastic) story stiffness (kN/m)
	Stiffness float64

	// Post-yield stiffness as a fraction of the initial stiffness
	HardeningRatio float64
}

// BuildingModel is a shear-building idealization: one horizontal
// translational degree of freedom per floor, connected to the floor
// below by a bilinear hysteretic spring.
type BuildingModel struct {
	Stories []Story
}

// NumFloors returns the number of dynamic degrees of freedom.
func (b *BuildingModel) NumFloors() int {
	return len(b.Stories)
}

// NumNodes returns the node count including the fixed ground node.
func (b *BuildingModel) NumNodes() int {
	return len(b.Stories) + 1
}

// DefaultThreeStory returns the three-story demonstration building:
// 0.1 Ton per floor, story strengths 0.55/0.45/0.30 kN, stiffnesses
// 60/50/30 kN/m and 1% strain hardening.
func DefaultThreeStory() *BuildingModel {
	return &BuildingModel{
		Stories: []Story{
			{Mass: 0.1 * units.Ton, YieldStrength: 0.55 * units.KN, Stiffness: 60 * units.KN / units.M, HardeningRatio: 0.01},
			{Mass: 0.1 * units.Ton, YieldStrength: 0.45 * units.KN, Stiffness: 50 * units.KN / units.M, HardeningRatio: 0.01},
			{Mass: 0.1 * units.Ton, YieldStrength: 0.30 * units.KN, Stiffness: 30 * units.KN / units.M, HardeningRatio: 0.01},
		},
	}
}
