package analysis

// Engine is the boundary to the external structural solver. It lists
// exactly the operations this workflow consumes; *opensees.Engine is
// the production implementation and tests substitute recording stubs.
//
// All structural state lives behind the engine. Methods must be called
// from a single goroutine in workflow order.
type Engine interface {
	// Model lifecycle
	Wipe() error
	WipeAnalysis() error
	Model(ndm, ndf int) error

	// Model definition
	Node(tag int, x float64) error
	MassNode(tag int, x, mass float64) error
	Fix(tag int, dofs ...int) error
	Steel01(tag int, fy, k, b float64) error
	ZeroLength(tag, iNode, jNode, matTag, dir int) error

	// Modal and damping
	Eigen(n int) ([]float64, error)
	Rayleigh(aM, aK, aKInit, aKComm float64) error

	// Excitation
	PathTimeSeries(tag int, dt float64, values []float64, factor float64) error
	UniformExcitation(patternTag, dir, seriesTag int) error

	// Analysis configuration
	Constraints(kind string) error
	Numberer(kind string) error
	System(kind string) error
	Algorithm(kind string) error
	NormUnbalanceTest(tol float64, maxIter int) error
	NewmarkIntegrator(gamma, beta float64) error
	TransientAnalysis() error

	// Stepping and response queries
	Analyze(steps int, dt float64) error
	NodeDisp(tag, dof int) (float64, error)
	NodeAccel(tag, dof int) (float64, error)
	EleForce(tag, dof int) (float64, error)
}
