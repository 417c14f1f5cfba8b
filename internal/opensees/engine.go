// Package opensees drives an OpenSees Tcl interpreter running as a
// child process. The interpreter owns all structural state (model,
// materials, analysis objects); this package only translates method
// calls into interpreter commands and reads query replies back.
//
// Replies are requested by wrapping the query in a puts with a fixed
// sentinel prefix, so interpreter chatter on stdout is skipped safely.
package opensees

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// sentinel marks lines on the interpreter's stdout that carry a reply
// to one of our queries.
const sentinel = "#goshake>"

// Engine is a handle on one interpreter process. It is not safe for
// concurrent use; the analysis workflow is strictly sequential.
type Engine struct {
	cmd *exec.Cmd
	in  io.Writer
	out *bufio.Scanner

	stdin io.Closer
}

// Launch starts the interpreter binary and attaches to its pipes. The
// caller owns the returned engine and must Close it on every exit
// path; Close wipes the model before the process is released.
func Launch(ctx context.Context, binary string) (*Engine, error) {
	cmd := exec.CommandContext(ctx, binary)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening solver stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening solver stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting solver %q: %w", binary, err)
	}
	return &Engine{
		cmd:   cmd,
		in:    stdin,
		out:   bufio.NewScanner(stdout),
		stdin: stdin,
	}, nil
}

// Attach builds an engine over an existing command/reply stream. Used
// by tests to exercise the command encoding without a process.
func Attach(in io.Writer, out io.Reader) *Engine {
	return &Engine{in: in, out: bufio.NewScanner(out)}
}

// Close wipes the interpreter's model state and shuts the process
// down. Safe to defer immediately after Launch.
func (e *Engine) Close() error {
	_ = e.send("wipe")
	_ = e.send("exit")
	if e.stdin != nil {
		_ = e.stdin.Close()
	}
	if e.cmd != nil {
		return e.cmd.Wait()
	}
	return nil
}

// send writes one interpreter command line.
func (e *Engine) send(line string) error {
	if _, err := io.WriteString(e.in, line+"\n"); err != nil {
		return fmt.Errorf("writing to solver: %w", err)
	}
	return nil
}

// query evaluates expr inside the interpreter and returns its textual
// result. Lines without the sentinel prefix are interpreter noise and
// are skipped.
func (e *Engine) query(expr string) (string, error) {
	if err := e.send(fmt.Sprintf("puts \"%s [%s]\"", sentinel, expr)); err != nil {
		return "", err
	}
	for e.out.Scan() {
		line := e.out.Text()
		if rest, ok := strings.CutPrefix(line, sentinel); ok {
			return strings.TrimSpace(rest), nil
		}
	}
	if err := e.out.Err(); err != nil {
		return "", fmt.Errorf("reading from solver: %w", err)
	}
	return "", fmt.Errorf("solver closed its output before replying to %q", expr)
}

// queryFloat evaluates expr and parses a single float reply.
func (e *Engine) queryFloat(expr string) (float64, error) {
	reply, err := e.query(expr)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(reply, 64)
	if err != nil {
		return 0, fmt.Errorf("solver reply %q to %q: %w", reply, expr, err)
	}
	return v, nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Wipe clears every model and analysis definition held by the
// interpreter.
func (e *Engine) Wipe() error { return e.send("wipe") }

// WipeAnalysis clears analysis objects only, keeping the model.
func (e *Engine) WipeAnalysis() error { return e.send("wipeAnalysis") }

// Model selects the basic model builder with the given spatial
// dimension and per-node degree-of-freedom count.
func (e *Engine) Model(ndm, ndf int) error {
	return e.send(fmt.Sprintf("model basic -ndm %d -ndf %d", ndm, ndf))
}

// Node defines a massless node.
func (e *Engine) Node(tag int, x float64) error {
	return e.send(fmt.Sprintf("node %d %s", tag, ftoa(x)))
}

// MassNode defines a node carrying a lumped translational mass.
func (e *Engine) MassNode(tag int, x, mass float64) error {
	return e.send(fmt.Sprintf("node %d %s -mass %s", tag, ftoa(x), ftoa(mass)))
}

// Fix restrains the listed degrees of freedom of a node.
func (e *Engine) Fix(tag int, dofs ...int) error {
	parts := make([]string, 0, len(dofs)+2)
	parts = append(parts, "fix", strconv.Itoa(tag))
	for _, d := range dofs {
		parts = append(parts, strconv.Itoa(d))
	}
	return e.send(strings.Join(parts, " "))
}

// Steel01 defines a bilinear hysteretic uniaxial material with yield
// strength fy, initial stiffness k and hardening ratio b.
func (e *Engine) Steel01(tag int, fy, k, b float64) error {
	return e.send(fmt.Sprintf("uniaxialMaterial Steel01 %d %s %s %s", tag, ftoa(fy), ftoa(k), ftoa(b)))
}

// ZeroLength connects two coincident nodes with a uniaxial material
// acting along dir, participating in Rayleigh damping.
func (e *Engine) ZeroLength(tag, iNode, jNode, matTag, dir int) error {
	return e.send(fmt.Sprintf("element zeroLength %d %d %d -mat %d -dir %d -doRayleigh 1",
		tag, iNode, jNode, matTag, dir))
}

// Eigen solves for the first n eigenvalues of the assembled model
// using the full general solver, returning them lowest first.
func (e *Engine) Eigen(n int) ([]float64, error) {
	reply, err := e.query(fmt.Sprintf("eigen -fullGenLapack %d", n))
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(reply)
	if len(fields) != n {
		return nil, fmt.Errorf("eigen returned %d values, wanted %d: %q", len(fields), n, reply)
	}
	vals := make([]float64, n)
	for i, f := range fields {
		if vals[i], err = strconv.ParseFloat(f, 64); err != nil {
			return nil, fmt.Errorf("eigenvalue %d: %w", i+1, err)
		}
	}
	return vals, nil
}

// Rayleigh assigns the four Rayleigh damping factors (mass, current
// stiffness, initial stiffness, committed stiffness proportional).
func (e *Engine) Rayleigh(aM, aK, aKInit, aKComm float64) error {
	return e.send(fmt.Sprintf("rayleigh %s %s %s %s", ftoa(aM), ftoa(aK), ftoa(aKInit), ftoa(aKComm)))
}

// PathTimeSeries registers a fixed-spacing sampled time series with a
// uniform scale factor applied by the interpreter.
func (e *Engine) PathTimeSeries(tag int, dt float64, values []float64, factor float64) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "timeSeries Path %d -dt %s -values {", tag, ftoa(dt))
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(ftoa(v))
	}
	fmt.Fprintf(&sb, "} -factor %s", ftoa(factor))
	return e.send(sb.String())
}

// UniformExcitation applies a registered time series as a uniform base
// acceleration along dir.
func (e *Engine) UniformExcitation(patternTag, dir, seriesTag int) error {
	return e.send(fmt.Sprintf("pattern UniformExcitation %d %d -accel %d", patternTag, dir, seriesTag))
}

// Constraints selects the constraint handler.
func (e *Engine) Constraints(kind string) error { return e.send("constraints " + kind) }

// Numberer selects the equation numbering scheme.
func (e *Engine) Numberer(kind string) error { return e.send("numberer " + kind) }

// System selects the linear system storage/solver type.
func (e *Engine) System(kind string) error { return e.send("system " + kind) }

// Algorithm selects the nonlinear iteration scheme.
func (e *Engine) Algorithm(kind string) error { return e.send("algorithm " + kind) }

// NormUnbalanceTest sets the convergence test on the unbalanced-force
// norm with an iteration cap.
func (e *Engine) NormUnbalanceTest(tol float64, maxIter int) error {
	return e.send(fmt.Sprintf("test NormUnbalance %s %d", ftoa(tol), maxIter))
}

// NewmarkIntegrator selects Newmark time stepping with the given
// parameters.
func (e *Engine) NewmarkIntegrator(gamma, beta float64) error {
	return e.send(fmt.Sprintf("integrator Newmark %s %s", ftoa(gamma), ftoa(beta)))
}

// TransientAnalysis constructs the transient analysis object from the
// previously selected components.
func (e *Engine) TransientAnalysis() error { return e.send("analysis Transient") }

// Analyze advances the transient analysis by steps increments of dt.
// A non-zero interpreter status means the solution did not converge.
func (e *Engine) Analyze(steps int, dt float64) error {
	reply, err := e.query(fmt.Sprintf("analyze %d %s", steps, ftoa(dt)))
	if err != nil {
		return err
	}
	status, err := strconv.Atoi(reply)
	if err != nil {
		return fmt.Errorf("analyze status %q: %w", reply, err)
	}
	if status != 0 {
		return fmt.Errorf("analyze returned status %d", status)
	}
	return nil
}

// NodeDisp queries one displacement component of a node.
func (e *Engine) NodeDisp(tag, dof int) (float64, error) {
	return e.queryFloat(fmt.Sprintf("nodeDisp %d %d", tag, dof))
}

// NodeAccel queries one acceleration component of a node.
func (e *Engine) NodeAccel(tag, dof int) (float64, error) {
	return e.queryFloat(fmt.Sprintf("nodeAccel %d %d", tag, dof))
}

// EleForce queries one resisting-force component of an element.
func (e *Engine) EleForce(tag, dof int) (float64, error) {
	return e.queryFloat(fmt.Sprintf("eleForce %d %d", tag, dof))
}
