package motionplan

// default values for planning options.
const (
	// interior points with summed potential at or below this are considered
	// safe by the convergence predicate.
	defaultOptimizationThreshold = 0.01

	// maximum number of relaxation passes before the optimizer falls back to
	// a single radial correction.
	defaultMaxIterations = 1000

	// smallest signed displacement applied to a point whose accumulated
	// gradient step degenerates to near zero, to guarantee forward progress.
	defaultMinAdjust = 0.0001

	// step applied when pushing a point directly out of an obstacle's unsafe
	// radius.
	defaultUnsafeStep = 0.05

	// extra clearance beyond an obstacle's physical radius that every interior
	// point must hold for the path to count as converged.
	defaultSafetyMargin = 0.05

	// fraction of a unit distance used by the post-exhaustion radial
	// correction pass.
	defaultCorrectionStep = 0.5

	// points closer together than this multiple of the original seeding step
	// are merged during cleaning.
	defaultCleanFactor = 1.3

	// cleaning and pruning never reduce a path below this many points.
	defaultMinPathPoints = 4

	// cosine similarity above which a direction counts as colinear with the
	// path's global chord. Tuned, not derived; override via PlannerOptions.
	defaultColinearityThreshold = 0.9995

	// pruning removal windows extend while points stay within this fraction
	// of the path's nominal scale from the transition point.
	defaultPruneWindowFraction = 0.25
)

// PlannerOptions configures path generation, optimization, and pruning.
type PlannerOptions struct {
	// OptimizationThreshold is the maximum safe potential for interior points.
	OptimizationThreshold float64
	// MaxIterations bounds the relaxation loop.
	MaxIterations int
	// MinAdjust is the minimum signed per-axis displacement for a degenerate
	// gradient step.
	MinAdjust float64
	// UnsafeStep is the displacement applied to points inside an obstacle's
	// unsafe radius.
	UnsafeStep float64
	// SafetyMargin is the required clearance beyond each obstacle's radius.
	SafetyMargin float64
	// CorrectionStep is the radial push applied by the non-convergence
	// fallback.
	CorrectionStep float64
	// CleanFactor scales the seeding step distance into the merge threshold
	// used while de-clumping.
	CleanFactor float64
	// MinPathPoints is the smallest point count cleaning or pruning may leave.
	MinPathPoints int
	// ColinearityThreshold is the cosine similarity above which a direction is
	// treated as colinear with the start-to-goal chord during pruning.
	ColinearityThreshold float64
	// PruneWindowFraction scales the path's nominal scale into the pruning
	// window distance.
	PruneWindowFraction float64
}

// NewDefaultPlannerOptions returns planner options with all defaults filled in.
func NewDefaultPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		OptimizationThreshold: defaultOptimizationThreshold,
		MaxIterations:         defaultMaxIterations,
		MinAdjust:             defaultMinAdjust,
		UnsafeStep:            defaultUnsafeStep,
		SafetyMargin:          defaultSafetyMargin,
		CorrectionStep:        defaultCorrectionStep,
		CleanFactor:           defaultCleanFactor,
		MinPathPoints:         defaultMinPathPoints,
		ColinearityThreshold:  defaultColinearityThreshold,
		PruneWindowFraction:   defaultPruneWindowFraction,
	}
}
