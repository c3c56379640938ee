package cache

// Keyer derives cache keys from planning inputs.
type Keyer interface {
	// PlanKey identifies a generated city together with its towers and path.
	PlanKey(opts PlanKeyOpts) string

	// ArtifactKey identifies one rendered output of a plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// PlanKeyOpts lists every input that changes the plan stage output.
type PlanKeyOpts struct {
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	BlockCoverage float64 `json:"block_coverage"`
	Seed          uint64  `json:"seed"`
	Radius        int     `json:"radius"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
}

// ArtifactKeyOpts lists every input that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style,omitempty"`
}

// DefaultKeyer hashes options with SHA-256 under fixed prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlanKey returns "plan:<sha256(opts)>".
func (DefaultKeyer) PlanKey(opts PlanKeyOpts) string {
	return hashKey("plan", opts)
}

// ArtifactKey returns "artifact:<sha256(planHash, opts)>".
func (DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

var _ Keyer = DefaultKeyer{}
