package cache

// Keyer builds cache keys.
type Keyer interface {
	// AnalysisKey identifies the analysis of one source text under one pin
	// registry.
	AnalysisKey(sourceHash string, opts AnalysisKeyOpts) string
	// ArtifactKey identifies one rendered artifact of an analysis.
	ArtifactKey(analysisHash string, opts ArtifactKeyOpts) string
}

// AnalysisKeyOpts are the inputs besides the source text that change an
// analysis.
type AnalysisKeyOpts struct {
	PinsFingerprint string `json:"pins"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "analysis:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// AnalysisKey implements [Keyer].
func (DefaultKeyer) AnalysisKey(sourceHash string, opts AnalysisKeyOpts) string {
	return hashKey("analysis", sourceHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(analysisHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", analysisHash, opts)
}
