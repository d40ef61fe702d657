package cache

// Keyer builds cache keys for inspection summaries.
type Keyer interface {
	// SummaryKey generates a key for a file summary. The fingerprint
	// already encodes path, size, and mtime, so a changed file misses
	// the cache naturally.
	SummaryKey(kind, fingerprint string, opts SummaryKeyOpts) string
}

// SummaryKeyOpts are the inspection options that change what a summary
// contains, so they must be part of the key.
type SummaryKeyOpts struct {
	HeadRows int    `json:"head_rows,omitempty"` // preview rows baked into the summary
	Sheet    string `json:"sheet,omitempty"`     // worksheet scoping for Excel files
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SummaryKey generates a key for a file summary.
func (k *DefaultKeyer) SummaryKey(kind, fingerprint string, opts SummaryKeyOpts) string {
	return hashKey("summary:"+kind, fingerprint, opts)
}
