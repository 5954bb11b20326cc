package entities

import "sort"

// ChecksumMode selects how directories are digested
type ChecksumMode string

// Checksum modes
const (
	// ModeAggregate digests a whole directory into one entry
	ModeAggregate ChecksumMode = "aggregate"
	// ModeDetailed digests every file beneath a directory separately
	ModeDetailed ChecksumMode = "detailed"
)

// Checksums maps a relative slash-separated path to a hex SHA-256 digest
type Checksums map[string]string

// Merge copies every entry of other into c
func (c Checksums) Merge(other Checksums) {
	for k, v := range other {
		c[k] = v
	}
}

// Keys returns the paths in sorted order
func (c Checksums) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ChangedSince returns the sorted paths whose digest is absent from or
// differs from the baseline. Paths only present in the baseline are not reported.
func (c Checksums) ChangedSince(baseline Checksums) []string {
	var changed []string
	for _, k := range c.Keys() {
		if prev, ok := baseline[k]; !ok || prev != c[k] {
			changed = append(changed, k)
		}
	}
	return changed
}

// PlanResult is the outcome of comparing current checksums to a baseline
type PlanResult struct {
	Mode    ChecksumMode
	Changed bool
	Paths   []string
}
