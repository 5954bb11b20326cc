package entities

// Bundle groups registry artifact paths by artifact type.
// Directory-type artifacts are stored as directory paths.
type Bundle map[ArtifactType][]string

// NewBundle creates an empty bundle
func NewBundle() Bundle {
	return make(Bundle)
}

// Add appends paths to the group of the given type
func (b Bundle) Add(t ArtifactType, paths ...string) {
	b[t] = append(b[t], paths...)
}

// Files returns the paths of the given type
func (b Bundle) Files(t ArtifactType) []string {
	return b[t]
}

// Types returns the types present in the bundle in catalog order,
// followed by unknown types in no particular order.
func (b Bundle) Types() []ArtifactType {
	types := make([]ArtifactType, 0, len(b))
	seen := make(map[ArtifactType]bool, len(b))
	for _, t := range ArtifactTypes() {
		if _, ok := b[t]; ok {
			types = append(types, t)
			seen[t] = true
		}
	}
	for t := range b {
		if !seen[t] {
			types = append(types, t)
		}
	}
	return types
}

// Count returns the total number of artifacts in the bundle
func (b Bundle) Count() int {
	n := 0
	for _, paths := range b {
		n += len(paths)
	}
	return n
}
