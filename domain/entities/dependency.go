package entities

import "encoding/json"

// Dependency declares what one extension module needs loaded into the remote
// runtime at startup: local archive paths and remote package coordinates.
// Both sequences are order-preserving and may be empty. A Dependency is
// immutable once constructed; the constructor and every accessor copy.
type Dependency struct {
	jars     []string
	packages []string
}

// NewDependency builds a Dependency from archive paths and package
// coordinates. The inputs are copied, so callers may reuse their slices.
func NewDependency(jars, packages []string) Dependency {
	return Dependency{
		jars:     copyStrings(jars),
		packages: copyStrings(packages),
	}
}

// Jars returns the declared archive paths in declaration order.
func (d Dependency) Jars() []string { return copyStrings(d.jars) }

// Packages returns the declared package coordinates in declaration order.
func (d Dependency) Packages() []string { return copyStrings(d.packages) }

// IsEmpty reports whether the declaration contributes nothing.
func (d Dependency) IsEmpty() bool {
	return len(d.jars) == 0 && len(d.packages) == 0
}

type dependencyWire struct {
	Jars     []string `json:"jars"`
	Packages []string `json:"packages"`
}

// MarshalJSON renders the declaration in its documented wire shape.
func (d Dependency) MarshalJSON() ([]byte, error) {
	return json.Marshal(dependencyWire{
		Jars:     emptyIfNil(d.jars),
		Packages: emptyIfNil(d.packages),
	})
}

// UnmarshalJSON parses the documented wire shape.
func (d *Dependency) UnmarshalJSON(data []byte) error {
	var w dependencyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = NewDependency(w.Jars, w.Packages)
	return nil
}

// DependencyManifest is the aggregate of dependency declarations collected
// across a requested set of extension modules. Ordering preserves first-seen
// encounter order across modules; duplicates are preserved as given, since
// load order can matter for native archives and deduplication is a concern
// of whatever consumes the manifest.
type DependencyManifest struct {
	jars     []string
	packages []string
}

// Append concatenates one declaration onto the manifest in encounter order.
func (m *DependencyManifest) Append(d Dependency) {
	m.jars = append(m.jars, d.jars...)
	m.packages = append(m.packages, d.packages...)
}

// Jars returns every collected archive path in encounter order.
func (m *DependencyManifest) Jars() []string { return copyStrings(m.jars) }

// Packages returns every collected package coordinate in encounter order.
func (m *DependencyManifest) Packages() []string { return copyStrings(m.packages) }

// IsEmpty reports whether any module contributed anything.
func (m *DependencyManifest) IsEmpty() bool {
	return len(m.jars) == 0 && len(m.packages) == 0
}

// MarshalJSON renders the manifest in the same wire shape as a declaration.
func (m DependencyManifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(dependencyWire{
		Jars:     emptyIfNil(m.jars),
		Packages: emptyIfNil(m.packages),
	})
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
