package model

// Window is a weak reference to a top-level OS window: an opaque handle plus
// the title observed at enumeration time. The target application may close or
// recreate its window at any moment, so a Window must be re-resolved every
// poll cycle and never cached across cycles.
type Window struct {
	Handle uintptr `yaml:"handle" json:"handle"`
	Title  string  `yaml:"title"  json:"title"`
}
