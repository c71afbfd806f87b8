package domain

// CompilationUnit describes one source file compiled to one object file for a platform.
type CompilationUnit struct {
	Source   string
	Language Language
	Object   string
	Release  bool
	Platform Platform
}

// LinkJob describes the final link of a platform's objects into an executable.
// Objects are linked in slice order.
type LinkJob struct {
	Objects     []string
	Libraries   []string
	Output      string
	Release     bool
	MultiObject bool
	// CXX is set when an object comes from a C++ unit and the C++ runtime must be linked.
	CXX bool
}
