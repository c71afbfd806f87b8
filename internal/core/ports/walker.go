package ports

import "iter"

// FileWalker enumerates files and directories below a root.
//
//go:generate go run go.uber.org/mock/mockgen -source=walker.go -destination=mocks/mock_walker.go -package=mocks
type FileWalker interface {
	// WalkFiles yields the files below root in lexical order.
	// When exts is non-empty only files with one of the extensions are yielded.
	WalkFiles(root string, exts ...string) iter.Seq[string]
	// WalkDirs yields root and the directories below it.
	WalkDirs(root string) iter.Seq[string]
}
