package ports

import "context"

// Watcher reports changes to source trees.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Watch observes roots recursively and delivers batches of changed paths.
	// The channel is closed once ctx is done.
	Watch(ctx context.Context, roots []string) (<-chan []string, error)
}
