package scene

// SceneBuilderOption is a functional option for configuring a Scene during construction.
type SceneBuilderOption func(*scene)

// WithActive sets whether the scene starts active for rendering.
//
// Parameters:
//   - active: true to activate the scene immediately
//
// Returns:
//   - SceneBuilderOption: functional option to set the active flag
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithPrepareWorkers overrides the number of goroutines in the scene's
// parallel matrix prep pool. Defaults to NumCPU-1.
//
// Parameters:
//   - workers: the worker count (values below 1 are clamped to 1)
//
// Returns:
//   - SceneBuilderOption: functional option to set the worker count
func WithPrepareWorkers(workers int) SceneBuilderOption {
	return func(s *scene) {
		s.prepWorkers = max(workers, 1)
	}
}
