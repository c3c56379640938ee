package coverage

// Option configures an optimization run via functional arguments.
type Option func(*Options)

// Options holds hooks invoked during optimization.
type Options struct {
	// OnSelect is called after each round with the 1-based round number,
	// the chosen tower and its gain.
	OnSelect func(step int, tower Tower, gain int)
}

// DefaultOptions returns Options with no-op hooks.
func DefaultOptions() Options {
	return Options{
		OnSelect: func(int, Tower, int) {},
	}
}

// WithOnSelect registers a callback for every selected tower.
func WithOnSelect(fn func(step int, tower Tower, gain int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSelect = fn
		}
	}
}
