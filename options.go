package gradient

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	// GOMAXPROCS workers, system clock, no frame cache
//	r, err := gradient.NewRenderer(1280, 720)
//
//	// Deterministic clock for export
//	mt := gradient.NewManualTime(time.Time{})
//	r, err := gradient.NewRenderer(1280, 720, gradient.WithClock(gradient.NewClock(mt)))
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	workers    int
	clock      *Clock
	frameCache int
}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		workers: 0, // GOMAXPROCS
	}
}

// WithWorkers sets the number of goroutines that shade a frame.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithClock sets the time source Tick reads.
func WithClock(c *Clock) RendererOption {
	return func(o *rendererOptions) {
		o.clock = c
	}
}

// WithFrameCache memoises frames whose time cannot advance (frozen or not
// animating), holding up to perShard frames in each cache shard.
// Zero disables the cache.
func WithFrameCache(perShard int) RendererOption {
	return func(o *rendererOptions) {
		o.frameCache = perShard
	}
}
