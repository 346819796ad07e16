package gradient

import (
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gradient/cache"
	"github.com/gogpu/gradient/internal/parallel"
)

var (
	// ErrRendererClosed is returned by operations on a closed Renderer.
	ErrRendererClosed = errors.New("gradient: renderer is closed")

	// ErrInvalidDimensions is returned for a non-positive width or height.
	ErrInvalidDimensions = errors.New("gradient: invalid dimensions")

	// ErrShortBuffer is returned by ReadPixels when dst cannot hold a frame.
	ErrShortBuffer = errors.New("gradient: destination buffer too small")
)

// ConfigSource hands out one isolated configuration snapshot per call.
// store.Store implements it.
type ConfigSource interface {
	Snapshot() GradientConfig
}

// Renderer shades gradient frames into an RGBA8 buffer.
//
// Each frame is shaded into a back buffer by a worker pool, one row band per
// job, and only published to readers once complete. Snapshot, ReadPixels and
// the frame accessors therefore always see the most recently completed
// frame, never a partial one.
//
// Thread safety: all methods are safe for concurrent use. Render calls are
// serialised.
type Renderer struct {
	renderMu sync.Mutex // owns back; serialises Render and Resize

	mu        sync.RWMutex // guards front and the frame metadata
	front     *Pixmap
	back      *Pixmap
	frameTime float64
	frames    uint64

	pool   *parallel.WorkerPool
	clock  *Clock
	cache  *cache.Sharded[uint64, []uint8]
	closed atomic.Bool
}

// NewRenderer creates a renderer for width×height frames. The front buffer
// starts out black.
func NewRenderer(width, height int, opts ...RendererOption) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = NewClock(nil)
	}

	r := &Renderer{
		front: NewPixmap(width, height),
		back:  NewPixmap(width, height),
		pool:  parallel.NewWorkerPool(o.workers),
		clock: o.clock,
	}
	if o.frameCache > 0 {
		r.cache = cache.New[uint64, []uint8](o.frameCache, cache.Identity)
	}
	Logger().Info("renderer created",
		"width", width, "height", height, "workers", r.pool.Workers(), "frameCache", o.frameCache)
	return r, nil
}

// Render shades one frame of cfg at time t and publishes it.
// The same cfg, t and size always produce the same pixels.
func (r *Renderer) Render(cfg GradientConfig, t float64) error {
	r.renderMu.Lock()
	defer r.renderMu.Unlock()
	if r.closed.Load() {
		return ErrRendererClosed
	}

	back := r.back
	w, h := back.Width(), back.Height()

	var key uint64
	cacheable := r.cache != nil && timeFixed(cfg.Animation)
	if cacheable {
		key = fingerprint(cfg, t, w, h)
		if data, ok := r.cache.Get(key); ok {
			copy(back.data, data)
			r.publish(t)
			Logger().Debug("frame cache hit", "mode", cfg.Mode, "time", t)
			return nil
		}
	}

	start := time.Now()
	p := cfg.Params()
	r.pool.ForEachBand(h, func(b parallel.Band) {
		for y := b.Y0; y < b.Y1; y++ {
			shadeRow(p, back.Row(y), y, w, h, t)
		}
	})

	if cacheable {
		data := make([]uint8, len(back.data))
		copy(data, back.data)
		r.cache.Set(key, data)
	}
	r.publish(t)
	Logger().Debug("frame rendered",
		"mode", cfg.Mode, "time", t, "size", fmt.Sprintf("%dx%d", w, h), "elapsed", time.Since(start))
	return nil
}

// Tick takes one snapshot from src, samples the clock once, and renders.
// It returns the frame time used.
func (r *Renderer) Tick(src ConfigSource) (float64, error) {
	cfg := src.Snapshot()
	t := r.clock.Time(cfg.Animation)
	return t, r.Render(cfg, t)
}

// publish swaps the completed back buffer in. Caller holds renderMu.
func (r *Renderer) publish(t float64) {
	r.mu.Lock()
	r.front, r.back = r.back, r.front
	r.frameTime = t
	r.frames++
	r.mu.Unlock()
}

// Snapshot returns a copy of the most recently completed frame.
func (r *Renderer) Snapshot() *image.RGBA {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.front.ToImage()
}

// ReadPixels copies the most recently completed frame into dst as packed
// RGBA8 and returns the number of bytes written.
func (r *Renderer) ReadPixels(dst []uint8) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(dst) < len(r.front.data) {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, len(r.front.data), len(dst))
	}
	return copy(dst, r.front.data), nil
}

// Size returns the frame dimensions.
func (r *Renderer) Size() (width, height int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.front.Width(), r.front.Height()
}

// FrameTime returns the time of the most recently completed frame.
func (r *Renderer) FrameTime() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frameTime
}

// Frames returns the number of frames completed so far.
func (r *Renderer) Frames() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frames
}

// Clock returns the clock Tick reads.
func (r *Renderer) Clock() *Clock {
	return r.clock
}

// CacheStats reports frame cache effectiveness. It is zero when the cache
// is disabled.
func (r *Renderer) CacheStats() cache.Stats {
	if r.cache == nil {
		return cache.Stats{}
	}
	return r.cache.Stats()
}

// Resize reallocates both buffers. The new front buffer is black until the
// next Render.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	r.renderMu.Lock()
	defer r.renderMu.Unlock()
	if r.closed.Load() {
		return ErrRendererClosed
	}
	if r.back.Width() == width && r.back.Height() == height {
		return nil
	}

	r.back = NewPixmap(width, height)
	r.mu.Lock()
	r.front = NewPixmap(width, height)
	r.frames = 0
	r.mu.Unlock()
	if r.cache != nil {
		r.cache.Clear()
	}
	Logger().Info("renderer resized", "width", width, "height", height)
	return nil
}

// Close stops the worker pool. The last completed frame stays readable.
// Close is safe to call multiple times.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.renderMu.Lock()
	defer r.renderMu.Unlock()
	r.pool.Close()
	Logger().Info("renderer closed")
	return nil
}

// timeFixed reports whether the time uniform cannot advance for a.
func timeFixed(a Animation) bool {
	_, frozen := a.Frozen.Get()
	return frozen || !a.Animate
}

// fingerprint hashes everything a frame depends on.
func fingerprint(cfg GradientConfig, t float64, w, h int) uint64 {
	hsh := fnv.New64a()
	fmt.Fprintf(hsh, "%+v|%x|%d|%d", cfg, math.Float64bits(t), w, h)
	return hsh.Sum64()
}
