package shader

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gradient"
	icolor "github.com/gogpu/gradient/internal/color"
)

// UniformSize is the byte size of the WGSL Uniforms struct.
//
// Layout (WGSL uniform address space, 16-byte aligned array stride):
//
//	  0 resolution vec2<f32>, time f32, mode u32
//	 16 colors array<vec4<f32>, 5> (linear RGB, w unused)
//	 96 thresholds vec4<f32>
//	112 weights vec4<f32> (w1..w4)
//	128 offset vec2<f32>, w0 f32, remaining f32
//	144 noise_scale, blur, strength, density
//	160 frequency, angle, wave_amount, spread
//	176 flow_angle, stretch_amount, start_angle, spiral_amount
//	192 tightness, wave_count, amplitude, wave_angle
//	208 grain f32, style u32, flags u32, pad u32
const UniformSize = 224

// Flag bits of the flags uniform.
const (
	FlagRadial uint32 = 1 << iota
	FlagCenterInward
	FlagStretch
	FlagClockwise
	FlagColor4
)

// PackUniforms encodes p, the frame size and time t into the little-endian
// Uniforms block.
func PackUniforms(p gradient.Params, width, height int, t float64) []byte {
	buf := make([]byte, UniformSize)
	w := uniformWriter{buf: buf}

	w.f32(float64(width))
	w.f32(float64(height))
	w.f32(t)
	w.u32(uint32(p.Mode))

	for _, c := range p.Colors {
		lin := icolor.ToLinear(icolor.RGB{R: c.R, G: c.G, B: c.B})
		w.f32(lin.R)
		w.f32(lin.G)
		w.f32(lin.B)
		w.f32(1)
	}

	for _, th := range p.Thresholds {
		w.f32(th)
	}
	for i := 1; i < len(p.Weights); i++ {
		w.f32(float64(p.Weights[i]))
	}

	w.f32(p.Offset.X)
	w.f32(p.Offset.Y)
	w.f32(float64(p.Weights[0]))
	w.f32(p.Remaining)

	for _, v := range [...]float64{
		p.NoiseScale, p.Blur, p.Strength, p.Density,
		p.Frequency, p.Angle, p.WaveAmount, p.Spread,
		p.FlowAngle, p.StretchAmount, p.StartAngle, p.SpiralAmount,
		p.Tightness, p.WaveCount, p.Amplitude, p.WaveAngle,
		p.Grain,
	} {
		w.f32(v)
	}
	w.u32(uint32(p.Style))
	w.u32(flags(p))
	w.u32(0)
	return buf
}

func flags(p gradient.Params) uint32 {
	var f uint32
	if p.Radial {
		f |= FlagRadial
	}
	if p.CenterInward {
		f |= FlagCenterInward
	}
	if p.Stretch {
		f |= FlagStretch
	}
	if p.Clockwise {
		f |= FlagClockwise
	}
	if p.HasColor4 {
		f |= FlagColor4
	}
	return f
}

type uniformWriter struct {
	buf []byte
	off int
}

func (w *uniformWriter) f32(v float64) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], math.Float32bits(float32(v)))
	w.off += 4
}

func (w *uniformWriter) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}
