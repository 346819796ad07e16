// Package shader is the gradient engine as a WGSL render program.
//
// The fragment stage evaluates exactly the math of the CPU renderer (same
// noise hashing, fields, mixer, dither and grain), so a frame drawn on the
// GPU matches gradient.Renderer to within float32 rounding. The vertex stage
// draws one full-screen triangle from vertex_index, so no vertex buffer is
// bound.
//
// Bindings:
//
//	@group(0) @binding(0) var<uniform> u: Uniforms  // UniformSize bytes
package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gradient"
)

//go:embed shaders/gradient.wgsl
var gradientWGSL string

// Entry points of the program.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// ErrNoDevice is returned when a nil HAL device is passed in.
var ErrNoDevice = errors.New("shader: nil device")

var (
	compileOnce sync.Once
	spirvCode   []uint32
	compileErr  error
)

// Source returns the WGSL program text.
func Source() string {
	return gradientWGSL
}

// Compile translates the program to SPIR-V words. The result is computed
// once and shared; callers must not modify it.
func Compile() ([]uint32, error) {
	compileOnce.Do(func() {
		spirvCode, compileErr = compileToSPIRV(gradientWGSL)
		if compileErr != nil {
			gradient.Logger().Warn("gradient shader compilation failed", "err", compileErr)
			return
		}
		gradient.Logger().Debug("gradient shader compiled", "words", len(spirvCode))
	})
	return spirvCode, compileErr
}

func compileToSPIRV(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("shader: compile: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shader: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// CreateModule compiles the program and creates a HAL shader module on
// device.
func CreateModule(device hal.Device) (hal.ShaderModule, error) {
	if device == nil {
		return nil, ErrNoDevice
	}
	code, err := Compile()
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "gradient_shader",
		Source: hal.ShaderSource{
			SPIRV: code,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("shader: create module: %w", err)
	}
	return module, nil
}

// CreateUniformBuffer allocates a buffer that holds one Uniforms block.
// Refill it each frame with PackUniforms.
func CreateUniformBuffer(device hal.Device) (hal.Buffer, error) {
	if device == nil {
		return nil, ErrNoDevice
	}
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "gradient_uniforms",
		Size:  UniformSize,
		Usage: UniformUsage(),
	})
	if err != nil {
		return nil, fmt.Errorf("shader: create uniform buffer: %w", err)
	}
	return buf, nil
}

// PipelineFormat is the colour target format the fragment stage writes.
// The program outputs display-space values, so the target must be a
// non-sRGB (Unorm) format or the GPU would encode twice.
func PipelineFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// UniformUsage is the buffer usage for the uniform block.
func UniformUsage() gputypes.BufferUsage {
	return gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst
}
