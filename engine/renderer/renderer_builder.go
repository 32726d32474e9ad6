package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync synchronizes presentation with the display refresh rate.
	PresentModeVSync PresentMode = iota
	// PresentModeUncapped presents frames as fast as they are rendered.
	PresentModeUncapped
)

// RendererOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererOption func(*rendererImpl)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererOption {
	return func(r *rendererImpl) {
		switch mode {
		case PresentModeUncapped:
			r.presentMode = wgpu.PresentModeImmediate
		default:
			r.presentMode = wgpu.PresentModeFifo
		}
	}
}

// WithClearColor sets the background color the color attachment clears to each frame.
//
// Parameters:
//   - red, green, blue, alpha: color components in [0, 1]
//
// Returns:
//   - RendererOption: a function that applies the clear color option to a renderer
func WithClearColor(red, green, blue, alpha float64) RendererOption {
	return func(r *rendererImpl) {
		r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: alpha}
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererOption {
	return func(r *rendererImpl) {
		r.forceFallbackAdapter = force
	}
}
