//go:build !llamacpp

package embedding

import (
	"context"
	"fmt"
)

// LocalEmbedder requires the llamacpp build tag. This stub keeps untagged
// builds compiling; every Embed call fails with a clear error.
type LocalEmbedder struct {
	dims int
}

// LocalConfig configures the local GGUF embedder.
type LocalConfig struct {
	ModelPath   string
	GPULayers   int
	ContextSize int
	Dims        int
}

// NewLocalEmbedder returns the stub embedder.
func NewLocalEmbedder(cfg LocalConfig) *LocalEmbedder {
	dims := cfg.Dims
	if dims <= 0 {
		dims = DefaultDims
	}
	return &LocalEmbedder{dims: dims}
}

// Available always reports false without the llamacpp tag.
func (e *LocalEmbedder) Available() bool { return false }

// Dims returns the configured embedding width.
func (e *LocalEmbedder) Dims() int { return e.dims }

// Embed always fails: local embeddings need a build with -tags llamacpp.
func (e *LocalEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, fmt.Errorf("local embedder unavailable: build with -tags llamacpp")
}

// Close is a no-op for the stub.
func (e *LocalEmbedder) Close() error { return nil }
