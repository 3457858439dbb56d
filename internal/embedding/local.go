//go:build llamacpp

package embedding

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	llama "github.com/tcpipuk/llama-go"
)

// LocalEmbedder produces embeddings from an on-disk GGUF model via
// llama-go. Thread-safe: llama contexts are not, so all access is
// serialized through a mutex. The model is lazy-loaded on first use and
// held for the process lifetime.
type LocalEmbedder struct {
	modelPath   string
	gpuLayers   int
	contextSize int
	dims        int

	mu      sync.Mutex
	model   *llama.Model
	embCtx  *llama.Context
	loadErr error
	once    sync.Once
}

// LocalConfig configures the local GGUF embedder.
type LocalConfig struct {
	// ModelPath is the path to the GGUF embedding model file.
	ModelPath string

	// GPULayers is the number of layers to offload to GPU (0 = CPU only).
	GPULayers int

	// ContextSize is the context window size in tokens. Default: 512.
	ContextSize int

	// Dims is the expected embedding width of the model. Default: DefaultDims.
	Dims int
}

// NewLocalEmbedder creates a LocalEmbedder. The model is not loaded until
// the first Embed call.
func NewLocalEmbedder(cfg LocalConfig) *LocalEmbedder {
	ctxSize := cfg.ContextSize
	if ctxSize <= 0 {
		ctxSize = 512
	}
	dims := cfg.Dims
	if dims <= 0 {
		dims = DefaultDims
	}
	return &LocalEmbedder{
		modelPath:   cfg.ModelPath,
		gpuLayers:   cfg.GPULayers,
		contextSize: ctxSize,
		dims:        dims,
	}
}

func (e *LocalEmbedder) loadModel() error {
	e.once.Do(func() {
		if e.modelPath == "" {
			e.loadErr = fmt.Errorf("no model path configured")
			return
		}

		model, err := llama.LoadModel(e.modelPath,
			llama.WithGPULayers(e.gpuLayers),
			llama.WithMMap(true),
			llama.WithSilentLoading(),
		)
		if err != nil {
			e.loadErr = fmt.Errorf("loading model %s: %w", e.modelPath, err)
			return
		}
		e.model = model

		ctx, err := model.NewContext(
			llama.WithEmbeddings(),
			llama.WithContext(e.contextSize),
			llama.WithThreads(runtime.NumCPU()),
		)
		if err != nil {
			model.Close()
			e.model = nil
			e.loadErr = fmt.Errorf("creating embedding context: %w", err)
			return
		}
		e.embCtx = ctx
	})
	return e.loadErr
}

// Available reports whether the model file exists on disk without loading it.
func (e *LocalEmbedder) Available() bool {
	if e.modelPath == "" {
		return false
	}
	_, err := os.Stat(e.modelPath)
	return err == nil
}

// Dims returns the configured embedding width.
func (e *LocalEmbedder) Dims() int { return e.dims }

// Embed returns a dense vector embedding for the given text.
func (e *LocalEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := e.loadModel(); err != nil {
		return nil, fmt.Errorf("local embed: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	emb, err := e.embCtx.GetEmbeddings(text)
	if err != nil {
		return nil, fmt.Errorf("getting embeddings: %w", err)
	}
	return emb, nil
}

// Close releases the model and context resources. Safe to call twice.
func (e *LocalEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.embCtx != nil {
		e.embCtx.Close()
		e.embCtx = nil
	}
	if e.model != nil {
		e.model.Close()
		e.model = nil
	}
	return nil
}
