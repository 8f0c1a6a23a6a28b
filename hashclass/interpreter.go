package hashclass

import (
	"fmt"
	"io"
	"maps"
	"sync"
)

// Config controls execution bounds.
type Config struct {
	StepQuota      int
	RecursionLimit int
	// Output receives print output. Defaults to io.Discard.
	Output io.Writer
}

// Engine compiles and runs HashClass programs. It is safe for concurrent
// use; every run gets its own environment, objects and private names.
type Engine struct {
	config     Config
	builtinsMu sync.RWMutex
	builtins   map[string]BuiltinFunc
}

// NewEngine constructs an Engine with defaults applied and the standard
// builtins registered.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("step quota must be non-negative, got %d", cfg.StepQuota)
	}
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("recursion limit must be non-negative, got %d", cfg.RecursionLimit)
	}
	if cfg.StepQuota == 0 {
		cfg.StepQuota = 50000
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = 64
	}
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}

	engine := &Engine{config: cfg, builtins: make(map[string]BuiltinFunc)}
	engine.RegisterBuiltin("print", builtinPrint)
	engine.RegisterBuiltin("assert", builtinAssert)
	engine.RegisterBuiltin("assertEqual", builtinAssertEqual)
	engine.RegisterBuiltin("assertThrows", builtinAssertThrows)
	return engine, nil
}

// MustNewEngine is NewEngine for configurations known to be valid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// RegisterBuiltin exposes fn to scripts as a global function.
func (e *Engine) RegisterBuiltin(name string, fn BuiltinFunc) {
	e.builtinsMu.Lock()
	defer e.builtinsMu.Unlock()
	e.builtins[name] = fn
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.config }

func (e *Engine) builtinSnapshot() map[string]BuiltinFunc {
	e.builtinsMu.RLock()
	defer e.builtinsMu.RUnlock()
	return maps.Clone(e.builtins)
}
