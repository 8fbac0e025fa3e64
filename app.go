package main

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/chazu/orbitviz/pkg/engine"
	"github.com/chazu/orbitviz/pkg/scene"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
//
// The live scene is held behind an atomic pointer: the frontend always reads
// a complete scene, and a failed load or regeneration leaves it in place.
type App struct {
	ctx       context.Context
	engine    *engine.Engine
	generator *scene.Generator
	logger    *slog.Logger

	mu        sync.Mutex // serializes config updates
	placement scene.PlacementConfig
	current   atomic.Pointer[scene.Scene]
}

// BodyData is the JSON-serializable body format sent to the frontend.
type BodyData struct {
	Radius      float64     `json:"radius"`
	Scale       [3]float64  `json:"scale"`
	Color       [4]float64  `json:"color"`
	Position    [3]float64  `json:"position"`
	Orientation [4]float64  `json:"orientation"` // quaternion x, y, z, w
	Transform   [16]float64 `json:"transform"`   // column-major model matrix
}

// SceneData is the JSON-serializable scene format sent to the frontend.
type SceneData struct {
	Plane  BodyData   `json:"plane"`
	Center BodyData   `json:"center"`
	Bodies []BodyData `json:"bodies"`
	Tilt   [3]float64 `json:"tilt"` // degrees about X, Y, Z
}

// EvalErrorData is a JSON-serializable error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// SceneResult is the full result returned to the frontend. Scene is the
// live scene after the call, which is the previous one when Errors is set.
type SceneResult struct {
	Scene  *SceneData      `json:"scene"`
	Seed   uint64          `json:"seed"` // seed of the live scene, see Reproduce
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates an App and generates an initial scene from the default
// placement config. A nil logger discards log output.
func NewApp(logger *slog.Logger, opts ...scene.Option) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &App{
		engine:    engine.NewEngine(),
		generator: scene.NewGenerator(opts...),
		logger:    logger.With("component", "app"),
		placement: scene.DefaultPlacementConfig(),
	}

	s, err := a.generator.Generate(a.placement)
	if err != nil {
		// The default config is valid; this only fires if it stops being so.
		panic(err)
	}
	a.current.Store(s)
	return a
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// LoadScript evaluates a scene script, generates a scene from the
// resulting placement config and makes it live. Any error leaves the
// previous config and scene in place.
func (a *App) LoadScript(source string) SceneResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	cfg, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.logger.Error("Scene script evaluation failed", "error", err)
		return a.result(EvalErrorData{Message: err.Error()})
	}
	if len(evalErrs) > 0 {
		errs := make([]EvalErrorData, 0, len(evalErrs))
		for _, e := range evalErrs {
			errs = append(errs, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		a.logger.Warn("Scene script has errors", "count", len(errs), "first", errs[0].Message)
		return a.result(errs...)
	}

	s, err := a.generator.Generate(*cfg)
	if err != nil {
		a.logger.Warn("Scene script produced an invalid placement", "error", err)
		return a.result(generateErrors(err)...)
	}

	a.placement = *cfg
	a.current.Store(s)
	a.logger.Info("Scene script loaded", "bodies", s.Len())
	return a.result()
}

// Regenerate builds a new scene from the current placement config and
// makes it live.
func (a *App) Regenerate() SceneResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.generator.Generate(a.placement)
	if err != nil {
		a.logger.Error("Regeneration failed", "error", err)
		return a.result(generateErrors(err)...)
	}
	a.current.Store(s)
	a.logger.Debug("Scene regenerated", "bodies", s.Len())
	return a.result()
}

// Reproduce rebuilds the scene drawn from seed with the current placement
// config and makes it live.
func (a *App) Reproduce(seed uint64) SceneResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.generator.GenerateFromSeed(a.placement, seed)
	if err != nil {
		a.logger.Error("Reproduce failed", "seed", seed, "error", err)
		return a.result(generateErrors(err)...)
	}
	a.current.Store(s)
	a.logger.Debug("Scene reproduced", "seed", seed, "bodies", s.Len())
	return a.result()
}

// Current returns the live scene.
func (a *App) Current() SceneResult {
	return a.result()
}

// Placement returns the placement config the live scene was built from.
func (a *App) Placement() scene.PlacementConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.placement
}

func (a *App) result(errs ...EvalErrorData) SceneResult {
	if errs == nil {
		errs = []EvalErrorData{}
	}
	s := a.current.Load()
	return SceneResult{
		Scene:  toSceneData(s),
		Seed:   s.Seed(),
		Errors: errs,
	}
}

// generateErrors flattens a joined validation error into one entry per
// violation.
func generateErrors(err error) []EvalErrorData {
	var out []EvalErrorData
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			out = append(out, EvalErrorData{Message: e.Error()})
		}
	}
	if len(out) == 0 {
		out = append(out, EvalErrorData{Message: err.Error()})
	}
	return out
}

func toSceneData(s *scene.Scene) *SceneData {
	bodies := make([]BodyData, 0, s.Len())
	for _, b := range s.Bodies() {
		bodies = append(bodies, toBodyData(b))
	}
	tilt := s.Rotation().Angles()
	return &SceneData{
		Plane:  toBodyData(s.Plane()),
		Center: toBodyData(s.Center()),
		Bodies: bodies,
		Tilt:   [3]float64{tilt.X, tilt.Y, tilt.Z},
	}
}

func toBodyData(b scene.Body) BodyData {
	q := b.Orientation
	return BodyData{
		Radius:      b.Radius,
		Scale:       [3]float64{b.Scale.X, b.Scale.Y, b.Scale.Z},
		Color:       b.Color.RGBA(),
		Position:    [3]float64{b.Position.X, b.Position.Y, b.Position.Z},
		Orientation: [4]float64{q.V[0], q.V[1], q.V[2], q.W},
		Transform:   b.Transform(),
	}
}
