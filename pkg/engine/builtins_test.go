package engine

import (
	"strings"
	"testing"

	"github.com/chazu/orbitviz/pkg/scene"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(placement :drift 0.5)`,
			expect: `(placement "__kw_drift" 0.5)`,
		},
		{
			name:   "multiple keywords",
			input:  `(placement :min-count 10 :max-count 30)`,
			expect: `(placement "__kw_min-count" 10 "__kw_max-count" 30)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(def plane-radius 5)`,
			expect: `(def plane_radius 5)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "escaped quote inside string",
			input:  `(def s "say \":hi\" a-b") :x`,
			expect: `(def s "say \":hi\" a-b") "__kw_x"`,
		},
		{
			name:   "unterminated string copied as is",
			input:  `(def s "open :kw`,
			expect: `(def s "open :kw`,
		},
		{
			name:   "comment at end of input",
			input:  `(placement) ;; done`,
			expect: `(placement) // done`,
		},
		{
			name:   "long keyword with hyphens",
			input:  `:min-center-distance-multiplier`,
			expect: `"__kw_min-center-distance-multiplier"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// placement
// ---------------------------------------------------------------------------

func evalOK(t *testing.T, source string) scene.PlacementConfig {
	t.Helper()
	cfg, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	return *cfg
}

func evalFails(t *testing.T, source, wantMsg string) {
	t.Helper()
	cfg, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected nil config, got %+v", *cfg)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
	if !strings.Contains(evalErrs[0].Message, wantMsg) {
		t.Errorf("error %q does not mention %q", evalErrs[0].Message, wantMsg)
	}
}

func TestPlacementAllSettings(t *testing.T) {
	cfg := evalOK(t, `
; every placement setting
(placement
  :plane-radius 7
  :center-radius 0.4
  :drift 1
  :min-size 0.1
  :max-size 0.3
  :min-center-distance-multiplier 3
  :min-count 5
  :max-count 8
  :max-tilt 30)
`)

	want := scene.DefaultPlacementConfig()
	want.PlaneRadius = 7
	want.CenterRadius = 0.4
	want.DriftRange = 1
	want.MinSize = 0.1
	want.MaxSize = 0.3
	want.MinCenterDistanceMultiplier = 3
	want.MinBodyCount = 5
	want.MaxBodyCount = 8
	want.MaxTiltDegrees = 30

	if cfg != want {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}
}

func TestPlacementPartialKeepsDefaults(t *testing.T) {
	cfg := evalOK(t, `(placement :plane-radius 12)`)

	want := scene.DefaultPlacementConfig()
	want.PlaneRadius = 12
	if cfg != want {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}
}

func TestPlacementVariableReference(t *testing.T) {
	cfg := evalOK(t, `
(def r 0.5)
(def bodies 12)
(placement :center-radius r :min-count bodies :max-count bodies)
`)
	if cfg.CenterRadius != 0.5 {
		t.Errorf("center radius = %g, want 0.5 (from variable)", cfg.CenterRadius)
	}
	if cfg.MinBodyCount != 12 || cfg.MaxBodyCount != 12 {
		t.Errorf("counts = [%d, %d], want [12, 12]", cfg.MinBodyCount, cfg.MaxBodyCount)
	}
}

func TestPlacementWholeFloatCount(t *testing.T) {
	cfg := evalOK(t, `(placement :min-count 4.0 :max-count 9)`)
	if cfg.MinBodyCount != 4 {
		t.Errorf("min count = %d, want 4", cfg.MinBodyCount)
	}
}

func TestPlacementErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{"unknown setting", `(placement :plane-radiu 5)`, "unknown setting"},
		{"string value", `(placement :plane-radius "five")`, "plane-radius"},
		{"fractional count", `(placement :min-count 2.5)`, "min-count"},
		{"positional argument", `(placement 5)`, "positional"},
		{"defined twice", "(placement :drift 1)\n(placement :drift 2)", "already defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evalFails(t, tt.source, tt.wantMsg)
		})
	}
}

func TestPlacementNotValidatedByEngine(t *testing.T) {
	// Range checks belong to scene generation; the engine only records values.
	cfg := evalOK(t, `(placement :min-count 9 :max-count 3)`)
	if cfg.Validate() == nil {
		t.Fatal("expected the recorded config to fail validation")
	}
}

// ---------------------------------------------------------------------------
// palette / rgba
// ---------------------------------------------------------------------------

func TestPalette(t *testing.T) {
	cfg := evalOK(t, `
(palette
  :plane (rgba 0.1 0.2 0.3 0.4)
  :body (rgba 1 0 0))
`)
	def := scene.DefaultPalette()

	if want := (scene.Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4}); cfg.Palette.Plane != want {
		t.Errorf("plane = %+v, want %+v", cfg.Palette.Plane, want)
	}
	if want := (scene.Color{R: 1, A: 1}); cfg.Palette.Body != want {
		t.Errorf("body = %+v, want %+v (alpha defaults to 1)", cfg.Palette.Body, want)
	}
	if cfg.Palette.Center != def.Center {
		t.Errorf("center = %+v, want default %+v", cfg.Palette.Center, def.Center)
	}
}

func TestPaletteWithPlacement(t *testing.T) {
	cfg := evalOK(t, `
(def green (rgba 0 1 0 1))
(placement :max-tilt 10)
(palette :center green)
`)
	if cfg.MaxTiltDegrees != 10 {
		t.Errorf("max tilt = %g, want 10", cfg.MaxTiltDegrees)
	}
	if want := (scene.Color{G: 1, A: 1}); cfg.Palette.Center != want {
		t.Errorf("center = %+v, want %+v", cfg.Palette.Center, want)
	}
}

func TestPaletteErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{"unknown setting", `(palette :sky (rgba 0 0 1))`, "unknown setting"},
		{"not a color", `(palette :plane 5)`, "expected color"},
		{"defined twice", "(palette :plane (rgba 0 0 1))\n(palette :body (rgba 0 1 0))", "already defined"},
		{"rgba arity", `(palette :plane (rgba 0 0))`, "3 or 4 arguments"},
		{"rgba range", `(palette :plane (rgba 0 0 2))`, "outside [0, 1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evalFails(t, tt.source, tt.wantMsg)
		})
	}
}
