package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chazu/orbitviz/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// scriptState collects what a script declares while it runs.
type scriptState struct {
	config       scene.PlacementConfig
	placementSet bool
	paletteSet   bool
}

func newScriptState() *scriptState {
	return &scriptState{config: scene.DefaultPlacementConfig()}
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpColor wraps a scene.Color so it can be returned from `rgba`
// and consumed by `palette`.
type sexpColor struct {
	color scene.Color
}

func (c *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(rgba %g %g %g %g)", c.color.R, c.color.G, c.color.B, c.color.A)
}
func (c *sexpColor) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// sortedKeys returns the keyword names in a stable order so errors are
// reported deterministically.
func (a kwArgs) sortedKeys() []string {
	keys := make([]string, 0, len(a.kw))
	for k := range a.kw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt, or from a SexpFloat with no
// fractional part.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == float64(int(v.Val)) {
			return int(v.Val), nil
		}
		return 0, fmt.Errorf("expected whole number, got %g", v.Val)
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toColor extracts a scene.Color from a sexpColor.
func toColor(s zygo.Sexp) (scene.Color, error) {
	if c, ok := s.(*sexpColor); ok {
		return c.color, nil
	}
	return scene.Color{}, fmt.Errorf("expected color, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Placement keywords
// ---------------------------------------------------------------------------

var floatSettings = map[string]func(*scene.PlacementConfig, float64){
	"plane-radius":                   func(c *scene.PlacementConfig, v float64) { c.PlaneRadius = v },
	"center-radius":                  func(c *scene.PlacementConfig, v float64) { c.CenterRadius = v },
	"drift":                          func(c *scene.PlacementConfig, v float64) { c.DriftRange = v },
	"min-size":                       func(c *scene.PlacementConfig, v float64) { c.MinSize = v },
	"max-size":                       func(c *scene.PlacementConfig, v float64) { c.MaxSize = v },
	"min-center-distance-multiplier": func(c *scene.PlacementConfig, v float64) { c.MinCenterDistanceMultiplier = v },
	"max-tilt":                       func(c *scene.PlacementConfig, v float64) { c.MaxTiltDegrees = v },
}

var intSettings = map[string]func(*scene.PlacementConfig, int){
	"min-count": func(c *scene.PlacementConfig, v int) { c.MinBodyCount = v },
	"max-count": func(c *scene.PlacementConfig, v int) { c.MaxBodyCount = v },
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene script builtins into a zygomys
// environment. They record their effect in st.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, st *scriptState) {

	// -----------------------------------------------------------------------
	// (placement :plane-radius 5 :center-radius 0.3 :min-count 10 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("placement", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if st.placementSet {
			return zygo.SexpNull, fmt.Errorf("placement: already defined")
		}
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("placement: unexpected positional argument %s",
				pa.positional[0].SexpString(nil))
		}

		cfg := st.config
		for _, key := range pa.sortedKeys() {
			v := pa.kw[key]
			if set, ok := floatSettings[key]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("placement: %s: %w", key, err)
				}
				set(&cfg, f)
				continue
			}
			if set, ok := intSettings[key]; ok {
				n, err := toInt(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("placement: %s: %w", key, err)
				}
				set(&cfg, n)
				continue
			}
			return zygo.SexpNull, fmt.Errorf("placement: unknown setting :%s", key)
		}

		st.config = cfg
		st.placementSet = true
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (rgba 0 0 1 0.5) or (rgba 0 1 0)
	// -----------------------------------------------------------------------
	env.AddFunction("rgba", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 && len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("rgba requires 3 or 4 arguments, got %d", len(args))
		}

		comps := [4]float64{0, 0, 0, 1}
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rgba: component %d: %w", i, err)
			}
			if f < 0 || f > 1 {
				return zygo.SexpNull, fmt.Errorf("rgba: component %d: %g is outside [0, 1]", i, f)
			}
			comps[i] = f
		}

		return &sexpColor{color: scene.Color{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}}, nil
	})

	// -----------------------------------------------------------------------
	// (palette :plane (rgba ...) :center (rgba ...) :body (rgba ...))
	// -----------------------------------------------------------------------
	env.AddFunction("palette", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if st.paletteSet {
			return zygo.SexpNull, fmt.Errorf("palette: already defined")
		}
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("palette: unexpected positional argument %s",
				pa.positional[0].SexpString(nil))
		}

		p := st.config.Palette
		for _, key := range pa.sortedKeys() {
			var target *scene.Color
			switch key {
			case "plane":
				target = &p.Plane
			case "center":
				target = &p.Center
			case "body":
				target = &p.Body
			default:
				return zygo.SexpNull, fmt.Errorf("palette: unknown setting :%s", key)
			}
			c, err := toColor(pa.kw[key])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("palette: %s: %w", key, err)
			}
			*target = c
		}

		st.config.Palette = p
		st.paletteSet = true
		return zygo.SexpNull, nil
	})
}
