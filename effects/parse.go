package effects

import (
	"strings"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/lucasb-eyer/go-colorful"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/fxstrip/fx"
)

var logger = logxi.New("effects")

// EffectSpec is the configuration form of an effect, as found in playlists.
// Colors are hex strings such as "#FF00FF", durations use time.ParseDuration
// syntax.
type EffectSpec struct {
	Name   string  `yaml:"name" toml:"name" json:"name"`
	Type   string  `yaml:"type" toml:"type" json:"type"` // solid, gradient, rainbow, chase, blink
	Color  string  `yaml:"color" toml:"color" json:"color"`
	From   string  `yaml:"from" toml:"from" json:"from"`
	To     string  `yaml:"to" toml:"to" json:"to"`
	Off    string  `yaml:"off" toml:"off" json:"off"`
	Period string  `yaml:"period" toml:"period" json:"period"`
	Spread float64 `yaml:"spread" toml:"spread" json:"spread"`
	Length int     `yaml:"length" toml:"length" json:"length"`
	Speed  float64 `yaml:"speed" toml:"speed" json:"speed"`
}

func parseColor(field string, value string, dflt string) (c colorful.Color, err errors.Error) {
	if len(value) == 0 {
		value = dflt
	}
	c, errGo := colorful.Hex(value)
	if errGo != nil {
		return c, errors.Wrap(errGo).With(field, value).With("stack", stack.Trace().TrimRuntime())
	}
	return c, nil
}

func parsePeriod(value string, dflt time.Duration) (period time.Duration, err errors.Error) {
	if len(value) == 0 {
		return dflt, nil
	}
	period, errGo := time.ParseDuration(value)
	if errGo != nil {
		return 0, errors.Wrap(errGo).With("period", value).With("stack", stack.Trace().TrimRuntime())
	}
	if period < 0 {
		return 0, errors.New("negative period").With("period", value).With("stack", stack.Trace().TrimRuntime())
	}
	return period, nil
}

// Parse creates the effect described by spec
func Parse(spec EffectSpec) (effect fx.Effect, err errors.Error) {
	name := spec.Name
	if len(name) == 0 {
		name = spec.Type
	}

	switch strings.ToLower(spec.Type) {
	case "solid":
		c, err := parseColor("color", spec.Color, "#FFFFFF")
		if err != nil {
			return nil, err.With("effect", name)
		}
		effect = NewSolid(name, c)

	case "gradient":
		from, err := parseColor("from", spec.From, "#000000")
		if err != nil {
			return nil, err.With("effect", name)
		}
		to, err := parseColor("to", spec.To, "#FFFFFF")
		if err != nil {
			return nil, err.With("effect", name)
		}
		effect = NewGradient(name, from, to)

	case "rainbow":
		period, err := parsePeriod(spec.Period, 10*time.Second)
		if err != nil {
			return nil, err.With("effect", name)
		}
		spread := spec.Spread
		if spread == 0 {
			spread = 360.0
		}
		effect = NewRainbow(name, period, spread)

	case "chase":
		c, err := parseColor("color", spec.Color, "#FFFFFF")
		if err != nil {
			return nil, err.With("effect", name)
		}
		length := spec.Length
		if length == 0 {
			length = 5
		}
		speed := spec.Speed
		if speed == 0 {
			speed = 30.0
		}
		effect = NewChase(name, c, length, speed)

	case "blink":
		on, err := parseColor("color", spec.Color, "#FFFFFF")
		if err != nil {
			return nil, err.With("effect", name)
		}
		off, err := parseColor("off", spec.Off, "#000000")
		if err != nil {
			return nil, err.With("effect", name)
		}
		period, err := parsePeriod(spec.Period, time.Second)
		if err != nil {
			return nil, err.With("effect", name)
		}
		effect = NewBlink(name, on, off, period)

	default:
		return nil, errors.New("unknown effect type").With("effect", name).With("type", spec.Type).With("stack", stack.Trace().TrimRuntime())
	}

	if logger.IsDebug() {
		logger.Debug("effect created", "effect", name, "type", spec.Type)
	}
	return effect, nil
}
