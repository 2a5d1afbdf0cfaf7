package fxstrip

// This file contains the playlist configuration that describes the strip and
// the effects to be loaded into the engine

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	"github.com/TeamNorCal/fxstrip/effects"
	"github.com/TeamNorCal/fxstrip/fx"
)

const (
	DefaultTransition = 2 * time.Second
)

// Playlist describes a strip and the effects it plays
type Playlist struct {
	Name       string               `yaml:"name" toml:"name"`
	Leds       int                  `yaml:"leds" toml:"leds"`
	Channel    uint8                `yaml:"channel" toml:"channel"`       // OPC channel the strip is attached to
	MaxEffects int                  `yaml:"maxEffects" toml:"maxEffects"` // 0 uses fx.DefaultMaxEffects
	Transition string               `yaml:"transition" toml:"transition"` // Crossfade duration
	Dwell      string               `yaml:"dwell" toml:"dwell"`           // Time each effect is shown before moving on, empty to stay put
	Effects    []effects.EffectSpec `yaml:"effects" toml:"effects"`
}

// LoadPlaylist reads a playlist from a YAML or TOML file, the format being
// selected using the file extension
func LoadPlaylist(fn string) (pl *Playlist, err errors.Error) {
	data, errGo := ioutil.ReadFile(fn)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("file", fn).With("stack", stack.Trace().TrimRuntime())
	}

	pl, err = ParsePlaylist(data, filepath.Ext(fn))
	if err != nil {
		return nil, err.With("file", fn)
	}
	return pl, nil
}

// ParsePlaylist decodes a playlist, format is one of yaml, yml or toml with or
// without a leading dot
func ParsePlaylist(data []byte, format string) (pl *Playlist, err errors.Error) {
	pl = &Playlist{}

	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yaml", "yml":
		if errGo := yaml.Unmarshal(data, pl); errGo != nil {
			return nil, errors.Wrap(errGo).With("format", format).With("stack", stack.Trace().TrimRuntime())
		}
	case "toml":
		if errGo := toml.Unmarshal(data, pl); errGo != nil {
			return nil, errors.Wrap(errGo).With("format", format).With("stack", stack.Trace().TrimRuntime())
		}
	default:
		return nil, errors.New("unknown playlist format").With("format", format).With("stack", stack.Trace().TrimRuntime())
	}
	return pl, nil
}

func parseDuration(field string, value string, dflt time.Duration) (d time.Duration, err errors.Error) {
	if len(value) == 0 {
		return dflt, nil
	}
	d, errGo := time.ParseDuration(value)
	if errGo != nil {
		return 0, errors.Wrap(errGo).With(field, value).With("stack", stack.Trace().TrimRuntime())
	}
	if d < 0 {
		return 0, errors.New("negative duration").With(field, value).With("stack", stack.Trace().TrimRuntime())
	}
	return d, nil
}

// Timing returns the crossfade duration and the dwell time of the playlist, a
// dwell of zero meaning effects are only changed on request
func (pl *Playlist) Timing() (transition time.Duration, dwell time.Duration, err errors.Error) {
	if transition, err = parseDuration("transition", pl.Transition, DefaultTransition); err != nil {
		return 0, 0, err
	}
	if dwell, err = parseDuration("dwell", pl.Dwell, 0); err != nil {
		return 0, 0, err
	}
	return transition, dwell, nil
}

// Build creates an engine loaded with the effects of the playlist in the
// order they are listed
func (pl *Playlist) Build() (engine *fx.Engine, err errors.Error) {
	if pl.Leds <= 0 {
		return nil, errors.New("playlist has no LEDs").With("playlist", pl.Name).With("leds", pl.Leds).With("stack", stack.Trace().TrimRuntime())
	}
	if pl.Leds > MaxOPCLeds {
		return nil, errors.New("strip too long for an OPC channel").With("playlist", pl.Name).With("leds", pl.Leds).With("max", MaxOPCLeds).With("stack", stack.Trace().TrimRuntime())
	}
	if len(pl.Effects) == 0 {
		return nil, errors.New("playlist has no effects").With("playlist", pl.Name).With("stack", stack.Trace().TrimRuntime())
	}
	if _, _, err = pl.Timing(); err != nil {
		return nil, err.With("playlist", pl.Name)
	}

	maxEffects := pl.MaxEffects
	if maxEffects <= 0 {
		maxEffects = fx.DefaultMaxEffects
	}
	engine = fx.NewEngineWithCapacity(pl.Leds, maxEffects)

	for i, spec := range pl.Effects {
		effect, err := effects.Parse(spec)
		if err != nil {
			return nil, err.With("playlist", pl.Name).With("index", i)
		}
		if !engine.AddEffect(effect) {
			return nil, errors.New("too many effects").With("playlist", pl.Name).With("index", i).With("max", maxEffects).With("stack", stack.Trace().TrimRuntime())
		}
	}
	return engine, nil
}
