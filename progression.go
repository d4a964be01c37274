package ambitone

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Scene pairs a render config with the progression to render. It is the
// document format of the YAML scene files the command line tool accepts:
// an optional config mapping overriding the defaults field by field, and a
// required non-empty chords list.
type Scene struct {
	Config      RenderConfig `yaml:"config"`
	Progression Progression  `yaml:"chords"`
}

// DefaultProgression returns the stock onboarding progression: A major,
// B minor, C major, D major and back to A major, one second each, five
// seconds per cycle.
func DefaultProgression() Progression {
	return Progression{
		{Frequencies: []float64{440.00, 554.37, 659.25}, Duration: 1}, // A
		{Frequencies: []float64{493.88, 587.33, 739.99}, Duration: 1}, // Bm
		{Frequencies: []float64{523.25, 659.25, 783.99}, Duration: 1}, // C
		{Frequencies: []float64{587.33, 739.99, 880.00}, Duration: 1}, // D
		{Frequencies: []float64{440.00, 554.37, 659.25}, Duration: 1}, // A
	}
}

// ParseScene decodes and validates a YAML scene. Config fields absent from
// the document keep their DefaultRenderConfig values. All failures wrap
// ErrInvalidConfig.
func ParseScene(data []byte) (Scene, error) {
	scene := Scene{Config: DefaultRenderConfig()}
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return Scene{}, fmt.Errorf("%w: could not parse scene: %v", ErrInvalidConfig, err)
	}
	if err := scene.Config.Validate(); err != nil {
		return Scene{}, err
	}
	if err := scene.Progression.Validate(); err != nil {
		return Scene{}, err
	}
	return scene, nil
}
