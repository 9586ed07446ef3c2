package glitch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Preset is a named set of parameter values that can be stored as YAML.
type Preset struct {
	Name      string  `yaml:"name"`
	Division  float64 `yaml:"division"`
	Bias      float64 `yaml:"bias"`
	Chaos     float64 `yaml:"chaos"`
	Perturb   float64 `yaml:"perturb"`
	SensingLP float64 `yaml:"sensing_lp"`
}

// DefaultPreset returns the effect's initial parameter values.
func DefaultPreset() *Preset {
	return &Preset{
		Name:      "default",
		Division:  defaultDivision,
		Bias:      defaultBias,
		Chaos:     defaultChaos,
		Perturb:   defaultPerturb,
		SensingLP: defaultSensingLP,
	}
}

// LoadPreset reads a preset from a YAML file.
// Fields missing from the file keep their default values.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}

	p := DefaultPreset()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}

	return p, nil
}

// LoadPresetOrDefault loads the preset at path, or returns the default
// preset when path is empty or the file does not exist.
func LoadPresetOrDefault(path string) (*Preset, error) {
	if path == "" {
		return DefaultPreset(), nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return DefaultPreset(), nil
	}

	return LoadPreset(path)
}

// Save writes the preset to path as YAML, creating parent directories.
func (p *Preset) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preset directory: %w", err)
		}
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}

	return nil
}

// values returns the preset fields in parameter index order.
func (p *Preset) values() [ParamCount]float64 {
	return [ParamCount]float64{
		ParamDivision:  p.Division,
		ParamBias:      p.Bias,
		ParamChaos:     p.Chaos,
		ParamPerturb:   p.Perturb,
		ParamSensingLP: p.SensingLP,
	}
}

// Apply sets every parameter from preset. Values are clamped to [0, 1].
// Nothing is changed when any value is not finite.
func (p *Parameters) Apply(preset *Preset) error {
	if preset == nil {
		return fmt.Errorf("%w: preset is nil", ErrInvalidParameter)
	}

	values := preset.values()
	for i, v := range values {
		if err := checkFinite(i, v); err != nil {
			return fmt.Errorf("preset %q: %w", preset.Name, err)
		}
	}
	for i, v := range values {
		if err := p.Set(i, v); err != nil {
			return err
		}
	}

	return nil
}

// Snapshot captures the current parameter values as an unnamed preset.
func (p *Parameters) Snapshot() *Preset {
	return &Preset{
		Division:  p.Division(),
		Bias:      p.Bias(),
		Chaos:     p.Chaos(),
		Perturb:   p.Perturb(),
		SensingLP: p.SensingLP(),
	}
}
