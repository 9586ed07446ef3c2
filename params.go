package glitch

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/tphakala/go-audio-glitch/internal/engine"
)

// Parameter indices, in host order.
const (
	ParamDivision = iota
	ParamBias
	ParamChaos
	ParamPerturb
	ParamSensingLP

	// ParamCount is the number of automatable parameters.
	ParamCount
)

var parameterNames = [ParamCount]string{
	ParamDivision:  "Freq div",
	ParamBias:      "Sens. bias",
	ParamChaos:     "Sens. chaos",
	ParamPerturb:   "Sens. perturb",
	ParamSensingLP: "Sens. filter",
}

// ParameterName returns the display name of parameter index,
// or "" for an unknown index.
func ParameterName(index int) string {
	if index < 0 || index >= ParamCount {
		return ""
	}
	return parameterNames[index]
}

// Parameters holds the five normalized (0..1) controls of an effect.
//
// Each value lives in its own atomic cell, so a UI or automation goroutine
// may Set while the audio goroutine reads. Reads within one block may see a
// mix of old and new values; no ordering between cells is guaranteed.
type Parameters struct {
	cells [ParamCount]atomic.Uint32 // float32 bits
}

// NewParameters returns parameters at their defaults.
func NewParameters() *Parameters {
	p := &Parameters{}
	p.store(ParamDivision, defaultDivision)
	p.store(ParamBias, defaultBias)
	p.store(ParamChaos, defaultChaos)
	p.store(ParamPerturb, defaultPerturb)
	p.store(ParamSensingLP, defaultSensingLP)
	return p
}

// Get returns the value of parameter index, or 0 for an unknown index.
func (p *Parameters) Get(index int) float64 {
	if index < 0 || index >= ParamCount {
		return 0
	}
	return float64(math.Float32frombits(p.cells[index].Load()))
}

// Set stores value into parameter index. Values are clamped to [0, 1].
func (p *Parameters) Set(index int, value float64) error {
	if index < 0 || index >= ParamCount {
		return fmt.Errorf("%w: index %d out of range [0, %d)", ErrInvalidParameter, index, ParamCount)
	}
	if err := checkFinite(index, value); err != nil {
		return err
	}
	p.store(index, max(0, min(value, 1)))
	return nil
}

func checkFinite(index int, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, parameterNames[index], value)
	}
	return nil
}

func (p *Parameters) store(index int, value float64) {
	p.cells[index].Store(math.Float32bits(float32(value)))
}

// Division returns the frequency division control.
func (p *Parameters) Division() float64 { return p.Get(ParamDivision) }

// Bias returns the sensing bias control.
func (p *Parameters) Bias() float64 { return p.Get(ParamBias) }

// Chaos returns the sensing chaos control.
func (p *Parameters) Chaos() float64 { return p.Get(ParamChaos) }

// Perturb returns the sensing perturbation control.
func (p *Parameters) Perturb() float64 { return p.Get(ParamPerturb) }

// SensingLP returns the sensing filter control.
func (p *Parameters) SensingLP() float64 { return p.Get(ParamSensingLP) }

// SetDivision sets the frequency division control.
func (p *Parameters) SetDivision(v float64) error { return p.Set(ParamDivision, v) }

// SetBias sets the sensing bias control.
func (p *Parameters) SetBias(v float64) error { return p.Set(ParamBias, v) }

// SetChaos sets the sensing chaos control.
func (p *Parameters) SetChaos(v float64) error { return p.Set(ParamChaos, v) }

// SetPerturb sets the sensing perturbation control.
func (p *Parameters) SetPerturb(v float64) error { return p.Set(ParamPerturb, v) }

// SetSensingLP sets the sensing filter control.
func (p *Parameters) SetSensingLP(v float64) error { return p.Set(ParamSensingLP, v) }

// Divisions returns the segment count the division control maps to.
func (p *Parameters) Divisions() int {
	return engine.DivisionCount(p.Division())
}

// ParameterText returns the display text of parameter index:
// "/ N" for the division, the centred bias (-1..1), the chaos percentage and
// the raw perturbation and filter values.
func (p *Parameters) ParameterText(index int) string {
	v := p.Get(index)
	switch index {
	case ParamDivision:
		return "/ " + strconv.Itoa(engine.DivisionCount(v))
	case ParamBias:
		return formatValue(v*2 - 1)
	case ParamChaos:
		return formatValue(v*percentScale) + "%"
	case ParamPerturb, ParamSensingLP:
		return formatValue(v)
	default:
		return ""
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(float64(float32(v)), 'f', -1, textBitSize)
}

// controls reads every cell once.
func (p *Parameters) controls() engine.Controls {
	return engine.Controls{
		Division:  p.Division(),
		Bias:      p.Bias(),
		Chaos:     p.Chaos(),
		Perturb:   p.Perturb(),
		SensingLP: p.SensingLP(),
	}
}
