package main

import (
	"fmt"
	"strings"

	glitch "github.com/tphakala/go-audio-glitch"
)

// Key bindings: the upper row raises a parameter, the row below lowers it.
const (
	keyStep = 0.05

	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

var keyBindings = map[byte]struct {
	param int
	delta float64
}{
	'q': {glitch.ParamDivision, +keyStep}, 'a': {glitch.ParamDivision, -keyStep},
	'w': {glitch.ParamBias, +keyStep}, 's': {glitch.ParamBias, -keyStep},
	'e': {glitch.ParamChaos, +keyStep}, 'd': {glitch.ParamChaos, -keyStep},
	'r': {glitch.ParamPerturb, +keyStep}, 'f': {glitch.ParamPerturb, -keyStep},
	't': {glitch.ParamSensingLP, +keyStep}, 'g': {glitch.ParamSensingLP, -keyStep},
}

// keyAction is what a key press asks the player to do.
type keyAction int

const (
	actionNone keyAction = iota
	actionChanged
	actionReset
	actionQuit
)

// handleKey applies key to params.
func handleKey(params *glitch.Parameters, key byte) keyAction {
	switch key {
	case 'x', keyEscape, keyCtrlC:
		return actionQuit
	case ' ':
		return actionReset
	}

	binding, ok := keyBindings[key]
	if !ok {
		return actionNone
	}
	if err := params.Set(binding.param, params.Get(binding.param)+binding.delta); err != nil {
		return actionNone
	}
	return actionChanged
}

// statusLine renders every parameter on one line.
func statusLine(params *glitch.Parameters) string {
	parts := make([]string, 0, glitch.ParamCount)
	for i := range glitch.ParamCount {
		parts = append(parts, fmt.Sprintf("%s %s", glitch.ParameterName(i), params.ParameterText(i)))
	}
	return strings.Join(parts, " | ")
}

const keyHelp = "q/a div  w/s bias  e/d chaos  r/f perturb  t/g filter  space reset  x quit"
