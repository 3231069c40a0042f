// Package state translates human-readable state keywords into gateway
// state updates.
//
// The CLI accepts light state as a list of free-order keywords, e.g.
// "on 90% cool" or "off", and this package turns them into the exact
// attribute set a given device accepts. Translation is device-aware:
// color temperatures are clamped to the target's supported range, and
// on/off-only units (plugs, relays) receive nothing but the "on" field.
package state

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/anjos/lighter/internal/model"
)

// Target describes the device (or group) a keyword list is being
// translated for. It carries the two properties translation branches on:
// whether the target is an on/off-only unit, and which color temperature
// range it accepts.
type Target struct {
	// Switch marks on/off-only units; all fields except On are dropped
	// for these.
	Switch bool

	// CtMin and CtMax bound the color temperatures the target accepts.
	CtMin int
	CtMax int
}

// ForLight builds the translation target for an individual light.
func ForLight(l *model.Light) Target {
	min, max := l.CtBounds()
	return Target{Switch: l.IsSwitch(), CtMin: min, CtMax: max}
}

// ForGroup builds the translation target for a whole group. Group
// actions cannot consult individual device limits, so the most
// restrictive bounds found in common household bulbs are used.
func ForGroup() Target {
	return Target{CtMin: model.GroupCtMin, CtMax: model.GroupCtMax}
}

// presetKelvin maps the white temperature preset keywords to Kelvin.
// The extremes reflect real hardware: 2600K is the practical minimum for
// IKEA/Philips lights, 5190K the maximum for IKEA and 6500K for Philips.
var presetKelvin = map[string]int{
	"candle":  2000,
	"warm":    2700,
	"warm+":   3000,
	"soft":    3500,
	"natural": 3700,
	"cool":    4000,
	"day-":    5000,
	"day":     6500,
}

// Translate converts a list of state keywords into a StateUpdate for the
// given target. Keywords are matched case-insensitively and consumed in
// order, later keywords overriding earlier ones.
//
// Recognized keywords:
//
//   - "on" / "off" (also "0" and "0%"): power
//   - "1%".."100%": brightness
//   - "2000k".."6500k": white temperature in Kelvin
//   - "candle", "warm", "warm+", "soft", "natural", "cool", "day-",
//     "day": white temperature presets
//   - "alert": blink the light for a few seconds
//
// transition is the fade time between the current and requested state,
// in tenths of a second. Returned warnings describe values that had to
// be clamped to the target's supported range; an unrecognized keyword is
// an error.
func Translate(words []string, target Target, transition int) (model.StateUpdate, []string, error) {
	// Defaults mirror the gateway's expectations for a state write: the
	// light turns on unless asked otherwise, and any running alert
	// effect is cancelled.
	on := true
	alert := "none"
	update := model.StateUpdate{On: &on, Alert: &alert}

	var warnings []string

	for _, word := range words {
		key := strings.ToLower(word)

		switch {
		case key == "off" || key == "0" || key == "0%":
			*update.On = false

		case key == "on":
			*update.On = true

		case key == "alert":
			*update.Alert = "lselect"

		case strings.HasSuffix(key, "%"):
			perc, err := strconv.Atoi(strings.TrimSuffix(key, "%"))
			if err != nil || perc < 0 || perc > 100 {
				return model.StateUpdate{}, nil,
					fmt.Errorf("invalid brightness %q: expected 0%% to 100%%", word)
			}
			bri := briFromPercent(perc)
			update.Bri = &bri

		case strings.HasSuffix(key, "k"):
			kelvin, err := strconv.Atoi(strings.TrimSuffix(key, "k"))
			if err != nil {
				return model.StateUpdate{}, nil,
					fmt.Errorf("invalid color temperature %q: expected e.g. 2700K", word)
			}
			ct, warn := ctFromKelvin(kelvin, target)
			update.Ct = &ct
			warnings = append(warnings, warn...)

		default:
			if kelvin, ok := presetKelvin[key]; ok {
				ct, warn := ctFromKelvin(kelvin, target)
				update.Ct = &ct
				warnings = append(warnings, warn...)
				break
			}
			return model.StateUpdate{}, nil,
				fmt.Errorf("keyword %q is not recognized when setting the light state", word)
		}
	}

	// On/off units reject every other attribute, so strip the update
	// down to the power field.
	if target.Switch {
		return model.StateUpdate{On: update.On}, warnings, nil
	}

	update.TransitionTime = &transition
	return update, warnings, nil
}

// briFromPercent converts a 0-100 percentage to the gateway's 0-255
// brightness scale.
func briFromPercent(perc int) int {
	return int(math.Round(255 * float64(perc) / 100.0))
}

// ctFromKelvin converts a Kelvin temperature to the gateway's inverted
// color temperature scale and clamps the result to the target's bounds.
//
// Kelvin is first bounded to [2000, 6500], mapped linearly onto
// [CtScaleMin, CtScaleMax], then inverted (the gateway scale runs from
// cold to warm while Kelvin runs from warm to cold). Values outside the
// target's own range are clamped with a warning, so the gateway is sent
// whatever the device can actually do.
func ctFromKelvin(kelvin int, target Target) (int, []string) {
	k := float64(kelvin)
	if k < 2000 {
		k = 2000
	}
	if k > 6500 {
		k = 6500
	}

	scaled := ((k-2000.0)/(6500.0-2000.0))*
		float64(model.CtScaleMax-model.CtScaleMin) + float64(model.CtScaleMin)
	value := model.CtScaleMax + model.CtScaleMin - int(math.Round(scaled))

	var warnings []string
	if value < target.CtMin {
		warnings = append(warnings, fmt.Sprintf(
			"cannot set color temperature to %d (minimum is %d)", value, target.CtMin))
		value = target.CtMin
	}
	if value > target.CtMax {
		warnings = append(warnings, fmt.Sprintf(
			"cannot set color temperature to %d (maximum is %d)", value, target.CtMax))
		value = target.CtMax
	}

	return value, warnings
}
