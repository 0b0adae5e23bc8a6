package ui

import (
	"github.com/olivier-w/barscope/internal/bands"
	"github.com/olivier-w/barscope/internal/geometry"
	"github.com/olivier-w/barscope/internal/sampler"
	"github.com/olivier-w/barscope/internal/scale"
	"github.com/olivier-w/barscope/internal/theme"
)

var (
	bandModes  = []bands.Mode{bands.Discrete, 1, 2, 3, 4, 6, 8, 12, 24}
	scales     = []scale.Kind{scale.Log, scale.Bark, scale.Mel, scale.Linear}
	layouts    = []geometry.Layout{geometry.Single, geometry.DualVertical, geometry.DualHorizontal, geometry.DualCombined}
	colorModes = []theme.Mode{theme.Gradient, theme.BarIndex, theme.BarLevel}
	filters    = []sampler.Filter{sampler.FilterNone, sampler.FilterA, sampler.FilterB, sampler.FilterC, sampler.FilterD, sampler.Filter468}
)

// cycle returns the element step places after cur, wrapping around. An
// unknown cur starts from the first element.
func cycle[T comparable](list []T, cur T, step int) T {
	if len(list) == 0 {
		return cur
	}
	idx := -1
	for i, v := range list {
		if v == cur {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list[0]
	}
	n := len(list)
	return list[((idx+step)%n+n)%n]
}
