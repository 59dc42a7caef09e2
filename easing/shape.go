// Package easing produces step delays following easing curves, used to
// accelerate and decelerate steppers.
package easing

import (
	"fmt"
	"math"
	"strings"
)

// Shape maps progress t in [0, 1] to curve value, 0 at t=0 and 1 at t=1.
// Elastic, back and bounce shapes leave [0, 1] in between.
type Shape int

const (
	Linear Shape = iota
	QuadIn
	QuadOut
	QuadInOut
	CircularIn
	CircularOut
	CircularInOut
	ExpoIn
	ExpoOut
	ExpoInOut
	ElasticIn
	ElasticOut
	ElasticInOut
	BackIn
	BackOut
	BackInOut
	BounceIn
	BounceOut
	BounceInOut
)

var shapes = []struct {
	name string
	fn   func(float64) float64
}{
	Linear:        {"linear", linear},
	QuadIn:        {"quad-in", quadIn},
	QuadOut:       {"quad-out", quadOut},
	QuadInOut:     {"quad-in-out", quadInOut},
	CircularIn:    {"circular-in", circularIn},
	CircularOut:   {"circular-out", circularOut},
	CircularInOut: {"circular-in-out", circularInOut},
	ExpoIn:        {"expo-in", expoIn},
	ExpoOut:       {"expo-out", expoOut},
	ExpoInOut:     {"expo-in-out", expoInOut},
	ElasticIn:     {"elastic-in", elasticIn},
	ElasticOut:    {"elastic-out", elasticOut},
	ElasticInOut:  {"elastic-in-out", elasticInOut},
	BackIn:        {"back-in", backIn},
	BackOut:       {"back-out", backOut},
	BackInOut:     {"back-in-out", backInOut},
	BounceIn:      {"bounce-in", bounceIn},
	BounceOut:     {"bounce-out", bounceOut},
	BounceInOut:   {"bounce-in-out", bounceInOut},
}

// Shapes returns all known shapes.
func Shapes() []Shape {
	r := make([]Shape, len(shapes))
	for i := range shapes {
		r[i] = Shape(i)
	}
	return r
}

func (s Shape) valid() bool {
	return s >= 0 && int(s) < len(shapes)
}

func (s Shape) String() string {
	if !s.valid() {
		return fmt.Sprintf("shape(%d)", int(s))
	}
	return shapes[s].name
}

// Ease evaluates shape at t. Unknown shapes are linear.
func (s Shape) Ease(t float64) float64 {
	if !s.valid() {
		return t
	}
	return shapes[s].fn(t)
}

// ParseShape accepts names like "quad-in-out", "QuadEaseInOut" or
// "exponential_in". Matching ignores case, separators and the word "ease".
func ParseShape(name string) (Shape, error) {
	key := normalize(name)
	for i, s := range shapes {
		if normalize(s.name) == key {
			return Shape(i), nil
		}
	}
	switch key {
	case "linearinout":
		return Linear, nil
	case "exponentialin":
		return ExpoIn, nil
	case "exponentialout":
		return ExpoOut, nil
	case "exponentialinout":
		return ExpoInOut, nil
	}
	return 0, fmt.Errorf("unknown easing shape %q", name)
}

func normalize(name string) string {
	n := strings.ToLower(name)
	n = strings.NewReplacer("-", "", "_", "", " ", "", "ease", "").Replace(n)
	return n
}

func (s Shape) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid easing shape %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(b []byte) error {
	v, err := ParseShape(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func linear(t float64) float64 {
	return t
}

func quadIn(t float64) float64 {
	return t * t
}

func quadOut(t float64) float64 {
	return -(t * (t - 2))
}

func quadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -2*t*t + 4*t - 1
}

func circularIn(t float64) float64 {
	return 1 - math.Sqrt(1-t*t)
}

func circularOut(t float64) float64 {
	return math.Sqrt((2 - t) * t)
}

func circularInOut(t float64) float64 {
	if t < 0.5 {
		return 0.5 * (1 - math.Sqrt(1-4*t*t))
	}
	return 0.5 * (math.Sqrt(-(2*t-3)*(2*t-1)) + 1)
}

func expoIn(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

func expoOut(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func expoInOut(t float64) float64 {
	switch {
	case t == 0 || t == 1:
		return t
	case t < 0.5:
		return 0.5 * math.Pow(2, 20*t-10)
	}
	return -0.5*math.Pow(2, -20*t+10) + 1
}

const elasticFreq = 13 * math.Pi / 2

func elasticIn(t float64) float64 {
	return math.Sin(elasticFreq*t) * math.Pow(2, 10*(t-1))
}

func elasticOut(t float64) float64 {
	return math.Sin(-elasticFreq*(t+1))*math.Pow(2, -10*t) + 1
}

func elasticInOut(t float64) float64 {
	if t < 0.5 {
		return 0.5 * math.Sin(elasticFreq*2*t) * math.Pow(2, 10*(2*t-1))
	}
	return 0.5 * (math.Sin(-elasticFreq*2*t)*math.Pow(2, -10*(2*t-1)) + 2)
}

func backIn(t float64) float64 {
	return t*t*t - t*math.Sin(t*math.Pi)
}

func backOut(t float64) float64 {
	p := 1 - t
	return 1 - (p*p*p - p*math.Sin(p*math.Pi))
}

func backInOut(t float64) float64 {
	if t < 0.5 {
		return 0.5 * backIn(2*t)
	}
	return 0.5*backOut(2*t-1) + 0.5
}

func bounceOut(t float64) float64 {
	switch {
	case t < 4.0/11:
		return 121 * t * t / 16
	case t < 8.0/11:
		return 363.0/40*t*t - 99.0/10*t + 17.0/5
	case t < 9.0/10:
		return 4356.0/361*t*t - 35442.0/1805*t + 16061.0/1805
	}
	return 54.0/5*t*t - 513.0/25*t + 268.0/25
}

func bounceIn(t float64) float64 {
	return 1 - bounceOut(1-t)
}

func bounceInOut(t float64) float64 {
	if t < 0.5 {
		return 0.5 * bounceIn(2*t)
	}
	return 0.5*bounceOut(2*t-1) + 0.5
}
