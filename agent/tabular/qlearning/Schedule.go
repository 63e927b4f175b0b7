package qlearning

import (
	"math"

	"github.com/samuelfneumann/gomazesolver/utils/floatutils"
)

// Schedule determines the exploration rate of the behaviour policy
// for each episode, counted from zero
type Schedule interface {
	Epsilon(episode int) float64
}

// Constant is a Schedule which never changes epsilon
type Constant float64

// Epsilon implements the Schedule interface
func (c Constant) Epsilon(int) float64 {
	return float64(c)
}

// ExponentialDecay multiplies epsilon by Rate after every episode,
// never going below Min
type ExponentialDecay struct {
	Initial float64
	Rate    float64
	Min     float64
}

// Epsilon implements the Schedule interface
func (e ExponentialDecay) Epsilon(episode int) float64 {
	epsilon := e.Initial * math.Pow(e.Rate, float64(episode))
	return math.Max(epsilon, e.Min)
}

// LinearDecay interpolates epsilon linearly from Initial to Final over
// Episodes episodes and holds it at Final afterwards
type LinearDecay struct {
	Initial  float64
	Final    float64
	Episodes int
}

// Epsilon implements the Schedule interface
func (l LinearDecay) Epsilon(episode int) float64 {
	if l.Episodes <= 0 || episode >= l.Episodes {
		return l.Final
	}
	frac := float64(episode) / float64(l.Episodes)
	epsilon := l.Initial + frac*(l.Final-l.Initial)

	return floatutils.Clip(epsilon, math.Min(l.Initial, l.Final),
		math.Max(l.Initial, l.Final))
}
