package beat

import "math"

// Follower is an asymmetric envelope follower: the envelope rises with a fast
// attack and decays with a slow release, so it tracks transient peaks without
// collapsing between them.
type Follower struct {
	attackCoef  float64
	releaseCoef float64
}

// NewFollower creates an envelope follower. Attack and release are time
// constants in seconds, each converted to a per-sample exponential
// coefficient exp(-1/(t*sampleRate)).
func NewFollower(sampleRate int, attack, release float64) *Follower {
	return &Follower{
		attackCoef:  envCoef(sampleRate, attack),
		releaseCoef: envCoef(sampleRate, release),
	}
}

// Compute returns the amplitude envelope of the signal.
func (f *Follower) Compute(signal []float64) []float64 {
	envelope := make([]float64, len(signal))

	env := 0.0
	for i, sample := range signal {
		amp := math.Abs(sample)

		coef := f.releaseCoef
		if amp > env {
			coef = f.attackCoef
		}
		env = coef*env + (1-coef)*amp
		envelope[i] = env
	}

	return envelope
}

func envCoef(sampleRate int, timeConstant float64) float64 {
	if timeConstant <= 0 || sampleRate <= 0 {
		return 0
	}
	return math.Exp(-1.0 / (timeConstant * float64(sampleRate)))
}
