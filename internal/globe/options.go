package globe

import "time"

// Options tunes the camera. The zero value is not usable, start from DefaultOptions.
type Options struct {
	MinScale      float64       // smallest allowed scale
	MaxScale      float64       // largest allowed scale, also caps the fit-to-target zoom
	InitialScale  float64       // scale before any target is shown
	LODThreshold  float64       // scale above which high detail geometry is drawn
	FitPadding    float64       // pixels kept free around a fitted target
	Sensitivity   float64       // drag speed constant, degrees per pixel at scale 1
	WheelStep     float64       // zoom factor of one wheel notch
	FlyDuration   time.Duration // length of a fly-to
	SkipThreshold float64       // fly-tos shorter than this many degrees are skipped
}

// DefaultOptions returns the standard camera settings
func DefaultOptions() Options {
	return Options{
		MinScale:      100,
		MaxScale:      20000,
		InitialScale:  250,
		LODThreshold:  800,
		FitPadding:    50,
		Sensitivity:   75,
		WheelStep:     1.1,
		FlyDuration:   700 * time.Millisecond,
		SkipThreshold: 1,
	}
}
