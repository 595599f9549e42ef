package omr

// Options tunes the grading pipeline
type Options struct {
	// Sheet location
	BlurRadius         float64
	ApproxEpsilonRatio float64

	// Bubble classification
	DefaultThreshold float64

	// Overlay rendering
	OverlayThickness int
	FilledColor      string
	UnfilledColor    string
}

// DefaultOptions returns default pipeline options
func DefaultOptions() Options {
	return Options{
		BlurRadius:         2.0,  // 5-tap kernel
		ApproxEpsilonRatio: 0.02, // of the contour perimeter
		DefaultThreshold:   DefaultThreshold,
		OverlayThickness:   2,
		FilledColor:        "#00ff00",
		UnfilledColor:      "#ff0000",
	}
}

// WithThreshold overrides the threshold used by templates that declare none
func (opts Options) WithThreshold(threshold float64) Options {
	opts.DefaultThreshold = threshold
	return opts
}

// WithOverlayColors sets the hex colours used to outline bubbles
func (opts Options) WithOverlayColors(filled, unfilled string) Options {
	opts.FilledColor = filled
	opts.UnfilledColor = unfilled
	return opts
}

// WithoutBlur disables smoothing before binarization
func (opts Options) WithoutBlur() Options {
	opts.BlurRadius = 0
	return opts
}
