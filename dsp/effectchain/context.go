package effectchain

// Context provides the environmental information factories need to
// validate parameters.
type Context struct {
	SampleRate float64
}
