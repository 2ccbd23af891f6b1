package i

// Recorder collects simulation metrics.
type Recorder interface {
	// Tick counts one handled tick.
	Tick(algorithm string)

	// RunCompleted records the length of a finished run.
	RunCompleted(algorithm string, run, ticks int)

	// Route records the length of the victory route.
	Route(algorithm string, cells int)
}
