package aggregation

const (
	// DefaultNumClasses is the size of the label space the mechanism is
	// published with. Valid teacher labels are 1..DefaultNumClasses; label 0
	// means "no vote" and is excluded from every tally.
	DefaultNumClasses = 5

	// DefaultLapScale is the Laplace scale used when none is configured.
	DefaultLapScale = 0.1

	// progressInterval controls how often the noisy aggregator reports
	// progress while scanning sample groups.
	progressInterval = 100
)
