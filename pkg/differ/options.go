package differ

// Option is a functional option for configuring a Differ
type Option func(*differ)

// WithLabels sets the file labels printed in the diff header
func WithLabels(from, to string) Option {
	return func(d *differ) {
		d.fromLabel = from
		d.toLabel = to
	}
}

// WithContext sets the number of context lines around each change
func WithContext(lines int) Option {
	return func(d *differ) {
		if lines < 0 {
			lines = 0
		}
		d.context = lines
	}
}
