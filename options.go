package libcds

// config collects the construction parameters from spec §6: "expected
// maximum item count, target load factor." Grounded on the teacher's
// MapConfig / WithPresize / WithGrowOnly / WithShrinkEnabled pattern in
// mapof.go, adapted to a set with a fixed-size, non-resizing bucket
// table (spec's Non-goals rule out dynamic resizing outright, so there
// is no WithGrowOnly/WithShrinkEnabled analog here — only
// WithShrinkDisabled survives, as a documented no-op for callers porting
// tuning code from a resizing map).
type config struct {
	expectedItems int
	loadFactor    float64
	retireBatch   int
	counterShards int
}

func defaultConfig() config {
	return config{
		expectedItems: defaultMinTableLen,
		loadFactor:    defaultLoadFactor,
		retireBatch:   defaultRetireBatchFactor,
		counterShards: 0, // resolved against GOMAXPROCS at construction
	}
}

// Option configures a Set at construction. Options are applied once,
// before the set is used; like the teacher's Init, applying options to
// a Set already in use is not supported.
type Option func(*config)

// WithExpectedItems sizes the bucket table so that, at the configured
// load factor, it can hold at least n items without excessive chaining.
// The core never resizes afterward (spec §1, Non-goals).
func WithExpectedItems(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.expectedItems = n
		}
	}
}

// WithLoadFactor sets the target items-per-bucket ratio used to size
// the bucket table at construction (spec §6).
func WithLoadFactor(f float64) Option {
	return func(c *config) {
		if f > 0 {
			c.loadFactor = f
		}
	}
}

// WithRetireBatch sets the multiple of the current reader population
// used as the retire-buffer flush threshold (spec §4.1, "Batching").
func WithRetireBatch(factor int) Option {
	return func(c *config) {
		if factor > 0 {
			c.retireBatch = factor
		}
	}
}

// WithCounterShards sets the number of stripes in the approximate item
// counter. Rounded up to a power of two.
func WithCounterShards(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.counterShards = n
		}
	}
}

// WithShrinkDisabled is accepted for API-compatibility with tuning code
// ported from a resizing map, but is always a no-op: the bucket table
// never shrinks (or grows) after construction (spec §1, Non-goals).
func WithShrinkDisabled() Option {
	return func(*config) {}
}

const (
	defaultMinTableLen = 32
	defaultLoadFactor  = 0.75
)
