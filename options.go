package ktv

// options holds the resolved effect of every Option applied to a Record.
// Zero value leaks rather than frees a replaced slot value, and tolerates
// a JSON kind mismatch by skipping the field.
type options struct {
	freeReplaced bool
	strictJSON   bool
}

// Option configures a Record at construction time, in the conventional
// Go functional-options style.
type Option func(*options)

// WithFreeReplaced makes Set* accessors release the previous value of a
// MODEL, ARRAY, or MODEL_ARRAY slot before overwriting it, instead of
// leaking it silently. This option opts into eager cleanup when that
// matters.
func WithFreeReplaced() Option {
	return func(o *options) { o.freeReplaced = true }
}

// WithStrictJSON makes FromJSON report a JsonKindMismatch error instead of
// silently skipping a field whose JSON value doesn't match the field's
// declared kind.
func WithStrictJSON() Option {
	return func(o *options) { o.strictJSON = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
