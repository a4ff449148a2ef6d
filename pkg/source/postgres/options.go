package postgres

// options configures an introspection run.
type options struct {
	schemas       []string
	excludeTables map[string]bool
}

// Option customizes introspection.
type Option func(*options)

// WithSchemas limits introspection to the given database schemas.
// The default is just "public".
func WithSchemas(names ...string) Option {
	return func(o *options) {
		o.schemas = names
	}
}

// WithExcludeTables drops the named tables (and any relations touching them)
// from the result. Useful for migration bookkeeping tables.
func WithExcludeTables(names ...string) Option {
	return func(o *options) {
		for _, n := range names {
			o.excludeTables[n] = true
		}
	}
}

func defaultOptions() *options {
	return &options{
		schemas:       []string{"public"},
		excludeTables: map[string]bool{},
	}
}
