// SPDX-License-Identifier: MIT

package dataio

// Defaults.
const (
	// DefaultKeyColumn names the demand point column of the input tables.
	DefaultKeyColumn = "from_postcode"

	// DefaultActivityColumn names the activity column of the weights table.
	DefaultActivityColumn = "activity"

	// DefaultComma separates fields of the tabular inputs and outputs.
	DefaultComma = ','

	// EdgeComma separates fields of osm2ch edge files.
	EdgeComma = ';'
)

// DefaultNATokens are the cell values read as "unreachable".
var DefaultNATokens = []string{"", "NaN", "nan", "NA"}

// Option configures readers and writers of this package.
type Option func(*Options)

// Options holds the effective reader/writer configuration.
type Options struct {
	KeyColumn      string   // DefaultKeyColumn
	ActivityColumn string   // DefaultActivityColumn
	Comma          rune     // DefaultComma
	NATokens       []string // DefaultNATokens
	NaNRep         string   // "" (how undefined values are written)
	WrittenOnly    bool     // skip unwritten rows of a partial table
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		KeyColumn:      DefaultKeyColumn,
		ActivityColumn: DefaultActivityColumn,
		Comma:          DefaultComma,
		NATokens:       DefaultNATokens,
		WrittenOnly:    true,
	}
}

// WithKeyColumn sets the demand point column name. Panics on "".
func WithKeyColumn(name string) Option {
	if name == "" {
		panic("dataio: empty key column name")
	}
	return func(o *Options) { o.KeyColumn = name }
}

// WithActivityColumn sets the activity column name. Panics on "".
func WithActivityColumn(name string) Option {
	if name == "" {
		panic("dataio: empty activity column name")
	}
	return func(o *Options) { o.ActivityColumn = name }
}

// WithComma sets the field separator.
func WithComma(r rune) Option {
	return func(o *Options) { o.Comma = r }
}

// WithNATokens replaces the set of cell values read as unreachable.
func WithNATokens(tokens ...string) Option {
	cp := append([]string(nil), tokens...)
	return func(o *Options) { o.NATokens = cp }
}

// WithNaNRep sets the text written for undefined values.
func WithNaNRep(rep string) Option {
	return func(o *Options) { o.NaNRep = rep }
}

// WithAllRows makes WriteTable emit unwritten rows of a partial table as
// rows of undefined values instead of skipping them.
func WithAllRows() Option {
	return func(o *Options) { o.WrittenOnly = false }
}

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

func (o Options) isNA(cell string) bool {
	for _, t := range o.NATokens {
		if cell == t {
			return true
		}
	}

	return false
}
