package tavoo

// Config holds the host-controlled settings that shape how a [Player]
// interprets an incoming stream (SPEC_FULL.md's ambient-stack
// Configuration section): whether to pin one-seg caption defaults,
// and whether to prefer the second carried caption language.
type Config struct {
	// OneSeg pins caption display format/mode/group/languageTag to
	// profile-c/selectable/A/0 without waiting for a management-data
	// packet (spec.md §4.2).
	OneSeg bool

	// UseSubLang selects the second management-data language when ≥2
	// are carried; otherwise the first is used (spec.md §4.2).
	UseSubLang bool
}

// DefaultConfig returns a Config with one-seg pinning disabled and the
// primary caption language selected.
func DefaultConfig() Config {
	return Config{}
}
