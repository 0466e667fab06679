package update

// Aliases maps a pinned game version to the versions whose mods are
// accepted for it, most compatible first.
type Aliases map[string][]string

// DefaultAliases reflects mod compatibility across minor releases.
var DefaultAliases = Aliases{
	"1.10.2": {"1.10.2", "1.10.1", "1.10", "1.9.4"},
	"1.10.1": {"1.10.1", "1.10", "1.9.4"},
	"1.10":   {"1.10", "1.9.4"},
	"1.8.9":  {"1.8.9", "1.8.8"},
}

// Versions returns the game versions to try for pinned, in order.
func (a Aliases) Versions(pinned string) []string {
	vs, ok := a[pinned]
	if !ok || len(vs) == 0 {
		return []string{pinned}
	}
	return append([]string(nil), vs...)
}
