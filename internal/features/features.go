package features

import (
	"fmt"
	"strings"
)

const (
	Registration = "registration"
	Investments  = "investments"
	Offers       = "offers"
)

// Flags is resolved once at startup. Unknown flags are enabled.
type Flags struct{ m map[string]bool }

// Parse reads "name=on,other=off". Accepted values: on/off, true/false, 1/0.
func Parse(raw string) (Flags, error) {
	f := Flags{m: map[string]bool{}}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, val, ok := strings.Cut(part, "=")
		if !ok {
			return Flags{}, fmt.Errorf("feature flag %q: missing value", part)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "on", "true", "1":
			f.m[name] = true
		case "off", "false", "0":
			f.m[name] = false
		default:
			return Flags{}, fmt.Errorf("feature flag %q: invalid value %q", name, val)
		}
	}
	return f, nil
}

func (f Flags) Enabled(name string) bool {
	v, ok := f.m[strings.ToLower(name)]
	if !ok {
		return true
	}
	return v
}
