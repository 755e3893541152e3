package http

import (
	"strconv"
	"strings"
)

// ---- helpers ----

// atoiOr parses optional numeric query values; garbage falls back to d and is
// then normalized by the services.
func atoiOr(s string, d int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return d
	}
	return n
}
