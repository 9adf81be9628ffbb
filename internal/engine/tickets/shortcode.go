package tickets

import (
	"fmt"
	"strconv"

	"posflow/internal/engine/orders"
)

// Display code ranges are fixed by the physical kitchen screens: POS orders
// cycle through 1..20, online orders through M31..M39.
const (
	posRangeStart = 1
	posRangeEnd   = 20

	onlineRangeStart = 31
	onlineRangeEnd   = 39
)

// Assign picks the first code in the source's range that no active ticket at
// the location holds. A fully occupied range wraps to the first code of the
// range even though it collides; the display space is bounded and reusing the
// oldest slot beats refusing the ticket. Unknown sources use the POS range.
func Assign(source string, activeShortcodes []string) string {
	active := make(map[string]bool, len(activeShortcodes))
	for _, code := range activeShortcodes {
		active[code] = true
	}

	if source == orders.SourceCountrtopOnline {
		for i := onlineRangeStart; i <= onlineRangeEnd; i++ {
			code := fmt.Sprintf("M%d", i)
			if !active[code] {
				return code
			}
		}
		return fmt.Sprintf("M%d", onlineRangeStart)
	}

	for i := posRangeStart; i <= posRangeEnd; i++ {
		code := strconv.Itoa(i)
		if !active[code] {
			return code
		}
	}
	return strconv.Itoa(posRangeStart)
}
