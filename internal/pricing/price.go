package pricing

import "trailporter/internal/trail"

// Price rules, in whole EUR. Trips of four or more transfers get the lower
// per-transfer rate; the first two bags travel free.
const (
	perTransferShort  = 20
	perTransferLong   = 15
	longTripThreshold = 4
	freeBagAllowance  = 2
	extraBagPerLeg    = 5
)

// Price computes the total for a route and bag count. It is the single
// source of truth for any displayed or charged amount. ok is false when the
// route is empty or the bag count is not positive.
func Price(route []trail.Segment, bags int) (int, bool) {
	if len(route) == 0 || bags <= 0 {
		return 0, false
	}

	transfers := len(route)
	perTransfer := perTransferShort
	if transfers >= longTripThreshold {
		perTransfer = perTransferLong
	}
	base := transfers * perTransfer

	extraBags := bags - freeBagAllowance
	if extraBags < 0 {
		extraBags = 0
	}
	extra := transfers * extraBags * extraBagPerLeg

	return base + extra, true
}
