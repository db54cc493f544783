package services

import (
	"github.com/ammarsarhan/hagz-sub001/models"
)

// PriceSegments walks the hour segments and sums the unit price of every
// (segment, ground) pair: the ground's own price when set, else the pitch base
// price, with the peak surcharge or off-peak discount applied per the
// segment's schedule. An hour is never in both sets. No rounding happens
// here; only the final total may be rounded by the caller.
func PriceSegments(segments []HourSegment, grounds []models.Ground, pitchBasePrice float64, resolved ResolvedSettings) float64 {
	total := 0.0
	for _, segment := range segments {
		peak := segment.Schedule.PeakHourSet()
		offPeak := segment.Schedule.OffPeakHourSet()
		for i := range grounds {
			unit := grounds[i].HourlyPrice(pitchBasePrice)
			switch {
			case peak[segment.Hour]:
				unit *= 1 + resolved.PeakHourSurchargePct/100
			case offPeak[segment.Hour]:
				unit *= 1 - resolved.OffPeakDiscountPct/100
			}
			total += unit
		}
	}
	return total
}
