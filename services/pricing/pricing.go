package pricing

import (
	"time"

	shipmentModel "courier-service/models/shipment"

	"github.com/jinzhu/now"
)

// Tier rate card. Price = base + per-kg rate * chargeable weight.
const (
	standardBase  = 5.00
	expressBase   = 9.00
	overnightBase = 18.00

	standardPerKg  = 1.20
	expressPerKg   = 2.10
	overnightPerKg = 3.50

	// Declared-value surcharge applied above the free threshold
	declaredValueThreshold = 100.0
	declaredValueRate      = 0.01
)

// Transit days per tier, used for the delivery estimate.
var transitDays = map[shipmentModel.ServiceTier]int{
	shipmentModel.TierStandard:  5,
	shipmentModel.TierExpress:   2,
	shipmentModel.TierOvernight: 1,
}

// Quote returns the price for a package of the given weight, declared value
// and tier.
func Quote(tier shipmentModel.ServiceTier, weightKg, declaredValue float64) float64 {
	var base, perKg float64
	switch tier {
	case shipmentModel.TierExpress:
		base, perKg = expressBase, expressPerKg
	case shipmentModel.TierOvernight:
		base, perKg = overnightBase, overnightPerKg
	default:
		base, perKg = standardBase, standardPerKg
	}

	price := base + perKg*weightKg
	if declaredValue > declaredValueThreshold {
		price += (declaredValue - declaredValueThreshold) * declaredValueRate
	}
	return price
}

// EstimatedDelivery returns the end of the business day the shipment is
// expected to arrive, counted from the creation time.
func EstimatedDelivery(tier shipmentModel.ServiceTier, from time.Time) time.Time {
	days, ok := transitDays[tier]
	if !ok {
		days = transitDays[shipmentModel.TierStandard]
	}
	return now.With(from.AddDate(0, 0, days)).EndOfDay()
}
