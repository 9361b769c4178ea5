package simulation

const (
	baseCost      = 50.0
	costPerKg     = 0.5
	costPerCubicM = 100.0
	costPerKm     = 0.8
	fuelSurcharge = 1.2
)

// Cost returns the operating cost of moving a shipment. Inputs are expected
// to be non-negative.
func Cost(weight, volume, distance, fuelIndex float64) float64 {
	return baseCost +
		costPerKg*weight +
		costPerCubicM*volume +
		costPerKm*distance +
		fuelSurcharge*fuelIndex
}
