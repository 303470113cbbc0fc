package utils

import "math"

// CalculateMaxQuantity calculates the largest quantity whose notional at price does not exceed funds.
func CalculateMaxQuantity(funds float64, price float64) float64 {
	if price <= 0 || funds <= 0 {
		return 0
	}

	maxQty := funds / price

	// funds/price can round up by one ulp
	for maxQty > 0 && maxQty*price > funds {
		maxQty = math.Nextafter(maxQty, 0)
	}

	return maxQty
}

// CalculateOrderQuantityByPercentage calculates the quantity of an order by the given percentage of the funds.
func CalculateOrderQuantityByPercentage(funds float64, price float64, percentage float64) float64 {
	return CalculateMaxQuantity(funds*percentage, price)
}
