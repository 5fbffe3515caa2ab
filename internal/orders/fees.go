package orders

const (
	DeliveryExpress   = "express"
	DeliveryTimeframe = "timeframe"

	expressFee            = 1500
	timeframeFee          = 500
	freeDeliveryThreshold = 5000
)

// ExpectedDeliveryFee computes the only fee the engine accepts for a given
// subtotal and delivery option. The client-supplied fee must match exactly.
func ExpectedDeliveryFee(subtotal int, option string) int {
	if subtotal <= 0 {
		return 0
	}
	switch option {
	case DeliveryExpress:
		return expressFee
	case DeliveryTimeframe:
		if subtotal < freeDeliveryThreshold {
			return timeframeFee
		}
	}
	return 0
}
