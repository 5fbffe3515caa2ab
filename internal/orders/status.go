package orders

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryEnRoute   DeliveryStatus = "en_route"
	DeliveryDelivered DeliveryStatus = "delivered"
)

// statusNext enumerates legal transitions on the status axis. Admin
// accept/reject is allowed from every state, including accepted and rejected
// themselves; a repeated reject therefore restocks again (see Engine). An
// external payment verification may also mark any order processing.
var statusNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusAccepted: true, StatusRejected: true},
	StatusProcessing: {StatusProcessing: true, StatusAccepted: true, StatusRejected: true},
	StatusAccepted:   {StatusProcessing: true, StatusAccepted: true, StatusRejected: true},
	StatusRejected:   {StatusProcessing: true, StatusAccepted: true, StatusRejected: true},
	StatusCancelled:  {StatusProcessing: true, StatusAccepted: true, StatusRejected: true},
}

func CanTransition(from, to Status) bool {
	return statusNext[from][to]
}

// deliveryNext: delivered is terminal; a rider may jump straight from pending
// to delivered, and may re-announce en_route.
var deliveryNext = map[DeliveryStatus]map[DeliveryStatus]bool{
	DeliveryPending:   {DeliveryEnRoute: true, DeliveryDelivered: true},
	DeliveryEnRoute:   {DeliveryEnRoute: true, DeliveryDelivered: true},
	DeliveryDelivered: {},
}

func CanDeliveryTransition(from, to DeliveryStatus) bool {
	return deliveryNext[from][to]
}
