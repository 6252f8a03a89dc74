package shipment

// ShipmentStatus is the lifecycle status of a shipment.
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "pending"
	StatusPickedUp       ShipmentStatus = "picked_up"
	StatusInTransit      ShipmentStatus = "in_transit"
	StatusOutForDelivery ShipmentStatus = "out_for_delivery"
	StatusDelivered      ShipmentStatus = "delivered"
	StatusCancelled      ShipmentStatus = "cancelled"
	StatusReturned       ShipmentStatus = "returned"
)

// ServiceTier is the delivery speed class a sender pays for.
type ServiceTier string

const (
	TierStandard  ServiceTier = "standard"
	TierExpress   ServiceTier = "express"
	TierOvernight ServiceTier = "overnight"
)

// PaymentStatus is the shipment-level payment state.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Helper methods for ShipmentStatus
func (ss ShipmentStatus) String() string {
	return string(ss)
}

// IsValid reports whether the status is a member of the fixed enumeration.
// There is no ordering between statuses: any valid status may follow any
// other. Only membership is checked.
func (ss ShipmentStatus) IsValid() bool {
	switch ss {
	case StatusPending, StatusPickedUp, StatusInTransit, StatusOutForDelivery,
		StatusDelivered, StatusCancelled, StatusReturned:
		return true
	default:
		return false
	}
}

// IsTerminalLike returns true for statuses that usually end a shipment's life.
func (ss ShipmentStatus) IsTerminalLike() bool {
	return ss == StatusDelivered || ss == StatusCancelled || ss == StatusReturned
}

// HumanLabel returns the display wording used in notifications.
func (ss ShipmentStatus) HumanLabel() string {
	switch ss {
	case StatusPending:
		return "Pending"
	case StatusPickedUp:
		return "Picked up"
	case StatusInTransit:
		return "In transit"
	case StatusOutForDelivery:
		return "Out for delivery"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	case StatusReturned:
		return "Returned"
	default:
		return string(ss)
	}
}

// GetAllShipmentStatuses returns all valid shipment statuses
func GetAllShipmentStatuses() []ShipmentStatus {
	return []ShipmentStatus{
		StatusPending,
		StatusPickedUp,
		StatusInTransit,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
		StatusReturned,
	}
}

func (st ServiceTier) String() string {
	return string(st)
}

func (st ServiceTier) IsValid() bool {
	switch st {
	case TierStandard, TierExpress, TierOvernight:
		return true
	default:
		return false
	}
}

func (ps PaymentStatus) IsValid() bool {
	switch ps {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	default:
		return false
	}
}
