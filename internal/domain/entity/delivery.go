package entity

// DeliveryState is the persisted discriminator of a DeliveryOutcome
type DeliveryState string

// Delivery states
const (
	DeliveryNotAttempted DeliveryState = "NOT_ATTEMPTED"
	DeliveryDelivered    DeliveryState = "DELIVERED"
	DeliveryFailed       DeliveryState = "FAILED"
)

// DeliveryOutcome is the result of the latest fulfilment attempt.
// It is one of NotAttempted, Delivered or Failed.
type DeliveryOutcome interface {
	State() DeliveryState
	deliveryOutcome()
}

// NotAttempted means no delivery call has been made yet
type NotAttempted struct{}

// Delivered carries the provider's reference for a successful top-up
type Delivered struct {
	ProviderRef string
}

// Failed carries the reason the last attempt failed
type Failed struct {
	Reason string
}

func (NotAttempted) State() DeliveryState { return DeliveryNotAttempted }
func (Delivered) State() DeliveryState    { return DeliveryDelivered }
func (Failed) State() DeliveryState       { return DeliveryFailed }

func (NotAttempted) deliveryOutcome() {}
func (Delivered) deliveryOutcome()    {}
func (Failed) deliveryOutcome()       {}

// RestoreDeliveryOutcome rebuilds an outcome from its stored columns
func RestoreDeliveryOutcome(state DeliveryState, providerRef, reason string) DeliveryOutcome {
	switch state {
	case DeliveryDelivered:
		return Delivered{ProviderRef: providerRef}
	case DeliveryFailed:
		return Failed{Reason: reason}
	default:
		return NotAttempted{}
	}
}

// DeliveryColumns flattens an outcome into (state, providerRef, reason)
func DeliveryColumns(outcome DeliveryOutcome) (DeliveryState, string, string) {
	switch o := outcome.(type) {
	case Delivered:
		return DeliveryDelivered, o.ProviderRef, ""
	case Failed:
		return DeliveryFailed, "", o.Reason
	default:
		return DeliveryNotAttempted, "", ""
	}
}
