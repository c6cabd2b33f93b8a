package types

// DeliveryMode is derived from installation state and never stored.
type DeliveryMode string

const (
	DeliveryModePush DeliveryMode = "push"
	DeliveryModePoll DeliveryMode = "poll"
)

// Transition is the delivery mode change announced to a subscriber.
type Transition string

const (
	// TransitionEnabled means POLL -> PUSH
	TransitionEnabled Transition = "enabled"
	// TransitionDisabled means PUSH -> POLL
	TransitionDisabled Transition = "disabled"
)

func (x Transition) Mode() DeliveryMode {
	if x == TransitionEnabled {
		return DeliveryModePush
	}
	return DeliveryModePoll
}
