package messages

// Action tags identify what just happened in a turn. The orchestrator only
// ever emits values from this closed set.
const (
	ActionAskDate           = "ask_date"
	ActionAskTime           = "ask_time"
	ActionAskParty          = "ask_party"
	ActionAskModification   = "ask_modification"
	ActionAvailabilityFound = "availability_found"
	ActionNoAvailability    = "no_availability"
	ActionTimeUnavailable   = "time_unavailable"
	ActionBookingCreated    = "booking_created"
	ActionBookingModified   = "booking_modified"
	ActionBookingCancelled  = "booking_cancelled"
	ActionBookingInfoShown  = "booking_info_shown"
	ActionNoBooking         = "no_booking"
	ActionValidationError   = "validation_error"
	ActionAPIError          = "api_error"
	ActionNetworkError      = "network_error"
	ActionError             = "error"
	ActionHelpShown         = "help_shown"
	ActionReset             = "reset"
	ActionDefault           = "default"
)

// Reply is the outbound payload for a chat turn.
type Reply struct {
	Reply  string `json:"reply"`
	Action string `json:"action"`
	Data   any    `json:"data,omitempty"` // Raw booking API response, when one was made
	HTML   string `json:"html,omitempty"` // Optional UI affordance fragment
}

// NewReply creates a plain reply with the given action tag.
func NewReply(action, text string) *Reply {
	return &Reply{Reply: text, Action: action}
}

// NewDataReply creates a reply carrying the raw API response payload.
func NewDataReply(action, text string, data any) *Reply {
	return &Reply{Reply: text, Action: action, Data: data}
}

// NewValidationError creates a validation failure reply.
func NewValidationError(text string) *Reply {
	return &Reply{Reply: "❌ " + text, Action: ActionValidationError}
}

// NewAPIError creates a reply for a non-2xx booking API response.
func NewAPIError(text string) *Reply {
	return &Reply{Reply: "❌ " + text, Action: ActionAPIError}
}

// NewNetworkError creates a reply for a transport failure.
func NewNetworkError(text string) *Reply {
	return &Reply{Reply: "❌ " + text, Action: ActionNetworkError}
}
