package entity

// NotificationChannel selects the delivery priority on the push gateway.
type NotificationChannel string

const (
	ChannelCommon NotificationChannel = "common"
	ChannelFlight NotificationChannel = "flight"
	ChannelUrgent NotificationChannel = "urgent"
)

// Notification is a message handed to the push gateway. Delivery is
// fire-and-forget; failures are not surfaced back to the engine.
type Notification struct {
	Channel NotificationChannel `json:"channel"`
	Title   string              `json:"title"`
	Body    string              `json:"body"`
	Link    string              `json:"link,omitempty"`
}
