package entity

// ThrottleState prevents duplicate notifications within the same polling
// granularity. One record exists per active flight, stored as a JSON blob
// in the settings store and deleted when the flight is archived.
type ThrottleState struct {
	Buckets           map[string]int `json:"buckets,omitempty"`
	BeforeFlight3h    bool           `json:"beforeFlight3h,omitempty"`
	OnlineCheckInOpen bool           `json:"onlineCheckInOpen,omitempty"`
	BaggageBelt       bool           `json:"baggageBelt,omitempty"`
}

// Bucket returns the last-queried minute bucket for a polling window,
// or -1 when the window has never fired.
func (t *ThrottleState) Bucket(window string) int {
	if v, ok := t.Buckets[window]; ok {
		return v
	}
	return -1
}

// SetBucket records the minute bucket a polling window last fired at.
func (t *ThrottleState) SetBucket(window string, minutes int) {
	if t.Buckets == nil {
		t.Buckets = make(map[string]int)
	}
	t.Buckets[window] = minutes
}
