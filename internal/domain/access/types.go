package access

// Action is a feature background users lose without a live subscription.
type Action string

const (
	ActionShareItems     Action = "share_items"
	ActionRentOrSell     Action = "rent_or_sell_items"
	ActionUploadMedia    Action = "upload_media"
	ActionCreateListings Action = "create_listings"
	ActionRespondToJobs  Action = "respond_to_jobs"
)

// GateResult is what the subscription gate tells the client.
type GateResult struct {
	HasSubscription   bool     `json:"has_subscription"`
	CanAccessFeatures bool     `json:"can_access_features"`
	Message           string   `json:"message"`
	RestrictedActions []Action `json:"restricted_actions"`
}
