package access

var restrictedActions = []Action{
	ActionShareItems,
	ActionRentOrSell,
	ActionUploadMedia,
	ActionCreateListings,
	ActionRespondToJobs,
}

// RestrictedActions returns the fixed list of gated actions. The slice is a copy.
func RestrictedActions() []Action {
	out := make([]Action, len(restrictedActions))
	copy(out, restrictedActions)
	return out
}

// Restricts reports whether action is part of the gated list.
func Restricts(action Action) bool {
	for _, a := range restrictedActions {
		if a == action {
			return true
		}
	}
	return false
}
