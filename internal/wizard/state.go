package wizard

// State is the wizard's position in the creation flow. Transitions are
// strictly forward through Advance, with Reset jumping back to the start.
type State int

const (
	StateEnteringTitle State = iota
	StateEnteringURL
	StateEnteringDescription
	StateChoosingLocation
	StateChoosingFeatures
	StateReady
)

func (s State) String() string {
	switch s {
	case StateEnteringTitle:
		return "entering-title"
	case StateEnteringURL:
		return "entering-url"
	case StateEnteringDescription:
		return "entering-description"
	case StateChoosingLocation:
		return "choosing-location"
	case StateChoosingFeatures:
		return "choosing-features"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// next returns the state that follows s. The location step only
// participates when the wizard revision requires one.
func (s State) next(withLocation bool) (State, bool) {
	switch s {
	case StateEnteringTitle:
		return StateEnteringURL, true
	case StateEnteringURL:
		return StateEnteringDescription, true
	case StateEnteringDescription:
		if withLocation {
			return StateChoosingLocation, true
		}
		return StateChoosingFeatures, true
	case StateChoosingLocation:
		return StateChoosingFeatures, true
	case StateChoosingFeatures:
		return StateReady, true
	}
	return s, false
}
