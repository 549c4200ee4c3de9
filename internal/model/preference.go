package model

// PreferenceAction is the user's reaction to an activity card.
type PreferenceAction string

const (
	ActionFavorite PreferenceAction = "favorite"
	ActionUpvote   PreferenceAction = "upvote"
	ActionDownvote PreferenceAction = "downvote"
)

func (a PreferenceAction) Valid() bool {
	switch a {
	case ActionFavorite, ActionUpvote, ActionDownvote:
		return true
	}
	return false
}
