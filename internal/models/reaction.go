package models

// ReactionContent is GitHub's ReactionContent enum
type ReactionContent string

const (
	ReactionThumbsUp   ReactionContent = "THUMBS_UP"
	ReactionThumbsDown ReactionContent = "THUMBS_DOWN"
	ReactionLaugh      ReactionContent = "LAUGH"
	ReactionHooray     ReactionContent = "HOORAY"
	ReactionConfused   ReactionContent = "CONFUSED"
	ReactionHeart      ReactionContent = "HEART"
	ReactionRocket     ReactionContent = "ROCKET"
	ReactionEyes       ReactionContent = "EYES"
)

// NoReactions is displayed for an issue without reactions
const NoReactions = "no reactions"

var reactionEmoji = map[ReactionContent]string{
	ReactionThumbsUp:   "👍",
	ReactionThumbsDown: "👎",
	ReactionLaugh:      "😄",
	ReactionHooray:     "🎉",
	ReactionConfused:   "😕",
	ReactionHeart:      "❤️",
	ReactionRocket:     "🚀",
	ReactionEyes:       "👀",
}

// Emoji returns the emoji for the reaction content.
// Unknown values are returned verbatim.
func (c ReactionContent) Emoji() string {
	if e, ok := reactionEmoji[c]; ok {
		return e
	}
	return string(c)
}
