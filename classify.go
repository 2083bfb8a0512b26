package skillet

// URLType categorizes an input URL by its likely content.
type URLType string

// URL types recognized by the classifier.
const (
	URLTypeHomepage URLType = "homepage"
	URLTypeCategory URLType = "category"
	URLTypeRecipe   URLType = "recipe"
	URLTypeUnknown  URLType = "unknown"
	URLTypeError    URLType = "error"
)

// Action is the recommended next step for a classified URL.
type Action string

// Recommended actions.
const (
	// ActionDiscover routes the URL through multi-strategy discovery
	// followed by batch extraction.
	ActionDiscover Action = "discover"

	// ActionExtract routes the URL directly to single-page extraction.
	// This is the safe default: prefer attempting extraction over refusing.
	ActionExtract Action = "extract"
)

// Classification is the result of classifying a URL. Computed fresh per
// call and never persisted.
type Classification struct {
	Type   URLType
	Action Action
	Reason string
}
