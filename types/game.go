package types

// Game is a single catalog entry. Field names match the catalog data file and
// the backup format so both load unchanged.
type Game struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IframeURL   string `json:"iframeUrl"`          // Remote page embedded as-is
	HTMLCode    string `json:"htmlCode,omitempty"` // Inline document, rendered in isolation
	Thumbnail   string `json:"thumbnail,omitempty"`
	Category    string `json:"category,omitempty"`
	IsCustom    bool   `json:"isCustom,omitempty"` // Created or imported on this device
}

// Content kinds accepted when adding a custom game.
const (
	KindURL  = "url"
	KindHTML = "html"
)

// NewGame is the payload the frontend sends to add a custom game.
type NewGame struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"type"`
	Content     string `json:"content"`
}
