package model

// Article is a normalized news article collected from one of the upstream
// sources. Instances are created once per fetch and never mutated.
type Article struct {
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	URL           string   `json:"url"`
	PublishedDate string   `json:"published_date"`
	Source        string   `json:"source"`
	Category      string   `json:"category"`
	Content       string   `json:"content,omitempty"`
	Author        string   `json:"author,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Sentiment     *float64 `json:"sentiment_score,omitempty"`
}

// Valid reports whether the article carries the minimum required fields
// after normalization.
func (a Article) Valid() bool {
	return a.Title != "" && a.Summary != ""
}
