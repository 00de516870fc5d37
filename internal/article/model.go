package article

// Article is a single news article as served by the news and user services.
// Server order is preserved everywhere; nothing here enforces uniqueness.
type Article struct {
	ArticleID            string      `json:"article_id"`
	Title                string      `json:"title"`
	Content              string      `json:"content"`
	Category             string      `json:"category"`
	Source               string      `json:"source"`
	ImageURL             string      `json:"image_url"`
	URL                  string      `json:"url,omitempty"`
	Author               string      `json:"author,omitempty"`
	PublishDate          PublishDate `json:"publish_date"`
	RecommendationReason string      `json:"recommendation_reason,omitempty"`
	IsLiked              bool        `json:"is_liked,omitempty"`
}

// Feed is the body of GET /news. Articles is a pointer so a missing or null
// field can be told apart from an empty list.
type Feed struct {
	Articles *[]Article `json:"articles"`
	Count    int        `json:"count,omitempty"`
}

// Recommendations is the body of GET /users/me/recommendations.
type Recommendations struct {
	Articles *[]Article `json:"articles"`
	BasedOn  []string   `json:"based_on"`
}
