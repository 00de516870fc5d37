package app

// Text shown to the user. Adapters print these verbatim.
const (
	MissingFieldsMessage      = "Please fill in all required fields"
	RegistrationFailedMessage = "Registration failed"
	LoginFailedMessage        = "Login failed"
	LoadFailedMessage         = "Failed to load news. Please try again later."

	NoArticlesMessage        = "No articles available"
	NoRecommendationsMessage = "No recommendations yet"
	NoRecommendationsHint    = "Like some articles to get personalized recommendations. Showing all news shortly..."

	LikedToast       = "Liked!"
	UnlikedToast     = "Removed from likes"
	LikeFailedToast  = "Failed to like article"
	SharedToast      = "Shared!"
	ShareFailedToast = "Failed to share article"
)

func welcome(username string) string {
	return "Welcome, " + username + "!"
}

func ingestHint(newsURL string) string {
	return "Trigger ingestion with: curl -X POST " + newsURL + "/fetch"
}
