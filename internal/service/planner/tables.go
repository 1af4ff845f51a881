package planner

import (
	"cadence/internal/domain/content"
)

// DefaultPlatforms are planned when the caller names none
var DefaultPlatforms = []string{"instagram", "tiktok", "linkedin", "twitter"}

const (
	daysPerPlan = 7
	// instagram gets a second slot every day
	instagramPiecesPerDay = 2
	defaultPiecesPerDay   = 1
	// platforms with fewer pieces than this in a week are underrepresented
	minWeeklyPieces = 7

	maxRepurposingOpportunities = 5
	longPostThreshold           = 200
)

var contentTypesByPlatform = map[string][]string{
	"instagram": {content.TypePost, content.TypeStory, content.TypeReel, content.TypeCarousel},
	"tiktok":    {content.TypeVideo, content.TypeLive},
	"linkedin":  {content.TypePost, content.TypeCarousel, content.TypeVideo},
	"twitter":   {content.TypePost, content.TypeVideo},
	"youtube":   {content.TypeVideo, content.TypeLive},
}

var expectedTypesByPlatform = map[string][]string{
	"instagram": {content.TypePost, content.TypeStory, content.TypeReel, content.TypeCarousel},
	"tiktok":    {content.TypeVideo, content.TypeLive},
	"linkedin":  {content.TypePost, content.TypeCarousel, content.TypeVideo},
	"twitter":   {content.TypePost, content.TypeVideo},
}

var mediaRequirements = map[string]content.MediaRequirements{
	content.TypePost:     {Type: "image", Specifications: "1080x1080px, high quality, brand colors"},
	content.TypeStory:    {Type: "image", Specifications: "1080x1920px, vertical format, engaging visuals"},
	content.TypeReel:     {Type: "video", Specifications: "1080x1920px, 15-30 seconds, trending audio"},
	content.TypeVideo:    {Type: "video", Specifications: "1920x1080px or 1080x1920px, engaging thumbnail"},
	content.TypeCarousel: {Type: "carousel", Specifications: "2-10 slides, 1080x1080px each, cohesive design"},
	content.TypeLive:     {Type: "video", Specifications: "Real-time streaming, good lighting and audio"},
}

var platformRequirements = map[string]string{
	"instagram": "Visual-first, engaging captions, relevant hashtags, stories for behind-the-scenes",
	"tiktok":    "Short-form video, trending sounds, quick hooks, vertical format",
	"linkedin":  "Professional tone, industry insights, thought leadership, networking focus",
	"twitter":   "Concise messaging, real-time engagement, trending topics, thread format for longer content",
	"youtube":   "Long-form content, SEO-optimized titles, detailed descriptions, engaging thumbnails",
}

var videoAdaptations = []string{
	"Extract key quotes for Instagram posts",
	"Create carousel slides from main points",
	"Generate Twitter thread from script",
	"Create podcast episode from audio",
}

var longPostAdaptations = []string{
	"Create short-form video script",
	"Break into Twitter thread",
	"Design infographic",
	"Expand into blog post",
}

var sustainabilityKeywords = []string{
	"sustainable", "eco-friendly", "green", "renewable", "recycled",
	"carbon-neutral", "biodegradable", "organic", "ethical", "fair-trade",
}

// ContentTypes returns the allowed content types for platform in slot order
func ContentTypes(platform string) []string {
	if types, ok := contentTypesByPlatform[platform]; ok {
		return types
	}
	return []string{content.TypePost}
}

// MediaRequirementsFor returns the media needs of a content type, defaulting to a post
func MediaRequirementsFor(contentType string) content.MediaRequirements {
	if req, ok := mediaRequirements[contentType]; ok {
		return req
	}
	return mediaRequirements[content.TypePost]
}

// PlatformRequirements describes what a platform expects from adapted content
func PlatformRequirements(platform string) string {
	if req, ok := platformRequirements[platform]; ok {
		return req
	}
	return "Platform-appropriate formatting and tone"
}

// PiecesPerDay is the number of slots a platform gets each day
func PiecesPerDay(platform string) int {
	if platform == "instagram" {
		return instagramPiecesPerDay
	}
	return defaultPiecesPerDay
}
