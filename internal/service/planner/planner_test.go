package planner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadence/internal/adapter/provider"
	"cadence/internal/domain/content"
	"cadence/internal/domain/llm"
	"cadence/internal/domain/timing"
	"cadence/internal/domain/trend"
	llmService "cadence/internal/service/llm"
)

type funcExecutor struct {
	mu    sync.Mutex
	calls int
	fn    func(task llm.Task) (string, error)
}

func (e *funcExecutor) Execute(_ context.Context, task llm.Task) (string, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	return e.fn(task)
}

func cannedExecutor() *funcExecutor {
	return &funcExecutor{fn: func(task llm.Task) (string, error) {
		if task.Complexity == llm.ComplexityLow {
			return "#ai #GreenTech, #eco", nil
		}
		return "Launch day\nOur sustainable, recycled packaging ships today.", nil
	}}
}

var testVoice = content.BrandVoice{
	Tone:           "friendly",
	Values:         []string{"sustainability", "quality"},
	AvoidTopics:    []string{"politics"},
	KeyMessages:    []string{"ships today"},
	TargetAudience: "makers",
}

func TestGenerateWeeklyPlan_PieceCounts(t *testing.T) {
	p := NewPlanner(cannedExecutor(), nil, Config{MaxConcurrency: 4}, nil)

	plan, err := p.GenerateWeeklyPlan(context.Background(), nil, nil, testVoice, []string{"instagram", "tiktok", "youtube"})
	require.NoError(t, err)

	assert.Equal(t, 28, plan.TotalPieces)
	assert.Len(t, plan.ContentPieces, plan.TotalPieces)
	assert.NotEmpty(t, plan.ID)

	perPlatform := map[string]int{}
	for _, piece := range plan.ContentPieces {
		perPlatform[piece.Platform]++
	}
	assert.Equal(t, map[string]int{"instagram": 14, "tiktok": 7, "youtube": 7}, perPlatform)

	first := plan.ContentPieces[:4]
	assert.Equal(t, "instagram-day1-0", first[0].ID)
	assert.Equal(t, "instagram-day1-1", first[1].ID)
	assert.Equal(t, "tiktok-day1-0", first[2].ID)
	assert.Equal(t, "youtube-day1-0", first[3].ID)
	assert.Equal(t, "instagram-day2-0", plan.ContentPieces[4].ID)
	assert.Equal(t, 7, plan.ContentPieces[27].Day)
}

func TestGenerateWeeklyPlan_PieceFields(t *testing.T) {
	trends := []trend.ScoredTrend{
		{Topic: "Reels Remix", Platforms: []string{"instagram"}},
		{Topic: "B2B Memes", Platforms: []string{"linkedin", "instagram"}},
		{Topic: "Too Many", Platforms: []string{"instagram"}},
	}
	timings := []timing.Recommendation{{Platform: "instagram", OptimalTime: "7:00 PM", ExpectedEngagement: 98}}
	exec := cannedExecutor()
	p := NewPlanner(exec, nil, Config{MaxConcurrency: 2}, nil)

	plan, err := p.GenerateWeeklyPlan(context.Background(), trends, timings, testVoice, []string{"instagram", "twitter"})
	require.NoError(t, err)
	assert.Equal(t, 2*plan.TotalPieces, exec.calls)

	ig0, ig1, tw := plan.ContentPieces[0], plan.ContentPieces[1], plan.ContentPieces[2]

	assert.Equal(t, content.TypePost, ig0.ContentType)
	assert.Equal(t, content.TypeStory, ig1.ContentType)
	assert.Equal(t, "Reels Remix", ig0.TrendTopic)
	assert.Equal(t, "B2B Memes", ig1.TrendTopic)
	assert.Equal(t, "7:00 PM", ig0.ScheduledTime)
	assert.Equal(t, 98, ig0.EstimatedEngagement)
	assert.Equal(t, "Launch day", ig0.Title)
	assert.Equal(t, "Our sustainable, recycled packaging ships today.", ig0.Caption)
	assert.Equal(t, []string{"GreenTech", "eco"}, ig0.Hashtags)
	assert.Equal(t, "image", ig0.MediaRequirements.Type)
	assert.InDelta(t, 0.65, ig0.BrandAlignment, 1e-9)
	require.NotNil(t, ig0.SustainabilityScore)
	assert.InDelta(t, 0.2, *ig0.SustainabilityScore, 1e-9)

	assert.Equal(t, "twitter-day1-0", tw.ID)
	assert.Empty(t, tw.TrendTopic)
	assert.Equal(t, "12:00 PM", tw.ScheduledTime)
	assert.Equal(t, 50, tw.EstimatedEngagement)
}

func TestGenerateWeeklyPlan_DefaultPlatformsAndGaps(t *testing.T) {
	p := NewPlanner(cannedExecutor(), nil, Config{MaxConcurrency: 8}, nil)

	plan, err := p.GenerateWeeklyPlan(context.Background(), nil, nil, testVoice, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPlatforms, plan.Platforms)
	assert.Equal(t, 14+7+7+7, plan.TotalPieces)
	assert.Equal(t, []string{
		"instagram: reel, carousel",
		"tiktok: live",
		"linkedin: carousel, video",
		"twitter: video",
	}, plan.GapAnalysis.MissingContentTypes)
	assert.Empty(t, plan.GapAnalysis.UnderrepresentedPlatforms)
	assert.Equal(t, "Add instagram: reel, carousel", plan.GapAnalysis.Suggestions[0])
	assert.Len(t, plan.GapAnalysis.Suggestions, 4)

	// seven tiktok videos come first
	require.Len(t, plan.RepurposingOpportunities, 5)
	assert.Equal(t, videoAdaptations, plan.RepurposingOpportunities[0].Adaptations)
}

// countingGenerator returns a fresh reply on every call
type countingGenerator struct {
	calls atomic.Int64
}

func (g *countingGenerator) Generate(_ context.Context, prompt string, _ llm.Provider, _ llm.GenerateOptions) (string, error) {
	n := g.calls.Add(1)
	if strings.Contains(prompt, "hashtags") {
		return fmt.Sprintf("#tag%d #weekly", n), nil
	}
	return fmt.Sprintf("Title %d\nCaption number %d", n, n), nil
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func (c *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func TestGenerateWeeklyPlan_CachedGenerationVariesByDay(t *testing.T) {
	gen := &countingGenerator{}
	cache := &mapCache{entries: map[string]string{}}
	exec := llmService.NewExecutor(
		llmService.NewSelector(llmService.DefaultRoutingTable()),
		provider.NewCachedGenerator(gen, cache, time.Hour, nil),
		llmService.ExecutorConfig{CallTimeout: time.Second},
		nil,
	)
	p := NewPlanner(exec, nil, Config{MaxConcurrency: 4}, nil)

	plan, err := p.GenerateWeeklyPlan(context.Background(), nil, nil, testVoice, []string{"twitter"})
	require.NoError(t, err)
	require.Len(t, plan.ContentPieces, 7)

	captions := map[string]bool{}
	tags := map[string]bool{}
	for _, piece := range plan.ContentPieces {
		captions[piece.Caption] = true
		tags[strings.Join(piece.Hashtags, " ")] = true
	}
	assert.Len(t, captions, 7)
	assert.Len(t, tags, 7)
	assert.Equal(t, int64(14), gen.calls.Load())

	// the same week again is served from the cache
	again, err := p.GenerateWeeklyPlan(context.Background(), nil, nil, testVoice, []string{"twitter"})
	require.NoError(t, err)
	assert.Equal(t, int64(14), gen.calls.Load())
	for i := range plan.ContentPieces {
		assert.Equal(t, plan.ContentPieces[i].Caption, again.ContentPieces[i].Caption)
	}
}

var contentPrompt = regexp.MustCompile(`^Generate (\S+) content for (\S+) about "([^"]*)" for day (\d+) of the week \(slot (\d+)\)`)

func TestGenerateWeeklyPlan_KeepsSlotOrder(t *testing.T) {
	var started atomic.Int64
	exec := &funcExecutor{fn: func(task llm.Task) (string, error) {
		if task.Complexity == llm.ComplexityLow {
			return "#ordered", nil
		}
		m := contentPrompt.FindStringSubmatch(task.Context)
		if m == nil {
			return "", fmt.Errorf("unexpected prompt %q", task.Context)
		}
		// earlier slots finish later
		if wait := 30 - started.Add(1); wait > 0 {
			time.Sleep(time.Duration(wait) * time.Millisecond)
		}
		slotNum, _ := strconv.Atoi(m[5])
		return fmt.Sprintf("%s-day%s-%d %s\n%s", m[2], m[4], slotNum-1, m[1], m[3]), nil
	}}
	trends := []trend.ScoredTrend{
		{Topic: "Reels Remix", Platforms: []string{"instagram"}},
		{Topic: "Duet Chains", Platforms: []string{"tiktok", "instagram"}},
		{Topic: "Hot Takes", Platforms: []string{"twitter"}},
	}
	p := NewPlanner(exec, nil, Config{MaxConcurrency: 4}, nil)

	plan, err := p.GenerateWeeklyPlan(context.Background(), trends, nil, testVoice, []string{"instagram", "tiktok", "twitter"})
	require.NoError(t, err)
	require.Len(t, plan.ContentPieces, 28)

	i := 0
	for day := 1; day <= 7; day++ {
		for _, platform := range []string{"instagram", "tiktok", "twitter"} {
			for slot := 0; slot < PiecesPerDay(platform); slot++ {
				piece := plan.ContentPieces[i]
				i++
				assert.Equal(t, fmt.Sprintf("%s-day%d-%d", platform, day, slot), piece.ID)
				assert.Equal(t, day, piece.Day)
				assert.Equal(t, platform, piece.Platform)
				assert.Equal(t, piece.ID+" "+piece.ContentType, piece.Title)
				topic := piece.TrendTopic
				if topic == "" {
					topic = generalTopic
				}
				assert.Equal(t, topic, piece.Caption)
			}
		}
	}
}

func TestGenerateWeeklyPlan_ContentFailureFailsPlan(t *testing.T) {
	exec := &funcExecutor{fn: func(task llm.Task) (string, error) {
		return "", &llm.AllProvidersFailedError{TaskType: task.Type}
	}}
	p := NewPlanner(exec, nil, Config{MaxConcurrency: 2}, nil)

	_, err := p.GenerateWeeklyPlan(context.Background(), nil, nil, testVoice, []string{"twitter"})
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrAllProvidersFailed)
}

func TestGenerateWeeklyPlan_HashtagFailureDegrades(t *testing.T) {
	exec := &funcExecutor{fn: func(task llm.Task) (string, error) {
		if task.Complexity == llm.ComplexityLow {
			return "", errors.New("quota")
		}
		return "Title\nBody", nil
	}}
	p := NewPlanner(exec, nil, Config{MaxConcurrency: 2}, nil)

	plan, err := p.GenerateWeeklyPlan(context.Background(), nil, nil, testVoice, []string{"linkedin"})
	require.NoError(t, err)
	for _, piece := range plan.ContentPieces {
		assert.NotNil(t, piece.Hashtags)
		assert.Empty(t, piece.Hashtags)
	}
}

func TestAdaptForPlatform(t *testing.T) {
	var prompt string
	exec := &funcExecutor{fn: func(task llm.Task) (string, error) {
		if task.Complexity == llm.ComplexityLow {
			return "#thread #launch", nil
		}
		prompt = task.Context
		return "Thread title\nShort and concise.", nil
	}}
	p := NewPlanner(exec, nil, Config{}, nil)
	p.now = func() time.Time { return time.UnixMilli(1700000000000) }

	src := content.Piece{ID: "instagram-day1-0", Day: 1, Platform: "instagram", ContentType: content.TypeReel, Title: "Old", Caption: "Old caption", TrendTopic: "X"}
	got, err := p.AdaptForPlatform(context.Background(), src, "twitter", testVoice)
	require.NoError(t, err)

	assert.Equal(t, "twitter-adapted-1700000000000", got.ID)
	assert.Equal(t, "twitter", got.Platform)
	assert.Equal(t, "Thread title", got.Title)
	assert.Equal(t, "Short and concise.", got.Caption)
	assert.Equal(t, []string{"thread", "launch"}, got.Hashtags)
	assert.Equal(t, "video", got.MediaRequirements.Type)
	assert.Equal(t, 1, got.Day)
	assert.Contains(t, prompt, PlatformRequirements("twitter"))
}

func TestBrandAlignment_Clamped(t *testing.T) {
	avoid := make([]string, 10)
	for i := range avoid {
		avoid[i] = strings.Repeat("x", i+1)
	}
	assert.Equal(t, 0.0, BrandAlignment("xxxxxxxxxx", content.BrandVoice{AvoidTopics: avoid}))

	voice := content.BrandVoice{
		Values:      []string{"a", "b", "c"},
		KeyMessages: []string{"d", "e", "f"},
	}
	assert.Equal(t, 1.0, BrandAlignment("abcdef", voice))
	assert.Equal(t, 0.5, BrandAlignment("", voice))
	assert.InDelta(t, 0.6, BrandAlignment("We value QUALITY", content.BrandVoice{Values: []string{"quality"}}), 1e-9)
}

func TestSustainabilityScore(t *testing.T) {
	assert.Equal(t, 0.0, SustainabilityScore("plain"))
	assert.InDelta(t, 0.3, SustainabilityScore("Organic, ETHICAL and fair-trade"), 1e-9)
	all := strings.Join(sustainabilityKeywords, " ")
	assert.Equal(t, 1.0, SustainabilityScore(all+" "+all))
}

func TestParseHashtags(t *testing.T) {
	got := ParseHashtags("#ai #GreenTech, #eco-friendly #go #sustainability #a #growth\n#climate #future #extra #more")
	assert.Equal(t, []string{"GreenTech", "eco-friendly", "sustainability", "growth", "climate", "future", "extra", "more"}, got)
	assert.Empty(t, ParseHashtags(""))
	assert.Empty(t, ParseHashtags("# , #ab"))
}

func TestParseGenerated(t *testing.T) {
	title, caption := ParseGenerated("\n  Big news \n\nline one\nline two\n")
	assert.Equal(t, "Big news", title)
	assert.Equal(t, "line one\nline two", caption)

	title, caption = ParseGenerated("only line")
	assert.Equal(t, "only line", title)
	assert.Equal(t, "only line", caption)

	title, caption = ParseGenerated("")
	assert.Equal(t, defaultTitle, title)
	assert.Equal(t, "", caption)
}

func TestAnalyzeGaps_Underrepresented(t *testing.T) {
	pieces := []content.Piece{
		{Platform: "tiktok", ContentType: content.TypeVideo},
		{Platform: "tiktok", ContentType: content.TypeLive},
	}
	gaps := AnalyzeGaps(pieces, []string{"tiktok", "youtube"})
	assert.Empty(t, gaps.MissingContentTypes)
	assert.Equal(t, []string{"tiktok", "youtube"}, gaps.UnderrepresentedPlatforms)
	assert.Equal(t, []string{"Increase tiktok content frequency", "Increase youtube content frequency"}, gaps.Suggestions)
}

func TestFindRepurposingOpportunities(t *testing.T) {
	long := strings.Repeat("y", 201)
	pieces := []content.Piece{
		{Title: "post-1", ContentType: content.TypePost, Caption: long},
		{Title: "post-short", ContentType: content.TypePost, Caption: "short"},
		{Title: "video-1", ContentType: content.TypeVideo},
		{Title: "post-2", ContentType: content.TypePost, Caption: long},
	}

	got := FindRepurposingOpportunities(pieces)
	require.Len(t, got, 3)
	assert.Equal(t, "video-1", got[0].SourceContent)
	assert.Equal(t, "post-1", got[1].SourceContent)
	assert.Equal(t, "post-2", got[2].SourceContent)
	assert.Equal(t, longPostAdaptations, got[1].Adaptations)

	many := make([]content.Piece, 0, 9)
	for i := 0; i < 7; i++ {
		many = append(many, content.Piece{Title: "v", ContentType: content.TypeVideo})
	}
	many = append(many, content.Piece{Title: "p", ContentType: content.TypePost, Caption: long})
	got = FindRepurposingOpportunities(many)
	assert.Len(t, got, 5)
	for _, o := range got {
		assert.Equal(t, "v", o.SourceContent)
	}
}

func TestFindRepurposingOpportunities_CountsCharacters(t *testing.T) {
	pieces := []content.Piece{
		// 201 characters of three bytes each
		{Title: "cjk", ContentType: content.TypePost, Caption: strings.Repeat("日", 201)},
		// 150 emoji: 600 bytes, but only 150 characters
		{Title: "emoji", ContentType: content.TypePost, Caption: strings.Repeat("🌱", 150)},
		{Title: "edge", ContentType: content.TypePost, Caption: strings.Repeat("é", 200)},
	}

	got := FindRepurposingOpportunities(pieces)
	require.Len(t, got, 1)
	assert.Equal(t, "cjk", got[0].SourceContent)
}
