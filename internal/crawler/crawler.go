package crawler

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/halverson/reddit-user-crawler/internal/domain"
	"github.com/halverson/reddit-user-crawler/internal/report"
	"github.com/halverson/reddit-user-crawler/internal/storage"
)

// DefaultActivityLimit bounds how many recent posts and comments are fetched.
const DefaultActivityLimit = 25

// Crawler runs the fixed sequence of collection steps for one target user.
// Steps are best-effort: a failed step is recorded in the summary and the
// rest of the sequence keeps going.
type Crawler struct {
	collector domain.Collector
	writer    *storage.Writer
	logger    *slog.Logger
	limit     int

	now func() time.Time
}

func New(c domain.Collector, w *storage.Writer, logger *slog.Logger) *Crawler {
	return &Crawler{
		collector: c,
		writer:    w,
		logger:    logger,
		limit:     DefaultActivityLimit,
		now:       time.Now,
	}
}

// Run executes the whole sequence for username and returns the per-step
// results, ending with the crawl summary step itself.
func (c *Crawler) Run(ctx context.Context, username string) []domain.StepResult {
	c.logger.Info("starting crawl", "user", username)

	var results []domain.StepResult

	// 1. Public profile.
	info, infoOK := c.fetchUserInfo(ctx, username, &results)

	// 2. Recent posts and comments.
	posts, comments := c.fetchActivity(ctx, username, &results)

	// 3. Active subreddits, derived from step 2's items. Runs even when the
	// fetch failed so the file always reflects what was actually collected.
	summary := BuildActivitySummary(username, posts, comments)
	c.persist("active_subreddits_"+username, summary, len(summary.SubredditsList), &results)

	// 4 & 5. Account-level data, only meaningful with user credentials.
	c.fetchSubscriptions(ctx, &results)
	c.fetchFriends(ctx, &results)

	// 6. Activity chart for quick eyeballing.
	c.writeReport(username, summary, &results)

	// 7. Final summary aggregating everything above.
	crawlSummary := map[string]any{
		"username":                username,
		"crawl_timestamp":         c.now().Format(time.RFC3339),
		"active_subreddits_count": summary.TotalActiveSubreddits,
		"active_subreddits":       summary.SubredditsList,
		"steps":                   results,
	}
	if infoOK {
		crawlSummary["user_info"] = info
	}
	c.persist("crawl_summary_"+username, crawlSummary, len(results), &results)

	c.logger.Info("crawl complete", "user", username,
		"active_subreddits", summary.TotalActiveSubreddits)
	return results
}

func (c *Crawler) fetchUserInfo(ctx context.Context, username string, results *[]domain.StepResult) (domain.UserInfo, bool) {
	category := "user_public_info_" + username

	info, err := c.collector.UserInfo(ctx, username)
	if err != nil {
		c.fail(category, err, results)
		return domain.UserInfo{}, false
	}
	if info.CreatedUTC > 0 {
		info.AccountAgeDays = c.now().Sub(time.Unix(int64(info.CreatedUTC), 0)).Hours() / 24
	}

	c.persist(category, info, 1, results)
	return info, true
}

func (c *Crawler) fetchActivity(ctx context.Context, username string, results *[]domain.StepResult) ([]domain.Post, []domain.Comment) {
	category := "user_recent_activity_" + username

	posts, postsErr := c.collector.RecentPosts(ctx, username, c.limit)
	comments, commentsErr := c.collector.RecentComments(ctx, username, c.limit)
	fetchErr := errors.Join(postsErr, commentsErr)
	if postsErr != nil && commentsErr != nil {
		c.fail(category, fetchErr, results)
		return nil, nil
	}

	payload := map[string]any{
		"username":        username,
		"posts_count":     len(posts),
		"comments_count":  len(comments),
		"recent_posts":    posts,
		"recent_comments": comments,
	}
	if fetchErr == nil {
		c.persist(category, payload, len(posts)+len(comments), results)
		return posts, comments
	}

	// One side failed: still save what was fetched, but mark the step failed
	// so the summary reports it.
	path, err := c.writer.Write(category, payload)
	if err != nil {
		c.logger.Error("save failed", "category", category, "err", err)
		*results = append(*results, domain.StepResult{Category: category, Error: "save: " + err.Error()})
		return posts, comments
	}
	c.logger.Error("step partially failed", "category", category, "err", fetchErr, "path", path)
	*results = append(*results, domain.StepResult{
		Category: category,
		Error:    fetchErr.Error(),
		Items:    len(posts) + len(comments),
		File:     path,
	})
	return posts, comments
}

func (c *Crawler) fetchSubscriptions(ctx context.Context, results *[]domain.StepResult) {
	const category = "my_subscriptions"
	if !c.collector.Authenticated() {
		c.skip(category, results)
		return
	}

	subs, err := c.collector.MySubscriptions(ctx)
	if err != nil {
		c.fail(category, err, results)
		return
	}

	names := make([]string, 0, len(subs))
	for _, s := range subs {
		names = append(names, s.Name)
	}
	sort.Strings(names)

	payload := map[string]any{
		"total_subscriptions":    len(subs),
		"subscriptions_list":     names,
		"detailed_subscriptions": subs,
	}
	c.persist(category, payload, len(subs), results)
}

func (c *Crawler) fetchFriends(ctx context.Context, results *[]domain.StepResult) {
	const category = "my_friends"
	if !c.collector.Authenticated() {
		c.skip(category, results)
		return
	}

	friends, err := c.collector.MyFriends(ctx)
	if err != nil {
		c.fail(category, err, results)
		return
	}

	names := make([]string, 0, len(friends))
	for _, f := range friends {
		names = append(names, f.Username)
	}

	payload := map[string]any{
		"total_friends":    len(friends),
		"friends_list":     names,
		"detailed_friends": friends,
	}
	c.persist(category, payload, len(friends), results)
}

func (c *Crawler) writeReport(username string, summary domain.ActivitySummary, results *[]domain.StepResult) {
	category := "activity_report_" + username

	path, err := report.Write(c.writer.Dir, username, summary)
	if err != nil {
		c.logger.Error("report failed", "category", category, "err", err)
		*results = append(*results, domain.StepResult{Category: category, Error: err.Error()})
		return
	}
	c.logger.Info("report saved", "category", category, "path", path)
	*results = append(*results, domain.StepResult{Category: category, Succeeded: true, Items: 1, File: path})
}

// persist writes the payload for category and appends the step outcome. A
// filesystem failure is reported separately from fetch failures so the
// operator can tell a bad disk from a bad API call.
func (c *Crawler) persist(category string, payload any, items int, results *[]domain.StepResult) {
	path, err := c.writer.Write(category, payload)
	if err != nil {
		c.logger.Error("save failed", "category", category, "err", err)
		*results = append(*results, domain.StepResult{Category: category, Error: "save: " + err.Error(), Items: items})
		return
	}
	c.logger.Info("step complete", "category", category, "items", items, "path", path)
	*results = append(*results, domain.StepResult{Category: category, Succeeded: true, Items: items, File: path})
}

func (c *Crawler) fail(category string, err error, results *[]domain.StepResult) {
	c.logger.Error("step failed", "category", category, "err", err)
	*results = append(*results, domain.StepResult{Category: category, Error: err.Error()})
}

func (c *Crawler) skip(category string, results *[]domain.StepResult) {
	c.logger.Info("step skipped, not authenticated", "category", category)
	*results = append(*results, domain.StepResult{Category: category, Skipped: true})
}

// BuildActivitySummary counts posts and comments per subreddit over one pass
// of the fetched items.
func BuildActivitySummary(username string, posts []domain.Post, comments []domain.Comment) domain.ActivitySummary {
	detailed := make(map[string]domain.SubredditActivity)

	for _, p := range posts {
		a := detailed[p.Subreddit]
		a.Posts++
		detailed[p.Subreddit] = a
	}
	for _, cm := range comments {
		a := detailed[cm.Subreddit]
		a.Comments++
		detailed[cm.Subreddit] = a
	}

	names := make([]string, 0, len(detailed))
	for name := range detailed {
		names = append(names, name)
	}
	sort.Strings(names)

	return domain.ActivitySummary{
		Username:              username,
		TotalActiveSubreddits: len(names),
		SubredditsList:        names,
		DetailedActivity:      detailed,
	}
}
