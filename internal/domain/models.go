package domain

import (
	"context"
	"errors"
)

// ErrAuthRequired is returned by collectors that cannot serve account-level
// reads (subscriptions, friends) because no user credentials were supplied.
var ErrAuthRequired = errors.New("operation requires username/password authentication")

// Credentials holds everything needed to talk to the Reddit API.
// Username and Password are optional; without them only public reads work.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	UserAgent    string `json:"user_agent"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

// HasUserAuth reports whether account-level reads are possible.
func (c Credentials) HasUserAuth() bool {
	return c.Username != "" && c.Password != ""
}

// UserInfo is the public profile of a Reddit account.
type UserInfo struct {
	Username       string  `json:"username"`
	CreatedUTC     float64 `json:"created_utc"`
	CommentKarma   int     `json:"comment_karma"`
	LinkKarma      int     `json:"link_karma"`
	IsVerified     bool    `json:"is_verified"`
	IsEmployee     bool    `json:"is_employee"`
	IsSuspended    bool    `json:"is_suspended"`
	AccountAgeDays float64 `json:"account_age_days,omitempty"`
}

// Post is a submission authored by the target user.
type Post struct {
	Title       string  `json:"title"`
	Subreddit   string  `json:"subreddit"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	URL         string  `json:"url"`
	NumComments int     `json:"num_comments"`
}

// Comment is a comment authored by the target user. Body is truncated
// by the collector so the saved files stay small.
type Comment struct {
	Body            string  `json:"body"`
	Subreddit       string  `json:"subreddit"`
	CreatedUTC      float64 `json:"created_utc"`
	Score           int     `json:"score"`
	SubmissionTitle string  `json:"submission_title"`
}

// SubredditInfo describes one subscribed subreddit.
type SubredditInfo struct {
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Subscribers int     `json:"subscribers"`
	CreatedUTC  float64 `json:"created_utc"`
	Description string  `json:"description"`
}

// Friend is a followed user on the authenticated account.
type Friend struct {
	Username  string  `json:"username"`
	DateAdded float64 `json:"date_added"`
}

// SubredditActivity counts posts and comments in one subreddit.
type SubredditActivity struct {
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
}

// ActivitySummary maps where a user has recently posted or commented.
type ActivitySummary struct {
	Username              string                       `json:"username"`
	TotalActiveSubreddits int                          `json:"total_active_subreddits"`
	SubredditsList        []string                     `json:"subreddits_list"`
	DetailedActivity      map[string]SubredditActivity `json:"detailed_activity"`
}

// StepResult records the outcome of one crawl step for the final summary.
type StepResult struct {
	Category  string `json:"category"`
	Succeeded bool   `json:"succeeded"`
	Skipped   bool   `json:"skipped,omitempty"`
	Error     string `json:"error,omitempty"`
	Items     int    `json:"items"`
	File      string `json:"file,omitempty"`
}

// Envelope is the uniform shape of every JSON file written to disk.
type Envelope struct {
	Timestamp string `json:"timestamp"`
	DataType  string `json:"data_type"`
	Data      any    `json:"data"`
}

// Collector defines the interface for data fetching. It exposes only the
// five reads the crawl sequence needs, so implementations stay swappable.
type Collector interface {
	UserInfo(ctx context.Context, username string) (UserInfo, error)
	RecentPosts(ctx context.Context, username string, limit int) ([]Post, error)
	RecentComments(ctx context.Context, username string, limit int) ([]Comment, error)
	MySubscriptions(ctx context.Context) ([]SubredditInfo, error)
	MyFriends(ctx context.Context) ([]Friend, error)
	// Authenticated reports whether account-level reads can succeed.
	Authenticated() bool
}
