package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/halverson/reddit-user-crawler/internal/domain"
	"golang.org/x/time/rate"
)

// PublicClient reads the unauthenticated www.reddit.com JSON endpoints.
// It can serve the public steps only; account-level reads need the API client.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	baseURL    string
}

type redditAboutResponse struct {
	Data struct {
		Name         string  `json:"name"`
		CreatedUTC   float64 `json:"created_utc"`
		CommentKarma int     `json:"comment_karma"`
		LinkKarma    int     `json:"link_karma"`
		Verified     bool    `json:"verified"`
		IsEmployee   bool    `json:"is_employee"`
		IsSuspended  bool    `json:"is_suspended"`
	} `json:"data"`
}

type redditListingResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				LinkTitle   string  `json:"link_title"`
				Subreddit   string  `json:"subreddit"`
				Permalink   string  `json:"permalink"`
				Body        string  `json:"body"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func NewPublicClient(userAgent string) (*PublicClient, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("a user agent is required for public mode")
	}
	return &PublicClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Public JSON Limit: 1 req / 2 seconds (Stricter)
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		userAgent: userAgent,
		baseURL:   "https://www.reddit.com",
	}, nil
}

func (pc *PublicClient) Authenticated() bool { return false }

func (pc *PublicClient) get(ctx context.Context, url string, out any) error {
	if err := pc.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", pc.userAgent)

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit public access status: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (pc *PublicClient) UserInfo(ctx context.Context, username string) (domain.UserInfo, error) {
	var about redditAboutResponse
	url := fmt.Sprintf("%s/user/%s/about.json", pc.baseURL, username)
	if err := pc.get(ctx, url, &about); err != nil {
		return domain.UserInfo{}, fmt.Errorf("fetching user %s: %w", username, err)
	}

	return domain.UserInfo{
		Username:     about.Data.Name,
		CreatedUTC:   about.Data.CreatedUTC,
		CommentKarma: about.Data.CommentKarma,
		LinkKarma:    about.Data.LinkKarma,
		IsVerified:   about.Data.Verified,
		IsEmployee:   about.Data.IsEmployee,
		IsSuspended:  about.Data.IsSuspended,
	}, nil
}

func (pc *PublicClient) RecentPosts(ctx context.Context, username string, limit int) ([]domain.Post, error) {
	var listing redditListingResponse
	url := fmt.Sprintf("%s/user/%s/submitted.json?limit=%d&sort=new", pc.baseURL, username, limit)
	if err := pc.get(ctx, url, &listing); err != nil {
		return nil, fmt.Errorf("fetching posts for %s: %w", username, err)
	}

	var posts []domain.Post
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, domain.Post{
			Title:       d.Title,
			Subreddit:   d.Subreddit,
			CreatedUTC:  d.CreatedUTC,
			Score:       d.Score,
			URL:         "https://reddit.com" + d.Permalink,
			NumComments: d.NumComments,
		})
	}
	return posts, nil
}

func (pc *PublicClient) RecentComments(ctx context.Context, username string, limit int) ([]domain.Comment, error) {
	var listing redditListingResponse
	url := fmt.Sprintf("%s/user/%s/comments.json?limit=%d&sort=new", pc.baseURL, username, limit)
	if err := pc.get(ctx, url, &listing); err != nil {
		return nil, fmt.Errorf("fetching comments for %s: %w", username, err)
	}

	var comments []domain.Comment
	for _, child := range listing.Data.Children {
		d := child.Data
		comments = append(comments, domain.Comment{
			Body:            truncate(d.Body, maxCommentBody),
			Subreddit:       d.Subreddit,
			CreatedUTC:      d.CreatedUTC,
			Score:           d.Score,
			SubmissionTitle: d.LinkTitle,
		})
	}
	return comments, nil
}

func (pc *PublicClient) MySubscriptions(ctx context.Context) ([]domain.SubredditInfo, error) {
	return nil, domain.ErrAuthRequired
}

func (pc *PublicClient) MyFriends(ctx context.Context) ([]domain.Friend, error) {
	return nil, domain.ErrAuthRequired
}
