package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/halverson/reddit-user-crawler/internal/domain"
	"github.com/loganintech/go-reddit/v2/reddit"
	"golang.org/x/time/rate"
)

// maxCommentBody keeps stored comment bodies short, matching the files the
// crawler writes for quick inspection.
const maxCommentBody = 200

type APIClient struct {
	client   *reddit.Client
	limiter  *rate.Limiter
	userAuth bool
}

func NewAPIClient(c domain.Credentials) (*APIClient, error) {
	creds := reddit.Credentials{
		ID:       c.ClientID,
		Secret:   c.ClientSecret,
		Username: c.Username,
		Password: c.Password,
	}

	client, err := reddit.NewClient(creds, reddit.WithUserAgent(c.UserAgent))
	if err != nil {
		return nil, fmt.Errorf("constructing reddit client: %w", err)
	}

	// API Rate Limit: ~60 reqs/min (safe buffer)
	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)

	return &APIClient{client: client, limiter: limiter, userAuth: c.HasUserAuth()}, nil
}

func (ac *APIClient) Authenticated() bool { return ac.userAuth }

func (ac *APIClient) UserInfo(ctx context.Context, username string) (domain.UserInfo, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return domain.UserInfo{}, err
	}

	user, _, err := ac.client.User.Get(ctx, username)
	if err != nil {
		return domain.UserInfo{}, fmt.Errorf("fetching user %s: %w", username, err)
	}

	info := domain.UserInfo{
		Username:     user.Name,
		CommentKarma: user.CommentKarma,
		LinkKarma:    user.PostKarma,
		IsVerified:   user.HasVerifiedEmail,
		IsEmployee:   user.IsEmployee,
		IsSuspended:  user.IsSuspended,
	}
	if user.Created != nil {
		info.CreatedUTC = float64(user.Created.Time.Unix())
	}
	return info, nil
}

func (ac *APIClient) RecentPosts(ctx context.Context, username string, limit int) ([]domain.Post, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	posts, _, err := ac.client.User.PostsOf(ctx, username, &reddit.ListUserOverviewOptions{
		ListOptions: reddit.ListOptions{Limit: limit},
		Sort:        "new",
	})
	if err != nil {
		return nil, fmt.Errorf("fetching posts for %s: %w", username, err)
	}

	var result []domain.Post
	for _, p := range posts {
		item := domain.Post{
			Title:       p.Title,
			Subreddit:   p.SubredditName,
			Score:       p.Score,
			URL:         "https://reddit.com" + p.Permalink,
			NumComments: p.NumberOfComments,
		}
		if p.Created != nil {
			item.CreatedUTC = float64(p.Created.Time.Unix())
		}
		result = append(result, item)
	}
	return result, nil
}

func (ac *APIClient) RecentComments(ctx context.Context, username string, limit int) ([]domain.Comment, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	comments, _, err := ac.client.User.CommentsOf(ctx, username, &reddit.ListUserOverviewOptions{
		ListOptions: reddit.ListOptions{Limit: limit},
		Sort:        "new",
	})
	if err != nil {
		return nil, fmt.Errorf("fetching comments for %s: %w", username, err)
	}

	var result []domain.Comment
	for _, c := range comments {
		item := domain.Comment{
			Body:            truncate(c.Body, maxCommentBody),
			Subreddit:       c.SubredditName,
			Score:           c.Score,
			SubmissionTitle: c.PostTitle,
		}
		if c.Created != nil {
			item.CreatedUTC = float64(c.Created.Time.Unix())
		}
		result = append(result, item)
	}
	return result, nil
}

func (ac *APIClient) MySubscriptions(ctx context.Context) ([]domain.SubredditInfo, error) {
	if !ac.userAuth {
		return nil, domain.ErrAuthRequired
	}
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	subs, _, err := ac.client.Subreddit.Subscribed(ctx, &reddit.ListSubredditOptions{
		ListOptions: reddit.ListOptions{Limit: 100},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching subscriptions: %w", err)
	}

	var result []domain.SubredditInfo
	for _, s := range subs {
		item := domain.SubredditInfo{
			Name:        s.Name,
			Title:       s.Title,
			Subscribers: s.Subscribers,
			Description: truncate(s.Description, maxCommentBody),
		}
		if s.Created != nil {
			item.CreatedUTC = float64(s.Created.Time.Unix())
		}
		result = append(result, item)
	}
	return result, nil
}

func (ac *APIClient) MyFriends(ctx context.Context) ([]domain.Friend, error) {
	if !ac.userAuth {
		return nil, domain.ErrAuthRequired
	}
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	friends, _, err := ac.client.Account.Friends(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching friends: %w", err)
	}

	var result []domain.Friend
	for _, f := range friends {
		item := domain.Friend{Username: f.User}
		if f.Created != nil {
			item.DateAdded = float64(f.Created.Time.Unix())
		}
		result = append(result, item)
	}
	return result, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
