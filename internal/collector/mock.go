package collector

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/halverson/reddit-user-crawler/internal/domain"
)

// MockClient implements domain.Collector but returns fake data
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (mc *MockClient) Authenticated() bool { return true }

func (mc *MockClient) UserInfo(ctx context.Context, username string) (domain.UserInfo, error) {
	return domain.UserInfo{
		Username:     username,
		CreatedUTC:   float64(time.Now().AddDate(-3, 0, 0).Unix()),
		CommentKarma: rand.Intn(5000),
		LinkKarma:    rand.Intn(5000),
		IsVerified:   true,
	}, nil
}

func (mc *MockClient) RecentPosts(ctx context.Context, username string, limit int) ([]domain.Post, error) {
	subs := []string{"golang", "programming", "AskReddit"}
	var posts []domain.Post
	for i := 0; i < limit; i++ {
		posts = append(posts, domain.Post{
			Title:       fmt.Sprintf("Simulated post #%d by %s", i, username),
			Subreddit:   subs[i%len(subs)],
			CreatedUTC:  float64(time.Now().Unix()),
			Score:       rand.Intn(500),
			URL:         "http://localhost/mock-url",
			NumComments: rand.Intn(50),
		})
	}
	return posts, nil
}

func (mc *MockClient) RecentComments(ctx context.Context, username string, limit int) ([]domain.Comment, error) {
	subs := []string{"golang", "news"}
	var comments []domain.Comment
	for i := 0; i < limit; i++ {
		comments = append(comments, domain.Comment{
			Body:            fmt.Sprintf("Simulated comment #%d", i),
			Subreddit:       subs[i%len(subs)],
			CreatedUTC:      float64(time.Now().Unix()),
			Score:           rand.Intn(100),
			SubmissionTitle: "Simulated thread",
		})
	}
	return comments, nil
}

func (mc *MockClient) MySubscriptions(ctx context.Context) ([]domain.SubredditInfo, error) {
	return []domain.SubredditInfo{
		{Name: "golang", Title: "The Go Programming Language", Subscribers: 250000},
		{Name: "programming", Title: "Programming", Subscribers: 6000000},
	}, nil
}

func (mc *MockClient) MyFriends(ctx context.Context) ([]domain.Friend, error) {
	return []domain.Friend{
		{Username: "simulated_friend", DateAdded: float64(time.Now().Unix())},
	}, nil
}
