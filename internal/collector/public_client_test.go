package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/halverson/reddit-user-crawler/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestPublicClient(t *testing.T, handler http.Handler) *PublicClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	pc, err := NewPublicClient("TestAgent/1.0")
	require.NoError(t, err)
	pc.baseURL = srv.URL
	pc.limiter = rate.NewLimiter(rate.Inf, 1)
	return pc
}

func TestPublicClientUserInfo(t *testing.T) {
	pc := newTestPublicClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/spez/about.json", r.URL.Path)
		assert.Equal(t, "TestAgent/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"kind":"t2","data":{"name":"spez","created_utc":1118030400,"comment_karma":100,"link_karma":200,"verified":true}}`))
	}))

	info, err := pc.UserInfo(context.Background(), "spez")
	require.NoError(t, err)
	assert.Equal(t, "spez", info.Username)
	assert.Equal(t, float64(1118030400), info.CreatedUTC)
	assert.Equal(t, 100, info.CommentKarma)
	assert.Equal(t, 200, info.LinkKarma)
	assert.True(t, info.IsVerified)
}

func TestPublicClientRecentPosts(t *testing.T) {
	pc := newTestPublicClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/spez/submitted.json", r.URL.Path)
		w.Write([]byte(`{"data":{"children":[
			{"data":{"title":"hello","subreddit":"golang","permalink":"/r/golang/1","score":5,"num_comments":2,"created_utc":1118030400}}
		]}}`))
	}))

	posts, err := pc.RecentPosts(context.Background(), "spez", 25)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Title)
	assert.Equal(t, "golang", posts[0].Subreddit)
	assert.Equal(t, "https://reddit.com/r/golang/1", posts[0].URL)
	assert.Equal(t, 2, posts[0].NumComments)
}

func TestPublicClientRecentCommentsTruncatesBody(t *testing.T) {
	long := strings.Repeat("a", 300)
	pc := newTestPublicClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/spez/comments.json", r.URL.Path)
		w.Write([]byte(`{"data":{"children":[
			{"data":{"body":"` + long + `","subreddit":"news","link_title":"thread","score":1,"created_utc":1118030400}}
		]}}`))
	}))

	comments, err := pc.RecentComments(context.Background(), "spez", 25)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Len(t, []rune(comments[0].Body), maxCommentBody+3)
	assert.Equal(t, "thread", comments[0].SubmissionTitle)
}

func TestPublicClientErrorStatus(t *testing.T) {
	pc := newTestPublicClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	_, err := pc.UserInfo(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestPublicClientAccountReadsNeedAuth(t *testing.T) {
	pc, err := NewPublicClient("TestAgent/1.0")
	require.NoError(t, err)
	assert.False(t, pc.Authenticated())

	_, err = pc.MySubscriptions(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	_, err = pc.MyFriends(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestPublicClientRequiresUserAgent(t *testing.T) {
	_, err := NewPublicClient("")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 200))
	got := truncate(strings.Repeat("a", 250), 200)
	assert.Equal(t, strings.Repeat("a", 200)+"...", got)

	// Rune-safe: multibyte input must not be split mid-character.
	trimmed := truncate(strings.Repeat("é", 210), 200)
	assert.Equal(t, strings.Repeat("é", 200)+"...", trimmed)
}
