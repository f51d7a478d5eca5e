package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/vartanbeno/go-reddit/v2/reddit"
)

// RedditSource pulls hot post titles from configured subreddits as
// trending topic candidates. Read-only API, no credentials needed.
type RedditSource struct {
	client     *reddit.Client
	subreddits []string
}

func NewRedditSource(subreddits []string) (*RedditSource, error) {
	client, err := reddit.NewReadonlyClient()
	if err != nil {
		return nil, fmt.Errorf("reddit client: %w", err)
	}
	return &RedditSource{client: client, subreddits: subreddits}, nil
}

// Trending returns usable post titles. Titles that are too short or too
// long to make a speakable topic line are dropped.
func (r *RedditSource) Trending(ctx context.Context) ([]string, error) {
	var topics []string
	for _, sub := range r.subreddits {
		posts, _, err := r.client.Subreddit.HotPosts(ctx, sub, &reddit.ListOptions{Limit: 10})
		if err != nil {
			return topics, fmt.Errorf("hot posts for r/%s: %w", sub, err)
		}
		for _, post := range posts {
			title := strings.TrimSpace(post.Title)
			if len(title) < 20 || len(title) > 90 {
				continue
			}
			topics = append(topics, title)
		}
	}
	return topics, nil
}
