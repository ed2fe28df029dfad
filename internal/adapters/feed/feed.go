package feed

import (
	"context"
	"fmt"
	"net/http"
	"officebot/internal/adapters/web"
	"officebot/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	DefaultPugURL   = "http://pugme.herokuapp.com/random"
	DefaultPostsURL = "http://www.reddit.com/r/holdmybeer/top/.json?sort=top&t=week"
)

// Feed reads JSON endpoints that hand out pictures and links.
type Feed struct {
	client   *http.Client
	pugURL   string
	postsURL string
}

func New(client *http.Client, pugURL, postsURL string) *Feed {
	return &Feed{
		client:   client,
		pugURL:   pugURL,
		postsURL: postsURL,
	}
}

func (f *Feed) Pug(ctx context.Context) (string, error) {
	body, err := web.Get(ctx, f.client, f.pugURL, nil)
	if err != nil {
		return "", fmt.Errorf("error fetching pug: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("invalid pug response: %s", body)
	}

	pug := gjson.GetBytes(body, "pug").String()
	if pug == "" {
		return "", fmt.Errorf("no pug in response: %w", domain.ErrEmptyResponse)
	}

	return pug, nil
}

func (f *Feed) TopPosts(ctx context.Context) ([]domain.Post, error) {
	// the listing endpoint rejects Go's default user agent
	header := http.Header{"User-Agent": []string{web.BrowserUserAgent}}

	body, err := web.Get(ctx, f.client, f.postsURL, header)
	if err != nil {
		return nil, fmt.Errorf("error fetching posts: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid listing response: %s", body)
	}

	var posts []domain.Post
	gjson.GetBytes(body, "data.children").ForEach(func(_, child gjson.Result) bool {
		post := domain.Post{
			Title: child.Get("data.title").String(),
			URL:   child.Get("data.url").String(),
		}
		if post.URL != "" {
			posts = append(posts, post)
		}
		return true
	})

	log.Debug().Int("posts", len(posts)).Msg("fetched top posts")

	if len(posts) == 0 {
		return nil, fmt.Errorf("no posts in listing: %w", domain.ErrEmptyResponse)
	}

	return posts, nil
}
