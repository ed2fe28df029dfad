package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"officebot/internal/adapters/web"
	"officebot/internal/core/domain"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

const (
	DefaultCommitURL   = "http://whatthecommit.com/"
	DefaultReactionURL = "http://devopsreactions.tumblr.com/random"
)

// Scraper pulls single fields out of HTML joke pages.
type Scraper struct {
	client      *http.Client
	commitURL   string
	reactionURL string
}

func New(client *http.Client, commitURL, reactionURL string) *Scraper {
	return &Scraper{
		client:      client,
		commitURL:   commitURL,
		reactionURL: reactionURL,
	}
}

func (s *Scraper) CommitMessage(ctx context.Context) (string, error) {
	doc, err := s.fetch(ctx, s.commitURL)
	if err != nil {
		return "", fmt.Errorf("error fetching commit message: %w", err)
	}

	text := strings.TrimSpace(doc.Find("#content p").First().Text())
	if text == "" {
		return "", fmt.Errorf("no commit message on page: %w", domain.ErrEmptyResponse)
	}

	log.Debug().Str("commit", text).Msg("scraped commit message")

	return text, nil
}

func (s *Scraper) Reaction(ctx context.Context) (domain.Reaction, error) {
	doc, err := s.fetch(ctx, s.reactionURL)
	if err != nil {
		return domain.Reaction{}, fmt.Errorf("error fetching reaction: %w", err)
	}

	reaction := domain.Reaction{
		Title: strings.TrimSpace(doc.Find(".post_title").First().Text()),
	}
	reaction.ImageURL, _ = doc.Find(".item img").First().Attr("src")

	if reaction.Title == "" && reaction.ImageURL == "" {
		return domain.Reaction{}, fmt.Errorf("no reaction on page: %w", domain.ErrEmptyResponse)
	}

	log.Debug().Interface("reaction", reaction).Msg("scraped reaction")

	return reaction, nil
}

func (s *Scraper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := web.Get(ctx, s.client, url, nil)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing html: %w", err)
	}

	return doc, nil
}
