package command

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"strings"
	"time"
)

type Commit struct {
	source  port.CommitSource
	sender  port.Sender
	command string
}

func NewCommit(source port.CommitSource, sender port.Sender, command string) *Commit {
	return &Commit{source: source, sender: sender, command: command}
}

func (c *Commit) GetCommand() string {
	return c.command
}

func (c *Commit) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := newLogger(ctx, c.GetCommand(), message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := c.source.CommitMessage(ctx)
	if err != nil {
		l.Error().Err(err).Msg("error fetching commit message")
		return send(ctx, c.sender, domain.ErrorReply(message, domain.Reason(err)))
	}

	return send(ctx, c.sender,
		domain.Say(message, fmt.Sprintf("@%s try this commit message: %s", message.Sender.Nick, text)))
}

type Pug struct {
	source  port.PugSource
	sender  port.Sender
	command string
}

func NewPug(source port.PugSource, sender port.Sender, command string) *Pug {
	return &Pug{source: source, sender: sender, command: command}
}

func (p *Pug) GetCommand() string {
	return p.command
}

func (p *Pug) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := newLogger(ctx, p.GetCommand(), message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url, err := p.source.Pug(ctx)
	if err != nil {
		l.Error().Err(err).Msg("error fetching pug")
		return send(ctx, p.sender, domain.ErrorReply(message, domain.Reason(err)))
	}

	return send(ctx, p.sender, domain.Say(message, url))
}

type Deploy struct {
	source  port.ReactionSource
	sender  port.Sender
	command string
}

func NewDeploy(source port.ReactionSource, sender port.Sender, command string) *Deploy {
	return &Deploy{source: source, sender: sender, command: command}
}

func (d *Deploy) GetCommand() string {
	return d.command
}

func (d *Deploy) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := newLogger(ctx, d.GetCommand(), message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reaction, err := d.source.Reaction(ctx)
	if err != nil {
		l.Error().Err(err).Msg("error fetching reaction")
		return send(ctx, d.sender, domain.ErrorReply(message, domain.Reason(err)))
	}

	return send(ctx, d.sender,
		domain.Say(message, reaction.Title),
		domain.Say(message, reaction.ImageURL))
}

// HoldMyBeer announces one of the top posts of the week. It is not bound to a pattern but run
// by the scheduler.
type HoldMyBeer struct {
	source  port.PostSource
	sender  port.Sender
	timeout time.Duration
	intn    func(n int) int
}

func NewHoldMyBeer(source port.PostSource, sender port.Sender, timeout time.Duration) *HoldMyBeer {
	return &HoldMyBeer{source: source, sender: sender, timeout: timeout, intn: rand.IntN}
}

func (h *HoldMyBeer) Run(ctx context.Context) {
	l := newLogger(ctx, "hold_my_beer", nil)

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.announce(ctx); err != nil {
		l.Error().Err(err).Msg("error announcing post")
	}
}

func (h *HoldMyBeer) announce(ctx context.Context) error {
	posts, err := h.source.TopPosts(ctx)
	if err != nil {
		return errors.Join(err, send(ctx, h.sender, domain.ErrorReply(nil, domain.Reason(err))))
	}

	if len(posts) == 0 {
		return domain.ErrEmptyResponse
	}

	post := posts[h.intn(len(posts))]
	url := post.URL
	if strings.HasSuffix(url, ".gifv") {
		url = strings.TrimSuffix(url, "v")
	}

	return send(ctx, h.sender, domain.Say(nil, url), domain.Say(nil, post.Title))
}
