package port

import (
	"context"
	"officebot/internal/core/domain"
)

type CommitSource interface {
	// CommitMessage fetches a random joke commit message.
	CommitMessage(ctx context.Context) (string, error)
}

type ReactionSource interface {
	// Reaction fetches a random devops reaction, a title and an image.
	Reaction(ctx context.Context) (domain.Reaction, error)
}

type PugSource interface {
	Pug(ctx context.Context) (string, error)
}

type PostSource interface {
	// TopPosts lists the posts of the week the scheduled trigger picks from.
	TopPosts(ctx context.Context) ([]domain.Post, error)
}
