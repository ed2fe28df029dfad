package port

import "context"

type Door interface {
	Open(ctx context.Context) error
}

type Player interface {
	Stop(ctx context.Context) error
	ClearTracklist(ctx context.Context) error
	// AddTrack queues a track URI and returns the name the backend resolved for it, "" if none.
	AddTrack(ctx context.Context, uri string) (string, error)
	Play(ctx context.Context) error
}
