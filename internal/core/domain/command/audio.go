package command

import (
	"context"
	"fmt"
	"math/rand/v2"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"strings"
	"time"
)

// DefaultStreams are the radio streams play picks from when no URL is given.
var DefaultStreams = []string{
	"http://www.977music.com/itunes/90s.pls",
	"http://www.977music.com/itunes/mix.pls",
	"http://www.977music.com/itunes/jazz.pls",
	"http://www.977music.com/977hicountry.pls",
	"http://www.977music.com/itunes/alternative.pls",
	"http://www.977music.com/itunes/oldies.pls",
	"http://www.977music.com/itunes/80s.pls",
	"http://www.977music.com/itunes/classicrock.pls",
	"http://www.977music.com/itunes/hitz.pls",
	"http://nprdmp.ic.llnwd.net/stream/nprdmp_live01_mp3",
	"http://icecast.omroep.nl/3fm-bb-mp3",
	"http://vprbbc.streamguys.net:8000/vprbbc24.mp3",
	"http://somafm.com/groovesalad.pls",
	"http://stream.kissfm.de/kissfm/mp3-128/internetradio/",
	"http://pr320.pinguinradio.com/listen.pls",
}

type uriPrefix struct {
	marker string
	prefix string
}

// uriPrefixes maps host markers to the scheme of the player backend serving them. First match wins.
var uriPrefixes = []uriPrefix{
	{marker: "youtube.com", prefix: "yt:"},
	{marker: "youtu.be", prefix: "yt:"},
	{marker: "grooveshark.com", prefix: "gs:"},
	{marker: "soundcloud.com", prefix: "sc:"},
}

// TrackURI prefixes url with the backend scheme of the first host marker it contains.
func TrackURI(url string) string {
	for _, p := range uriPrefixes {
		if strings.Contains(url, p.marker) {
			return p.prefix + url
		}
	}

	return url
}

// silence stops the playback and empties the tracklist, answering the first failure itself.
func silence(ctx context.Context, player port.Player, sender port.Sender, message *domain.Message) (bool, error) {
	l := newLogger(ctx, "silence", message)

	if err := player.Stop(ctx); err != nil {
		l.Error().Err(err).Msg("error stopping playback")
		return false, send(ctx, sender, domain.ErrorReply(message, "I could not stop the playback"))
	}

	if err := player.ClearTracklist(ctx); err != nil {
		l.Error().Err(err).Msg("error clearing tracklist")
		return false, send(ctx, sender, domain.ErrorReply(message, "I could not clear the tracklist"))
	}

	return true, nil
}

type Stop struct {
	player  port.Player
	sender  port.Sender
	command string
}

func NewStop(player port.Player, sender port.Sender, command string) *Stop {
	return &Stop{player: player, sender: sender, command: command}
}

func (s *Stop) GetCommand() string {
	return s.command
}

func (s *Stop) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := newLogger(ctx, s.GetCommand(), message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if ok, err := silence(ctx, s.player, s.sender, message); !ok {
		return err
	}

	return send(ctx, s.sender, domain.ReplyTo(message, "Silence please!"))
}

type Play struct {
	player  port.Player
	sender  port.Sender
	streams []string
	intn    func(n int) int
	command string
}

// NewPlay falls back to DefaultStreams when streams is empty.
func NewPlay(player port.Player, sender port.Sender, streams []string, command string) *Play {
	if len(streams) == 0 {
		streams = DefaultStreams
	}

	return &Play{player: player, sender: sender, streams: streams, intn: rand.IntN, command: command}
}

func (p *Play) GetCommand() string {
	return p.command
}

func (p *Play) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := newLogger(ctx, p.GetCommand(), message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if ok, err := silence(ctx, p.player, p.sender, message); !ok {
		return err
	}

	url := strings.TrimSpace(message.Arg("url"))
	if url == "" {
		url = p.streams[p.intn(len(p.streams))]
	}
	uri := TrackURI(url)

	l.Debug().Str("uri", uri).Msg("adding track")
	name, err := p.player.AddTrack(ctx, uri)
	if err != nil {
		l.Error().Err(err).Msg("error adding track")
		return send(ctx, p.sender, domain.ErrorReply(message, "I could not add the stream"))
	}

	if name == "" {
		name = uri
	}

	if err := p.player.Play(ctx); err != nil {
		l.Error().Err(err).Msg("error starting playback")
		return send(ctx, p.sender, domain.ErrorReply(message, "I could not play the stream"))
	}

	return send(ctx, p.sender,
		domain.ReplyTo(message, fmt.Sprintf("\"%s\" will be playing for you %s", name, nick(message))))
}
