package main

import (
	"context"
	"net/http"
	"officebot/internal/adapters/door"
	"officebot/internal/adapters/feed"
	"officebot/internal/adapters/handler"
	"officebot/internal/adapters/linode"
	"officebot/internal/adapters/matrix"
	"officebot/internal/adapters/mopidy"
	"officebot/internal/adapters/render"
	"officebot/internal/adapters/scraper"
	"officebot/internal/adapters/sender"
	"officebot/internal/adapters/store"
	"officebot/internal/config"
	"officebot/internal/core/domain"
	"officebot/internal/core/domain/command"
	"officebot/internal/core/port"
	"officebot/internal/core/service"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const telegramWorkers = 4

func main() {
	log.Info().Msg("starting officebot...")

	log.Info().Msg("reading config file...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	var logLevel zerolog.Level

	switch cfg.Bot.LogLevel {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.DefaultContextLogger = &log.Logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	kv, closeStore := openStore(cfg.Store.Path)
	defer closeStore()

	switch cfg.Bot.Transport {
	case config.TransportMatrix:
		runMatrix(ctx, cfg, kv)
	default:
		runTelegram(ctx, cfg, kv)
	}

	log.Info().Msg("bot stopped")
}

func openStore(path string) (port.KeyValueStore, func()) {
	if path == "" {
		log.Warn().Msg("no store path configured, the linode list is kept in memory")
		return store.NewMemory(), func() {}
	}

	s, err := store.NewSQLite(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed opening store")
	}

	return s, func() {
		if err := s.Close(); err != nil {
			log.Err(err).Msg("failed closing store")
		}
	}
}

func runTelegram(ctx context.Context, cfg *config.Config, kv port.KeyValueStore) {
	b, err := bot.New(cfg.Telegram.BotToken,
		bot.WithDefaultHandler(noOpHandler),
		bot.WithWorkers(telegramWorkers))
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		log.Panic().Err(err).Msg("failed fetching telegram bot user")
	}

	s := sender.NewTelegram(b, cfg.Telegram.AnnounceChatID)
	dispatcher := setup(ctx, cfg, kv, s)

	telegramHandler := handler.NewTelegram(dispatcher, me.Username, cfg.Bot.Name)
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, telegramHandler.Handle)

	log.Info().Str("username", me.Username).Msg("bot listening")
	b.Start(ctx)
}

func runMatrix(ctx context.Context, cfg *config.Config, kv port.KeyValueStore) {
	client, err := matrix.New(matrix.Config{
		Homeserver:  cfg.Matrix.Homeserver,
		UserID:      cfg.Matrix.UserID,
		AccessToken: cfg.Matrix.AccessToken,
		Rooms:       cfg.Matrix.Rooms,
	}, kv)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing matrix client")
	}

	s := sender.NewMatrix(client, cfg.Matrix.AnnounceRoom)
	dispatcher := setup(ctx, cfg, kv, s)

	matrixHandler := handler.NewMatrix(dispatcher, cfg.Matrix.UserID, cfg.Bot.Name, cfg.Matrix.Rooms)

	log.Info().Str("userId", cfg.Matrix.UserID).Msg("bot listening")
	if err := client.Run(ctx, matrixHandler.Handle); err != nil {
		log.Error().Err(err).Msg("matrix client stopped")
	}
}

// setup builds the route table and the scheduled trigger around the transport's sender.
func setup(ctx context.Context, cfg *config.Config, kv port.KeyValueStore, s port.Sender) port.Dispatcher {
	httpClient := &http.Client{Timeout: cfg.Handler.Timeout}

	renderer, err := render.New()
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing templates")
	}

	sites := scraper.New(httpClient, scraper.DefaultCommitURL, scraper.DefaultReactionURL)
	feeds := feed.New(httpClient, feed.DefaultPugURL, feed.DefaultPostsURL)
	player := mopidy.NewClient(httpClient, cfg.Plugins.AudioURL)
	provider := linode.NewClient(httpClient, cfg.Linode.APIURL, cfg.Plugins.LinodeAPIKey)
	cache := service.NewVMCache(kv)

	registry := &command.Registry{}

	// addressed commands go first, the first matching route wins
	registry.MustRegister(command.Route{
		Pattern: "help", Mode: domain.RespondTo,
		Command: command.NewHelp(registry, s, "help"),
	})
	registry.MustRegister(command.Route{
		Pattern: "debug", Mode: domain.RespondTo, AdminOnly: true,
		Description: "debug: runtime statistics",
		Command:     command.NewDebug(s, "debug"),
	})
	registry.MustRegister(command.Route{
		Pattern: "op|open the door", Mode: domain.RespondTo,
		Description:      "op, open the door: open the office door",
		RequiredSettings: []domain.Setting{domain.DoorURL},
		Command:          command.NewDoor(door.NewWebhook(httpClient, cfg.Plugins.DoorURL), s, "open_the_door"),
	})
	registry.MustRegister(command.Route{
		Pattern: "stop", Mode: domain.RespondTo,
		Description:      "stop: stop the music",
		RequiredSettings: []domain.Setting{domain.AudioURL},
		Command:          command.NewStop(player, s, "stop_the_beat"),
	})
	registry.MustRegister(command.Route{
		Pattern: "play|play (?P<url>.*)", Mode: domain.RespondTo,
		Description:      "play [url]: play a stream, some radio if no url is given",
		RequiredSettings: []domain.Setting{domain.AudioURL},
		Command:          command.NewPlay(player, s, cfg.Audio.Streams, "play_the_beat"),
	})
	registry.MustRegister(command.Route{
		Pattern: "linode status", Mode: domain.RespondTo,
		Description:      "linode status: get a list of available linodes statuses",
		RequiredSettings: []domain.Setting{domain.LinodeAPIKey},
		Command:          command.NewLinodeStatus(provider, cache, renderer, s, "linode_status"),
	})
	registry.MustRegister(command.Route{
		Pattern: `linode reboot (?P<label>[-\w]+)`, Mode: domain.RespondTo,
		Description:      "linode reboot <label>: reboot a linode for a given label",
		RequiredSettings: []domain.Setting{domain.LinodeAPIKey},
		Command:          command.NewLinodeReboot(provider, cache, s, "linode_reboot"),
	})
	registry.MustRegister(command.Route{
		Pattern: `linode create (?P<label>[-\w]+)`, Mode: domain.RespondTo, AdminOnly: true,
		Description:      "linode create <label>: create a linode with a given label",
		RequiredSettings: []domain.Setting{domain.LinodeAPIKey},
		Command:          command.NewLinodeCreate(provider, renderer, s, "linode_create"),
	})
	registry.MustRegister(command.Route{
		Pattern: `linode dns-add (?P<full_domain>[a-z0-9]+\.[a-z0-9]+\.[a-z0-9]+) ` +
			`(?P<ip>\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`,
		Mode:             domain.RespondTo,
		Description:      "linode dns-add <domain> <ip>: add a DNS record for a given domain and IP",
		RequiredSettings: []domain.Setting{domain.LinodeAPIKey},
		Command:          command.NewDNSAdd(provider, s, "linode_dns_add"),
	})
	registry.MustRegister(command.Route{
		Pattern:          `linode dns-remove (?P<full_domain>[a-z0-9]+\.[a-z0-9]+\.[a-z0-9]+)`,
		Mode:             domain.RespondTo,
		Description:      "linode dns-remove <domain>: remove a DNS record for a given domain",
		RequiredSettings: []domain.Setting{domain.LinodeAPIKey},
		Command:          command.NewDNSRemove(provider, s, "linode_dns_remove"),
	})

	registry.MustRegister(command.Route{
		Pattern: "commit", Mode: domain.Hear,
		Command: command.NewCommit(sites, s, "talk_on_commit"),
	})
	registry.MustRegister(command.Route{
		Pattern: "pug", Mode: domain.Hear,
		Command: command.NewPug(feeds, s, "talk_on_pug"),
	})
	registry.MustRegister(command.Route{
		Pattern: "deploy", Mode: domain.Hear,
		Command: command.NewDeploy(sites, s, "talk_on_deploy"),
	})

	holdMyBeer := command.NewHoldMyBeer(feeds, s, cfg.Handler.Timeout)
	scheduler, err := service.NewRandomScheduler("hold_my_beer", service.Window{
		StartHour:    cfg.Schedule.StartHour,
		EndHour:      cfg.Schedule.EndHour,
		TimesPerDay:  cfg.Schedule.TimesPerDay,
		WeekdaysOnly: cfg.Schedule.WeekdaysOnly,
	}, holdMyBeer.Run)
	if err != nil {
		log.Panic().Err(err).Msg("invalid schedule in config")
	}
	go scheduler.Run(ctx)

	auth := service.NewAuthorizer(cfg.Bot.Admins, s)

	return service.NewDispatcher(registry, cfg, auth, s, cfg.Handler.Timeout)
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
