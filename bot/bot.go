package bot

import (
	"context"
	"time"

	"otpbot/commands"
	"otpbot/config"
	"otpbot/handlers/events"
	"otpbot/interfaces"
	"otpbot/servers"
	"otpbot/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
)

// Bot はDiscordボットのコアな状態とロジックを管理します。
type Bot struct {
	Session   *discordgo.Session
	cfg       *config.Config
	log       interfaces.Logger
	store     interfaces.UsageStore
	scheduler interfaces.Scheduler
	registry  *commands.Registry
	servers   *servers.Manager
	startTime time.Time
}

// New は新しいBotインスタンスを作成します。接続は Run で行います。
func New(cfg *config.Config, log interfaces.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, errors.Wrap(err, "create discord session")
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	store, err := storage.NewDBStore(cfg.Storage.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open usage store %s", cfg.Storage.Path)
	}

	b := &Bot{
		Session:   dg,
		cfg:       cfg,
		log:       log,
		store:     store,
		scheduler: cron.New(),
		registry:  commands.RegisterCommands(&commands.AppContext{Log: log, Store: store}),
		servers:   servers.NewManager(log),
		startTime: time.Now(),
	}
	if cfg.Web.Enabled {
		b.servers.AddServer(servers.NewWebServer(cfg.Web.Addr, log, store, b.connected))
	}
	return b, nil
}

// Run はDiscordに接続し、ctx がキャンセルされるまでブロックします。
// どの経路で戻っても接続とストアは閉じられます。
func (b *Bot) Run(ctx context.Context) error {
	defer b.store.Close()

	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		events.OnReady(s, r, b.cfg.Discord.Prefix, b.log)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		events.OnInteractionCreate(s, i, b.registry, b.log)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		events.OnMessageCreate(s, s.State.User.ID, m, b.cfg.Discord.Prefix, b.registry, b.log)
	})

	if err := b.Session.Open(); err != nil {
		return errors.Wrap(err, "open discord session")
	}
	defer b.Session.Close()

	if err := b.registerSlashCommands(); err != nil {
		return err
	}

	if spec := b.cfg.Usage.ReportSchedule; spec != "" {
		if _, err := b.scheduler.AddFunc(spec, b.reportUsage); err != nil {
			return errors.Wrapf(err, "schedule usage report %q", spec)
		}
	}
	b.scheduler.Start()
	defer stopScheduler(b.scheduler)

	if err := b.servers.StartAll(); err != nil {
		return err
	}
	defer b.servers.StopAll()

	b.log.Info("Bot is now running. Press CTRL-C to exit.")
	<-ctx.Done()

	b.log.Info("Botをシャットダウンします...", "uptime", time.Since(b.startTime).Round(time.Second).String())
	b.reportUsage()
	return nil
}

// stopScheduler stops the scheduler and waits for running jobs, so a report
// in flight finishes before the store is closed.
func stopScheduler(s interfaces.Scheduler) {
	<-s.Stop().Done()
}

func (b *Bot) registerSlashCommands() error {
	appID := b.cfg.Discord.AppID
	if appID == "" {
		appID = b.Session.State.User.ID
	}
	defs := b.registry.Definitions()
	if _, err := b.Session.ApplicationCommandBulkOverwrite(appID, b.cfg.Discord.GuildID, defs); err != nil {
		return errors.Wrap(err, "register slash commands")
	}
	b.log.Info("コマンドの登録が完了しました",
		"commands", lo.Map(defs, func(d *discordgo.ApplicationCommand, _ int) string { return d.Name }),
		"guild_id", b.cfg.Discord.GuildID)
	return nil
}

// reportUsage logs the counters gathered since the previous report and
// resets them.
func (b *Bot) reportUsage() {
	usage, err := b.store.GetAndResetCommandUsage()
	if err != nil {
		b.log.Error("Failed to collect command usage", "error", err)
		return
	}
	if len(usage) == 0 {
		return
	}
	b.log.Info("Command usage report", "total", lo.Sum(lo.Values(usage)), "usage", usage)
}

func (b *Bot) connected() bool {
	b.Session.RLock()
	defer b.Session.RUnlock()
	return b.Session.DataReady
}
