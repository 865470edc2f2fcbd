package telegram

import (
	"fmt"
	"strings"
	"time"

	"shiny-tracker/models/constants"
	"shiny-tracker/models/entities"
	"shiny-tracker/pkg/observer"
	"shiny-tracker/repositories/shinies"
	"shiny-tracker/repositories/subscribers"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler,
	token string,
	subscriberRepo subscribers.Repository,
	shinyRepo shinies.Repository) (*Impl, error) {
	if token == "" {
		return &Impl{}, ErrTokenIsMissing
	}

	b, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return &Impl{}, ErrBotNotInitialized
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Warn().Err(err).Msg("an error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	service := Impl{bot: b, sender: b, subscriberRepo: subscriberRepo, shinyRepo: shinyRepo}
	dispatcher.AddHandler(handlers.NewCommand("start", service.startCmd))
	dispatcher.AddHandler(handlers.NewCommand("help", service.helpCmd))
	dispatcher.AddHandler(handlers.NewCommand("list", service.listCmd))
	dispatcher.AddHandler(handlers.NewCommand("sources", service.sourcesCmd))
	dispatcher.AddHandler(handlers.NewCommand("subscribe", service.subscribeCmd))
	dispatcher.AddHandler(handlers.NewCommand("unsubscribe", service.unsubscribeCmd))
	dispatcher.AddHandler(handlers.NewCommand("mute", service.muteCmd))
	dispatcher.AddHandler(handlers.NewCommand("unmute", service.unmuteCmd))
	dispatcher.AddHandler(handlers.NewCommand("", service.unknownCmd))

	service.updater = ext.NewUpdater(dispatcher, nil)

	_, errAdminJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.AdminReportCronTab), true),
		gocron.NewTask(func() { service.dailyAdminReport() }),
		gocron.WithName("Send daily report to admin"),
	)
	if errAdminJob != nil {
		return nil, errAdminJob
	}

	return &service, nil
}

func (service *Impl) ListenAndDispatch() error {
	err := service.updater.StartPolling(service.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Cannot start polling telegram updates")
		return ErrFailedToStartListening
	}

	log.Info().Msgf("%v has been started...", service.bot.User.Username)
	service.updater.Idle()

	return nil
}

// send delivers one logical message, split when Telegram's length cap asks
// for it. Delivery failures are logged and swallowed so one unreachable chat
// never blocks the others.
func (service *Impl) send(chatID int64, text string) {
	for _, part := range splitMessage(text) {
		_, err := service.sender.SendMessage(chatID, part, &gotgbot.SendMessageOpts{ParseMode: parseModeMarkdown})
		if err != nil {
			log.Warn().Err(err).Int64("chatID", chatID).Msg("cannot deliver message")
			return
		}
	}
}

// commandArgs returns the words following the command itself.
func commandArgs(ctx *ext.Context) []string {
	if ctx.EffectiveMessage == nil {
		return nil
	}

	fields := strings.Fields(ctx.EffectiveMessage.Text)
	if len(fields) < 2 {
		return nil
	}

	return fields[1:]
}

func (service *Impl) startCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "start").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeWelcome))
	return nil
}

func (service *Impl) helpCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "help").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeHelp))
	return nil
}

func (service *Impl) unknownCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "unknown").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	service.send(ctx.EffectiveChat.Id, getGenericErrorMessage())
	return nil
}

func (service *Impl) subscribeCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "subscribe").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	err := service.subscriberRepo.SaveOrUpdate(entities.Subscriber{ChatID: ctx.EffectiveChat.Id, Name: ctx.EffectiveChat.Username})
	if err != nil {
		log.Error().Err(err).Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("error on saved")
		service.send(ctx.EffectiveChat.Id, getGenericErrorMessage())
		return nil
	}

	service.notifyAdminOnNewSubscriber(ctx.EffectiveChat.Id)
	service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeSubscribe))

	return nil
}

func (service *Impl) unsubscribeCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "unsubscribe").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	err := service.subscriberRepo.Delete(ctx.EffectiveChat.Id)
	if err != nil {
		log.Error().Err(err).Int64("chatID", ctx.EffectiveChat.Id).Msg("error on deleted")
		service.send(ctx.EffectiveChat.Id, getGenericErrorMessage())
		return nil
	}

	service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeUnsubscribe))
	return nil
}

func (service *Impl) listCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "list").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")

	selected := constants.GetShinySourceNames()
	if args := commandArgs(ctx); len(args) > 0 {
		name := strings.ToLower(args[0])
		if !constants.IsShinySource(name) {
			service.send(ctx.EffectiveChat.Id, getUnknownSourceMessage(name))
			return nil
		}
		selected = []string{name}
	}

	service.send(ctx.EffectiveChat.Id, getLegendMessage())

	for _, source := range selected {
		records, err := service.shinyRepo.FetchBySource(source)
		if err != nil {
			log.Error().Err(err).Str("cmd", "list").Int64("chatID", ctx.EffectiveChat.Id).Msg("cannot read stored shinies")
			service.send(ctx.EffectiveChat.Id, getGenericErrorMessage())
			return nil
		}

		refreshedAt, _ := service.shinyRepo.LastRefresh(source)
		service.send(ctx.EffectiveChat.Id, formatSourceList(source, records, refreshedAt))
	}

	return nil
}

func (service *Impl) sourcesCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "sources").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")

	subscriber, err := service.subscriberRepo.Fetch(ctx.EffectiveChat.Id)
	if err != nil {
		subscriber = entities.Subscriber{ChatID: ctx.EffectiveChat.Id}
	}

	service.send(ctx.EffectiveChat.Id, formatSourceOverview(subscriber))
	return nil
}

func (service *Impl) muteCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "mute").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")

	args := commandArgs(ctx)
	if len(args) == 0 {
		service.send(ctx.EffectiveChat.Id, getMuteUsageMessage())
		return nil
	}

	source := strings.ToLower(args[0])
	if !constants.IsShinySource(source) {
		service.send(ctx.EffectiveChat.Id, getUnknownSourceMessage(source))
		return nil
	}

	if err := service.setSourceMuted(ctx, source, true); err != nil {
		log.Error().Err(err).Str("cmd", "mute").Int64("chatID", ctx.EffectiveChat.Id).Msg("cannot update preferences")
		service.send(ctx.EffectiveChat.Id, getGenericErrorMessage())
		return nil
	}

	service.send(ctx.EffectiveChat.Id, fmt.Sprintf("🔇 Notifications from *%s* are now muted. Type `/unmute %s` to bring them back.", source, source))
	return nil
}

func (service *Impl) unmuteCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "unmute").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")

	args := commandArgs(ctx)
	if len(args) == 0 {
		service.send(ctx.EffectiveChat.Id, getUnmuteUsageMessage())
		return nil
	}

	source := strings.ToLower(args[0])
	if !constants.IsShinySource(source) {
		service.send(ctx.EffectiveChat.Id, getUnknownSourceMessage(source))
		return nil
	}

	if err := service.setSourceMuted(ctx, source, false); err != nil {
		log.Error().Err(err).Str("cmd", "unmute").Int64("chatID", ctx.EffectiveChat.Id).Msg("cannot update preferences")
		service.send(ctx.EffectiveChat.Id, getGenericErrorMessage())
		return nil
	}

	service.send(ctx.EffectiveChat.Id, fmt.Sprintf("🔔 Notifications from *%s* are back on.", source))
	return nil
}

// setSourceMuted registers the chat when needed, then rewrites its muted
// source list.
func (service *Impl) setSourceMuted(ctx *ext.Context, source string, muted bool) error {
	err := service.subscriberRepo.SaveOrUpdate(entities.Subscriber{ChatID: ctx.EffectiveChat.Id, Name: ctx.EffectiveChat.Username})
	if err != nil {
		return err
	}

	subscriber, err := service.subscriberRepo.Fetch(ctx.EffectiveChat.Id)
	if err != nil {
		return err
	}

	disabled := subscriber.DisabledList()
	if muted {
		if !subscriber.IsMuted(source) {
			disabled = append(disabled, source)
		}
	} else {
		kept := make([]string, 0, len(disabled))
		for _, name := range disabled {
			if name != source {
				kept = append(kept, name)
			}
		}
		disabled = kept
	}

	return service.subscriberRepo.SetDisabledSources(ctx.EffectiveChat.Id, disabled)
}

func (service *Impl) notifyAdminOnNewSubscriber(chatID int64) {
	admin := viper.GetInt64(constants.TelegramAdmin)
	if admin == 0 || chatID == admin {
		return
	}

	msg := "🆕 *New subscription!* 🎉\n\n"
	msg += "A new chat subscribed to shiny alerts. 🚀\n"
	msg += fmt.Sprintf("👤 *Chat ID:* `%d`\n", chatID)
	msg += fmt.Sprintf("📅 *Date:* `%s`\n", time.Now().Format("2006-01-02 15:04:05"))
	msg += fmt.Sprintf("\n👥 Total subscribers: `%s`", humanize.Comma(service.subscriberRepo.Count()))

	service.send(admin, msg)
}

func (service *Impl) dailyAdminReport() {
	admin := viper.GetInt64(constants.TelegramAdmin)
	if admin == 0 {
		return
	}

	subscriberCount := service.subscriberRepo.Count()
	if subscriberCount == 0 {
		return
	}

	msg := "📢 *Daily subscriber report* 📊\n\n"
	msg += fmt.Sprintf("👥 *Total subscribers:* `%s`\n", humanize.Comma(subscriberCount))
	msg += fmt.Sprintf("✨ *Shiny records tracked:* `%s`\n", humanize.Comma(service.shinyRepo.Count()))

	service.send(admin, msg)
}

func (service *Impl) OnNotify(e observer.Event) {
	log.Info().Msg("Received internal notification")
	if e.E == observer.ShinyEvent {
		service.notifyShinies(e)
	} else if e.E == observer.NewsEvent {
		service.notifyNews(e)
	}
}

// notifyShinies fans one source refresh out to every subscriber. The messages
// are built once, muted chats are skipped, failed deliveries only cost the
// chat that failed.
func (service *Impl) notifyShinies(e observer.Event) {
	fetched, err := service.subscriberRepo.FetchAll()
	if err != nil {
		log.Error().Err(err).Msg("cannot fetch subscribers, notification dropped")
		return
	}
	if len(fetched) == 0 {
		return
	}

	var messages []string
	if len(e.Summary.Added) > 0 {
		messages = append(messages, formatNewShinies(e.Source, e.Summary.Added))
	}
	if len(e.Summary.Changed) > 0 {
		messages = append(messages, formatChangedShinies(e.Source, e.Summary.Changed))
	}

	for _, subscriber := range fetched {
		if subscriber.IsMuted(e.Source) {
			log.Debug().Int64("chatID", subscriber.ChatID).Str(constants.LogSource, e.Source).Msg("source muted, notification skipped")
			continue
		}
		for _, message := range messages {
			service.send(subscriber.ChatID, message)
		}
	}
}

func (service *Impl) notifyNews(e observer.Event) {
	if e.Item == nil {
		return
	}

	fetched, err := service.subscriberRepo.FetchAll()
	if err != nil {
		log.Error().Err(err).Msg("cannot fetch subscribers, news dropped")
		return
	}

	message := formatNewsItem(e.Feed, e.Item)
	for _, subscriber := range fetched {
		service.send(subscriber.ChatID, message)
	}
}
