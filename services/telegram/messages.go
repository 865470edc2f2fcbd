package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"shiny-tracker/models/constants"
	"shiny-tracker/models/entities"
	"shiny-tracker/pkg/changeset"

	"github.com/dustin/go-humanize"
	"github.com/mmcdole/gofeed"
)

// Emoji shorthand for each acquisition method, used in lists and alerts.
var methodEmojis = map[string]string{
	entities.MethodWild:      "🐾",
	entities.MethodRaid:      "⚔️",
	entities.MethodEvolution: "🧿",
	entities.MethodEgg:       "🥚",
	entities.MethodResearch:  "🔍",
	entities.MethodMystery:   "🎁",
}

func methodLine(record entities.ShinyRecord) string {
	var emojis strings.Builder
	for _, method := range record.ActiveMethods() {
		emojis.WriteString(methodEmojis[method])
	}

	return emojis.String()
}

func formatRecordLine(record entities.ShinyRecord) string {
	return fmt.Sprintf("#%d %s %s", record.DexID, record.Name, methodLine(record))
}

func formatNewShinies(source string, added []entities.ShinyRecord) string {
	msg := fmt.Sprintf("✨ New shiny Pokémon listed on *%s*:\n\n", source)
	for _, record := range added {
		msg += formatRecordLine(record) + "\n"
	}
	msg += fmt.Sprintf("\n💬 Type `/list %s` for the full list.", source)

	return msg
}

func formatChangedShinies(source string, changed []changeset.Change) string {
	msg := fmt.Sprintf("♻️ Shiny info changed on *%s* for the following Pokémon:\n\n", source)
	for _, change := range changed {
		msg += formatRecordLine(change.Record) + "\n"
		for _, field := range change.Fields {
			msg += fmt.Sprintf("`%s` %s changed from `%s` to `%s`\n",
				field.Field,
				methodEmojis[field.Field],
				strconv.FormatBool(field.Old),
				strconv.FormatBool(field.New))
		}
		msg += "\n"
	}

	return msg
}

func formatSourceList(source string, records []entities.ShinyRecord, refreshedAt time.Time) string {
	msg := fmt.Sprintf("*%s*\n\n", source)
	if len(records) == 0 {
		msg += "No shiny Pokémon recorded yet. The next check may fill this list.\n"
		return msg
	}

	for _, record := range records {
		msg += formatRecordLine(record) + "\n"
	}

	if !refreshedAt.IsZero() {
		msg += fmt.Sprintf("\n_Updated %s_\n", humanize.Time(refreshedAt))
	}

	return msg
}

func formatSourceOverview(subscriber entities.Subscriber) string {
	msg := "🗂 *Tracked sources*\n\n"
	for _, source := range constants.GetShinySources() {
		state := "🔔"
		if subscriber.IsMuted(source.Name) {
			state = "🔇"
		}
		msg += fmt.Sprintf("%s `%s` %s\n%s\n\n", state, source.Name, source.Title, source.URL)
	}
	msg += "Mute a source with `/mute <source>`, bring it back with `/unmute <source>`."

	return msg
}

func formatNewsItem(feed string, item *gofeed.Item) string {
	msg := fmt.Sprintf("📰 *%s*\n\n", feed)
	msg += item.Title + "\n"
	if item.Link != "" {
		msg += item.Link + "\n"
	}
	if item.PublishedParsed != nil {
		msg += fmt.Sprintf("\n_%s_", humanize.Time(*item.PublishedParsed))
	}

	return msg
}

func getLegendMessage() string {
	msg := "*Legend*\n\n"
	msg += "The following emojis symbolize how you can obtain the shiny form of a Pokémon:\n"
	msg += "🐾 in the wild\n"
	msg += "⚔️ through raids\n"
	msg += "🧿 by evolving the pre-stage\n"
	msg += "🥚 by hatching eggs\n"
	msg += "🔍 through quests and research tasks\n"
	msg += "🎁 by opening a mystery box\n"

	return msg
}

func getUnknownSourceMessage(name string) string {
	msg := fmt.Sprintf("🤔 I don't track any source called `%s`.\n\n", name)
	msg += "Known sources:\n"
	for _, source := range constants.GetShinySourceNames() {
		msg += fmt.Sprintf("• `%s`\n", source)
	}

	return msg
}

func getMuteUsageMessage() string {
	msg := "ℹ️ Tell me which source to mute, for example `/mute gamepress.gg`.\n\n"
	msg += "Type `/sources` to see every source and its current state."

	return msg
}

func getUnmuteUsageMessage() string {
	msg := "ℹ️ Tell me which source to unmute, for example `/unmute gamepress.gg`.\n\n"
	msg += "Type `/sources` to see every source and its current state."

	return msg
}

func getGenericErrorMessage() string {
	msg := "😔 *Oops! Something went wrong*\n\n"
	msg += "It looks like I couldn't complete your request. Here's what you can try:\n"
	msg += "1️⃣ Double-check the information you provided.\n"
	msg += "2️⃣ Wait a moment and try again.\n\n"
	msg += "Thanks for your patience! 🤖✨"

	return msg
}

func getMessageFromMessageType(messageType MessageType) string {
	switch messageType {
	case MessageTypeWelcome:
		msg := "👋 Hi! I'm *Shiny Watchdog* 🤖\n\n"
		msg += "I watch pogoapi.net and gamepress.gg and tell you as soon as a new shiny Pokémon shows up in Pokémon GO. ✨\n\n"
		msg += "✅ *Want alerts?* Type `/subscribe` and every new shiny lands here automatically.\n"
		msg += "📋 *Curious right now?* Type `/list` for everything currently on record.\n\n"
		msg += "💬 *Need more?* Type `/help` for all commands."

		return msg

	case MessageTypeHelp:
		msg := "🤖 *Shiny Watchdog* Help Guide 📢\n\n"
		msg += "I check the shiny lists of pogoapi.net and gamepress.gg every few minutes and alert subscribers about every new or changed entry. ✨\n\n"
		msg += "📝 *Commands available:*\n"
		msg += "✅ `/subscribe` Get alerted about new shiny Pokémon.\n"
		msg += "❌ `/unsubscribe` Stop all alerts.\n"
		msg += "📋 `/list` Show every shiny on record, `/list pogoapi.net` for one source.\n"
		msg += "🗂 `/sources` Show tracked sources and your mute settings.\n"
		msg += "🔇 `/mute <source>` Skip alerts from one source.\n"
		msg += "🔔 `/unmute <source>` Bring a muted source back.\n"
		msg += "💡 `/help` Show this help message.\n"

		return msg

	case MessageTypeSubscribe:
		msg := "🎉 *Subscription confirmed!* ✅\n\n"
		msg += "You're in! As soon as a new shiny Pokémon is listed, I'll message you. ✨\n\n"
		msg += "Type `/unsubscribe` at any time to stop the alerts.\n"

		return msg

	case MessageTypeUnsubscribe:
		msg := "👋 *You've unsubscribed* ❌\n\n"
		msg += "No more shiny alerts for this chat. 😔\n\n"
		msg += "If you change your mind, type `/subscribe` anytime! ✨\n"

		return msg

	default:
		return getGenericErrorMessage()
	}
}

// splitMessage cuts a long message into chunks Telegram accepts, cutting at
// the last line break before the limit when one exists.
func splitMessage(text string) []string {
	runes := []rune(text)
	var parts []string
	for len(runes) > maxMessageLength {
		cut := maxMessageLength
		for index := maxMessageLength; index > 0; index-- {
			if runes[index-1] == '\n' {
				cut = index
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	parts = append(parts, string(runes))

	return parts
}
