package telegram

import (
	"errors"

	"shiny-tracker/repositories/shinies"
	"shiny-tracker/repositories/subscribers"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

type MessageType int

const (
	MessageTypeUnknown     MessageType = -1
	MessageTypeWelcome     MessageType = 1
	MessageTypeHelp        MessageType = 2
	MessageTypeSubscribe   MessageType = 3
	MessageTypeUnsubscribe MessageType = 4
)

const (
	// Telegram rejects anything longer in a single message.
	maxMessageLength = 4096

	parseModeMarkdown = "Markdown"
)

var (
	ErrTokenIsMissing         = errors.New("telegram token is missing")
	ErrBotNotInitialized      = errors.New("telegram bot is not ready yet")
	ErrFailedToStartListening = errors.New("telegram bot can't start to listen command")
)

// messageSender is the slice of the bot API used for outgoing messages, kept
// separate so delivery code runs against a fake bot in tests.
type messageSender interface {
	SendMessage(chatId int64, text string, opts *gotgbot.SendMessageOpts) (*gotgbot.Message, error)
}

type Service interface {
	ListenAndDispatch() error
}

type Impl struct {
	bot            *gotgbot.Bot
	sender         messageSender
	updater        *ext.Updater
	subscriberRepo subscribers.Repository
	shinyRepo      shinies.Repository
}
