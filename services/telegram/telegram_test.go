package telegram

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"shiny-tracker/models/constants"
	"shiny-tracker/models/entities"
	"shiny-tracker/pkg/changeset"
	"shiny-tracker/pkg/observer"
	"shiny-tracker/repositories/shinies"
	"shiny-tracker/repositories/subscribers"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/glebarez/sqlite"
	"github.com/mmcdole/gofeed"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testConnection struct {
	db *gorm.DB
}

func (c *testConnection) GetDB() *gorm.DB { return c.db }

func (c *testConnection) IsConnected() bool { return true }

func (c *testConnection) Run() error { return nil }

func (c *testConnection) Shutdown() {}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	messages []sentMessage
	failFor  map[int64]bool
}

func (s *fakeSender) SendMessage(chatId int64, text string, opts *gotgbot.SendMessageOpts) (*gotgbot.Message, error) {
	if s.failFor[chatId] {
		return nil, errors.New("chat is unreachable")
	}

	s.messages = append(s.messages, sentMessage{chatID: chatId, text: text})
	return &gotgbot.Message{}, nil
}

func (s *fakeSender) textsFor(chatID int64) []string {
	var texts []string
	for _, message := range s.messages {
		if message.chatID == chatID {
			texts = append(texts, message.text)
		}
	}

	return texts
}

func setupService(t *testing.T) (*Impl, *fakeSender) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Subscriber{}, &entities.ShinyRecord{}))

	conn := &testConnection{db: db}
	sender := &fakeSender{failFor: map[int64]bool{}}
	service := &Impl{
		sender:         sender,
		subscriberRepo: subscribers.New(conn),
		shinyRepo:      shinies.New(conn),
	}

	return service, sender
}

func chatContext(chatID int64, text string) *ext.Context {
	return &ext.Context{
		EffectiveChat:    &gotgbot.Chat{Id: chatID, Username: "trainer"},
		EffectiveMessage: &gotgbot.Message{Text: text},
	}
}

func storedRecord(dexID int, name string, methods ...string) entities.ShinyRecord {
	record := entities.ShinyRecord{DexID: dexID, Name: name}
	for _, method := range methods {
		record.MarkObtainable(method)
	}

	return record
}

func TestSubscribeCmdRegistersChat(t *testing.T) {
	service, sender := setupService(t)

	require.NoError(t, service.subscribeCmd(nil, chatContext(42, "/subscribe")))

	assert.Equal(t, int64(1), service.subscriberRepo.Count())
	texts := sender.textsFor(42)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Subscription confirmed")
}

func TestUnsubscribeCmdRemovesChat(t *testing.T) {
	service, sender := setupService(t)
	require.NoError(t, service.subscribeCmd(nil, chatContext(42, "/subscribe")))

	require.NoError(t, service.unsubscribeCmd(nil, chatContext(42, "/unsubscribe")))

	assert.Equal(t, int64(0), service.subscriberRepo.Count())
	texts := sender.textsFor(42)
	require.Len(t, texts, 2)
	assert.Contains(t, texts[1], "unsubscribed")
}

func TestListCmdRejectsUnknownSource(t *testing.T) {
	service, sender := setupService(t)

	require.NoError(t, service.listCmd(nil, chatContext(42, "/list serebii.net")))

	texts := sender.textsFor(42)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "don't track any source")
	assert.Contains(t, texts[0], "serebii.net")
}

func TestListCmdShowsStoredRecords(t *testing.T) {
	service, sender := setupService(t)
	require.NoError(t, service.shinyRepo.ReplaceSource(constants.SourcePogoAPI, []entities.ShinyRecord{
		storedRecord(25, "Pikachu", entities.MethodWild, entities.MethodRaid),
	}))

	require.NoError(t, service.listCmd(nil, chatContext(42, "/list pogoapi.net")))

	texts := sender.textsFor(42)
	require.Len(t, texts, 2, "legend first, then the list")
	assert.Contains(t, texts[0], "Legend")
	assert.Contains(t, texts[1], "#25 Pikachu 🐾⚔️")
	assert.Contains(t, texts[1], "Updated")
}

func TestListCmdWithoutArgumentCoversAllSources(t *testing.T) {
	service, sender := setupService(t)

	require.NoError(t, service.listCmd(nil, chatContext(42, "/list")))

	texts := sender.textsFor(42)
	require.Len(t, texts, 1+len(constants.GetShinySourceNames()))
	for index, source := range constants.GetShinySourceNames() {
		assert.Contains(t, texts[index+1], source)
		assert.Contains(t, texts[index+1], "No shiny Pokémon recorded yet")
	}
}

func TestMuteCmdWithoutArgumentExplainsUsage(t *testing.T) {
	service, sender := setupService(t)

	require.NoError(t, service.muteCmd(nil, chatContext(42, "/mute")))

	texts := sender.textsFor(42)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "/mute gamepress.gg")
}

func TestMuteSkipsSingleSource(t *testing.T) {
	service, sender := setupService(t)

	require.NoError(t, service.muteCmd(nil, chatContext(42, "/mute gamepress.gg")))
	assert.Equal(t, int64(1), service.subscriberRepo.Count(), "muting registers the chat")

	summary := changeset.Summary{Added: []entities.ShinyRecord{storedRecord(1, "Bulbasaur", entities.MethodWild)}}
	sender.messages = nil

	service.OnNotify(observer.NewShinyEvent(constants.SourceGamePress, summary))
	assert.Empty(t, sender.textsFor(42), "muted source stays quiet")

	service.OnNotify(observer.NewShinyEvent(constants.SourcePogoAPI, summary))
	assert.Len(t, sender.textsFor(42), 1, "other sources still notify")

	require.NoError(t, service.unmuteCmd(nil, chatContext(42, "/unmute gamepress.gg")))
	sender.messages = nil

	service.OnNotify(observer.NewShinyEvent(constants.SourceGamePress, summary))
	assert.Len(t, sender.textsFor(42), 1, "unmute restores notifications")
}

func TestNotifyShiniesSurvivesUnreachableChat(t *testing.T) {
	service, sender := setupService(t)
	require.NoError(t, service.subscriberRepo.SaveOrUpdate(entities.Subscriber{ChatID: 1, Name: "first"}))
	require.NoError(t, service.subscriberRepo.SaveOrUpdate(entities.Subscriber{ChatID: 2, Name: "second"}))
	sender.failFor[1] = true

	summary := changeset.Summary{Added: []entities.ShinyRecord{storedRecord(1, "Bulbasaur", entities.MethodWild)}}
	service.OnNotify(observer.NewShinyEvent(constants.SourcePogoAPI, summary))

	assert.Empty(t, sender.textsFor(1))
	assert.Len(t, sender.textsFor(2), 1, "one failing chat does not block the others")
}

func TestNotifyShiniesReportsAddedAndChanged(t *testing.T) {
	service, sender := setupService(t)
	require.NoError(t, service.subscriberRepo.SaveOrUpdate(entities.Subscriber{ChatID: 42, Name: "trainer"}))

	summary := changeset.Summary{
		Added: []entities.ShinyRecord{storedRecord(152, "Chikorita", entities.MethodWild)},
		Changed: []changeset.Change{{
			Record: storedRecord(25, "Pikachu", entities.MethodWild, entities.MethodRaid),
			Fields: []changeset.FieldChange{{Field: entities.MethodRaid, Old: false, New: true}},
		}},
	}
	service.OnNotify(observer.NewShinyEvent(constants.SourcePogoAPI, summary))

	texts := sender.textsFor(42)
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "New shiny Pokémon")
	assert.Contains(t, texts[0], "#152 Chikorita 🐾")
	assert.Contains(t, texts[1], "#25 Pikachu")
	assert.Contains(t, texts[1], "changed from `false` to `true`")
}

func TestNotifyNewsReachesEverySubscriber(t *testing.T) {
	service, sender := setupService(t)
	require.NoError(t, service.subscriberRepo.SaveOrUpdate(entities.Subscriber{ChatID: 1, Name: "first"}))
	require.NoError(t, service.subscriberRepo.SaveOrUpdate(entities.Subscriber{ChatID: 2, Name: "second"}))

	published := time.Now().Add(-2 * time.Hour)
	item := &gofeed.Item{Title: "Shiny Celebi returns", Link: "https://pokemongohub.net/celebi", PublishedParsed: &published}
	service.OnNotify(observer.NewNewsEvent("Pokémon GO Hub", item))

	for _, chatID := range []int64{1, 2} {
		texts := sender.textsFor(chatID)
		require.Len(t, texts, 1)
		assert.Contains(t, texts[0], "Pokémon GO Hub")
		assert.Contains(t, texts[0], "Shiny Celebi returns")
	}
}

func TestAdminIsToldAboutNewSubscribers(t *testing.T) {
	service, sender := setupService(t)
	viper.Set(constants.TelegramAdmin, int64(99))
	t.Cleanup(viper.Reset)

	require.NoError(t, service.subscribeCmd(nil, chatContext(42, "/subscribe")))

	texts := sender.textsFor(99)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "New subscription")
	assert.Contains(t, texts[0], "`42`")
}

func TestDailyAdminReport(t *testing.T) {
	service, sender := setupService(t)
	viper.Set(constants.TelegramAdmin, int64(99))
	t.Cleanup(viper.Reset)
	require.NoError(t, service.subscriberRepo.SaveOrUpdate(entities.Subscriber{ChatID: 42, Name: "trainer"}))
	require.NoError(t, service.shinyRepo.ReplaceSource(constants.SourcePogoAPI, []entities.ShinyRecord{storedRecord(25, "Pikachu", entities.MethodWild)}))

	service.dailyAdminReport()

	texts := sender.textsFor(99)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Daily subscriber report")
	assert.Contains(t, texts[0], "*Total subscribers:* `1`")
	assert.Contains(t, texts[0], "*Shiny records tracked:* `1`")
}

func TestSplitMessage(t *testing.T) {
	lines := strings.Repeat("0123456789\n", 500)
	parts := splitMessage(lines)

	require.Len(t, parts, 2)
	assert.True(t, strings.HasSuffix(parts[0], "\n"), "cut lands on a line break")
	assert.Equal(t, lines, strings.Join(parts, ""))
	for _, part := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(part), maxMessageLength)
	}

	unbroken := strings.Repeat("é", maxMessageLength+1)
	parts = splitMessage(unbroken)
	require.Len(t, parts, 2)
	assert.Equal(t, maxMessageLength, utf8.RuneCountInString(parts[0]))
	assert.Equal(t, 1, utf8.RuneCountInString(parts[1]))

	assert.Equal(t, []string{"short"}, splitMessage("short"))
}
