package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"

	"technohunter_bot/internal/app"
	"technohunter_bot/internal/domain/form"
	"technohunter_bot/internal/infra/memory"
)

const (
	adminID int64 = 848907805
	userID  int64 = 4242
	chatID  int64 = 777
)

type mockClient struct{ mock.Mock }

func (m *mockClient) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	return m.Called(recipientChatID, text, options).Error(0)
}

func (m *mockClient) EditMessage(chatID int64, messageID int, text string, options *telebot.SendOptions) error {
	return m.Called(chatID, messageID, text, options).Error(0)
}

func (m *mockClient) SendDocument(recipientChatID int64, fileName string, content io.Reader, caption string) error {
	return m.Called(recipientChatID, fileName, content, caption).Error(0)
}

// fakeContext implements the parts of telebot.Context the handlers use.
type fakeContext struct {
	telebot.Context
	sender    *telebot.User
	chat      *telebot.Chat
	callback  *telebot.Callback
	message   *telebot.Message
	args      []string
	sent      []string
	sentOpts  [][]interface{}
	responses int
}

func newFakeContext(from int64) *fakeContext {
	return &fakeContext{
		sender: &telebot.User{ID: from, FirstName: "Анна"},
		chat:   &telebot.Chat{ID: chatID},
	}
}

func (f *fakeContext) Sender() *telebot.User       { return f.sender }
func (f *fakeContext) Chat() *telebot.Chat         { return f.chat }
func (f *fakeContext) Callback() *telebot.Callback { return f.callback }
func (f *fakeContext) Message() *telebot.Message   { return f.message }
func (f *fakeContext) Args() []string              { return f.args }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, fmt.Sprint(what))
	f.sentOpts = append(f.sentOpts, opts)
	return nil
}

func (f *fakeContext) Respond(_ ...*telebot.CallbackResponse) error {
	f.responses++
	return nil
}

func (f *fakeContext) lastSent() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

type fixture struct {
	deps   *Deps
	client *mockClient
	repo   *memory.ApplicationRepository
	hook   *test.Hook
}

func newFixture(t *testing.T, catalog *form.Catalog) *fixture {
	t.Helper()
	if catalog == nil {
		catalog = form.DefaultCatalog()
	}
	l, hook := test.NewNullLogger()
	logger := logrus.NewEntry(l)
	client := new(mockClient)
	repo := memory.NewApplicationRepository()
	settings := app.NewAdminSettings([]int64{adminID}, true)
	notifier := app.NewNotificationService(settings, client, logger)

	return &fixture{
		deps: &Deps{
			Ctx:      context.Background(),
			Catalog:  catalog,
			Sessions: memory.NewSessionStore(catalog),
			Repo:     repo,
			Intake:   app.NewIntakeService(repo, notifier, catalog, logger),
			Admin:    app.NewAdminService(repo, settings, 10),
			Client:   client,
			WebApp:   "https://forms.example.com/app",
			Support:  "@support",
			Partners: "https://partners.example.com",
			Logger:   logger,
			Now:      func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) },
		},
		client: client,
		repo:   repo,
		hook:   hook,
	}
}

func (fx *fixture) sessionState(t *testing.T, user int64) form.State {
	t.Helper()
	var st form.State
	require.NoError(t, fx.deps.Sessions.With(user, func(s *form.Session) error {
		st = s.State()
		return nil
	}))
	return st
}

func callbackContext(from int64, data string) *fakeContext {
	c := newFakeContext(from)
	c.callback = &telebot.Callback{Data: data, Message: &telebot.Message{ID: 55, Chat: c.chat}}
	return c
}

func TestStart_ShowsBranchChoice(t *testing.T) {
	fx := newFixture(t, nil)
	c := newFakeContext(userID)

	require.NoError(t, handleStart(fx.deps)(c))

	assert.Contains(t, c.lastSent(), "Добро пожаловать в Технохантер, Анна!")
	opts := c.sentOpts[0][0].(*telebot.SendOptions)
	kb := opts.ReplyMarkup.InlineKeyboard
	require.Len(t, kb, 2)
	assert.Equal(t, btnSelectBranch.Unique, kb[0][0].Unique)
	assert.Equal(t, "company", kb[0][0].Data)
	assert.Equal(t, "participant", kb[1][0].Data)
	assert.Equal(t, form.StateBranchSelect, fx.sessionState(t, userID))
}

func TestSelectBranch_OpensForm(t *testing.T) {
	fx := newFixture(t, nil)
	fx.client.On("EditMessage", chatID, 55, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Вы выбрали: Компания")
	}), mock.Anything).Return(nil)
	fx.client.On("SendMessage", chatID, mock.Anything, mock.MatchedBy(func(o *telebot.SendOptions) bool {
		kb := o.ReplyMarkup.ReplyKeyboard
		return len(kb) == 1 && kb[0][0].WebApp != nil &&
			kb[0][0].WebApp.URL == "https://forms.example.com/app?type=company"
	})).Return(nil)
	c := callbackContext(userID, "company")

	require.NoError(t, handleSelectBranch(fx.deps)(c))

	fx.client.AssertExpectations(t)
	assert.Equal(t, form.StateStep, fx.sessionState(t, userID))
	assert.Equal(t, 1, c.responses)
}

func TestSelectBranch_FallsBackToNewMessage(t *testing.T) {
	fx := newFixture(t, nil)
	fx.client.On("EditMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("message is not modified"))
	fx.client.On("SendMessage", chatID, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, handleSelectBranch(fx.deps)(callbackContext(userID, "participant")))

	fx.client.AssertNumberOfCalls(t, "SendMessage", 2)
	fx.client.AssertCalled(t, "SendMessage", chatID, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Вы выбрали: Участник программы")
	}), mock.Anything)
}

func TestSelectBranch_UnavailableStaysInSelection(t *testing.T) {
	participant := form.ParticipantDefinition()
	participant.Available = false
	fx := newFixture(t, form.NewCatalog(form.CompanyDefinition(), participant))
	fx.client.On("EditMessage", chatID, 55, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "в разработке")
	}), mock.Anything).Return(nil)

	require.NoError(t, handleSelectBranch(fx.deps)(callbackContext(userID, "participant")))

	fx.client.AssertExpectations(t)
	fx.client.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, form.StateBranchSelect, fx.sessionState(t, userID))
}

func TestSelectBranch_StaleKeyboardStartsOver(t *testing.T) {
	fx := newFixture(t, nil)
	fx.client.On("EditMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	fx.client.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, handleSelectBranch(fx.deps)(callbackContext(userID, "company")))

	require.NoError(t, handleSelectBranch(fx.deps)(callbackContext(userID, "participant")))

	var branch form.Branch
	require.NoError(t, fx.deps.Sessions.With(userID, func(s *form.Session) error {
		branch = s.Branch()
		return nil
	}))
	assert.Equal(t, form.BranchParticipant, branch)
}

func TestBackToStart_ReturnsToSelection(t *testing.T) {
	fx := newFixture(t, nil)
	fx.client.On("EditMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	fx.client.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, handleSelectBranch(fx.deps)(callbackContext(userID, "company")))
	require.Equal(t, form.StateStep, fx.sessionState(t, userID))

	require.NoError(t, handleBackToStart(fx.deps)(callbackContext(userID, "")))

	assert.Equal(t, form.StateBranchSelect, fx.sessionState(t, userID))
	fx.client.AssertCalled(t, "EditMessage", chatID, 55, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Выберите, кто вы")
	}), mock.Anything)
}

func TestStatus_ReportsSnapshot(t *testing.T) {
	fx := newFixture(t, nil)
	fx.deps.Sessions.Reset(userID)
	c := newFakeContext(userID)

	require.NoError(t, handleStatus(fx.deps)(c))

	text := c.lastSent()
	assert.Contains(t, text, "Время сервера: 15.10.2026, 12:00:00")
	assert.Contains(t, text, "Заявок в хранилище: 0")
	assert.Contains(t, text, "Активных сессий: 1")
	assert.Contains(t, text, "✅ Настроен")
}

func TestHelp_MentionsSupport(t *testing.T) {
	fx := newFixture(t, nil)
	c := newFakeContext(userID)

	require.NoError(t, handleHelp(fx.deps)(c))

	assert.Contains(t, c.lastSent(), "@support")
	assert.Contains(t, c.lastSent(), "/start")
}
