package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/entities"
	"restaurant-system/internal/notifications"
	"restaurant-system/internal/repositories"
	"restaurant-system/pkg/config"
	apperrors "restaurant-system/pkg/errors"
	tgapi "restaurant-system/pkg/telegram"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret    = "s3cret"
	adminChatID   = int64(-100)
	waiterChatID  = int64(501)
	unknownChatID = int64(999)
)

type fakeBot struct {
	mu       sync.Mutex
	messages map[int64][]string
	answers  []string
	edits    []editedMessage
}

type editedMessage struct {
	chatID    int64
	messageID int
	text      string
}

func (b *fakeBot) SendMessageEx(_ context.Context, chatID int64, text string, _ ...tgapi.MessageOption) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.messages == nil {
		b.messages = map[int64][]string{}
	}
	b.messages[chatID] = append(b.messages[chatID], text)
	return nil
}

func (b *fakeBot) AnswerCallbackQuery(_ context.Context, _ string, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.answers = append(b.answers, text)
	return nil
}

func (b *fakeBot) EditMessageText(_ context.Context, chatID int64, messageID int, text string, _ ...tgapi.MessageOption) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.edits = append(b.edits, editedMessage{chatID: chatID, messageID: messageID, text: text})
	return nil
}

func (b *fakeBot) SetWebhook(context.Context, string, string) error { return nil }

func (b *fakeBot) last(chatID int64) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.messages[chatID]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string]string{}
	}
	m.data[key] = value.(string)
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	if _, err := m.Get(ctx, key); err == nil {
		return false, nil
	}
	return true, m.Set(ctx, key, value, ttl)
}

type fakeEmployees struct {
	mu       sync.Mutex
	byChat   map[int64]*entities.Employee
	loginErr error
	logins   []entities.Capability
}

func (f *fakeEmployees) List(context.Context) ([]entities.Employee, error) { return nil, nil }
func (f *fakeEmployees) Create(context.Context, dto.CreateEmployeeDTO) (*entities.Employee, error) {
	return nil, nil
}
func (f *fakeEmployees) SetShift(context.Context, uint64, bool) (*entities.Employee, error) {
	return nil, nil
}
func (f *fakeEmployees) ListRoles(context.Context) ([]entities.Role, error) { return nil, nil }

func (f *fakeEmployees) FindByChat(_ context.Context, chatID int64) (*entities.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byChat[chatID]; ok {
		return e, nil
	}
	return nil, apperrors.ErrTelegramNotLinked
}

func (f *fakeEmployees) Login(_ context.Context, chatID int64, _ string, capability entities.Capability) (*entities.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, capability)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	e := &entities.Employee{ID: 3, FullName: "Оля", TelegramUserID: chatID, Role: entities.Role{Name: "Офіціант", CanServeTables: true}}
	f.byChat[chatID] = e
	return e, nil
}

func (f *fakeEmployees) StartShift(ctx context.Context, chatID int64) (*entities.Employee, error) {
	e, err := f.FindByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	e.IsOnShift = true
	return e, nil
}

func (f *fakeEmployees) EndShift(ctx context.Context, chatID int64) (*entities.Employee, error) {
	e, err := f.FindByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	e.IsOnShift = false
	return e, nil
}

func (f *fakeEmployees) Logout(_ context.Context, chatID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byChat, chatID)
	return nil
}

type orderCall struct {
	method  string
	orderID uint64
	actor   string
}

type fakeOrders struct {
	mu       sync.Mutex
	calls    []orderCall
	err      error
	repeated bool
}

func (f *fakeOrders) record(method string, orderID uint64, actor string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, orderCall{method: method, orderID: orderID, actor: actor})
}

func (f *fakeOrders) PlaceWebOrder(context.Context, dto.CreateWebOrderDTO) (*entities.Order, error) {
	return nil, nil
}
func (f *fakeOrders) PlaceTableOrder(context.Context, uuid.UUID, dto.CreateTableOrderDTO) (*entities.Order, error) {
	return nil, nil
}
func (f *fakeOrders) FindOrder(context.Context, uint64) (*entities.Order, error) { return nil, nil }
func (f *fakeOrders) GetHistory(context.Context, uint64) ([]entities.OrderStatusHistory, error) {
	return nil, nil
}
func (f *fakeOrders) AssignCourier(context.Context, uint64, uint64, entities.Actor) (*entities.Order, error) {
	return nil, nil
}

func (f *fakeOrders) ChangeStatus(_ context.Context, orderID, _ uint64, actor entities.Actor) (*entities.Order, error) {
	f.record("ChangeStatus", orderID, actor.Description)
	return &entities.Order{ID: orderID}, f.err
}

func (f *fakeOrders) ChangeStatusByEmployee(_ context.Context, orderID, _ uint64, e entities.Employee) (*entities.Order, error) {
	f.record("ChangeStatusByEmployee", orderID, e.FullName)
	return &entities.Order{ID: orderID}, f.err
}

func (f *fakeOrders) AcknowledgeReady(_ context.Context, orderID uint64, _ entities.PrepArea, e entities.Employee) (*entities.Order, bool, error) {
	f.record("AcknowledgeReady", orderID, e.FullName)
	return &entities.Order{ID: orderID}, f.repeated, f.err
}

func (f *fakeOrders) AcceptByWaiter(_ context.Context, orderID uint64, e entities.Employee) (*entities.Order, error) {
	f.record("AcceptByWaiter", orderID, e.FullName)
	return &entities.Order{ID: orderID}, f.err
}

type botFixture struct {
	controller *StaffBotController
	bot        *fakeBot
	employees  *fakeEmployees
	orders     *fakeOrders
	cache      *memoryCache
	echo       *echo.Echo
}

func newBotFixture(t *testing.T) *botFixture {
	t.Helper()
	f := &botFixture{
		bot:       &fakeBot{},
		employees: &fakeEmployees{byChat: map[int64]*entities.Employee{}},
		orders:    &fakeOrders{},
		cache:     &memoryCache{},
		echo:      echo.New(),
	}
	f.controller = NewStaffBotController(f.employees, f.orders, f.bot, f.cache,
		config.TelegramConfig{WebhookSecret: testSecret, AdminChatID: adminChatID}, zap.NewNop())
	f.echo.POST("/telegram/staff/:secret", f.controller.HandleWebhook)
	return f
}

func (f *botFixture) post(t *testing.T, secret, body string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/telegram/staff/"+secret, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	f.controller.Wait()
	return rec.Code
}

func messageUpdate(chatID int64, text string) string {
	return `{"update_id":1,"message":{"message_id":1,"from":{"id":` + itoa(chatID) + `},"chat":{"id":` + itoa(chatID) + `},"text":"` + text + `"}}`
}

func callbackUpdate(fromID, chatID int64, data string) string {
	return `{"update_id":2,"callback_query":{"id":"q1","from":{"id":` + itoa(fromID) + `,"first_name":"Іра"},` +
		`"message":{"message_id":5,"chat":{"id":` + itoa(chatID) + `}},"data":"` + data + `"}}`
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func TestHandleWebhook_RejectsWrongSecret(t *testing.T) {
	f := newBotFixture(t)

	code := f.post(t, "wrong", messageUpdate(waiterChatID, "/start"))

	assert.Equal(t, http.StatusNotFound, code)
	assert.Empty(t, f.bot.last(waiterChatID))
}

func TestHandleWebhook_EmptySecretRejectsEverything(t *testing.T) {
	f := newBotFixture(t)
	f.controller.cfg.WebhookSecret = ""

	assert.Equal(t, http.StatusNotFound, f.post(t, "", messageUpdate(waiterChatID, "/start")))
}

func TestLoginFlow(t *testing.T) {
	f := newBotFixture(t)

	require.Equal(t, http.StatusOK, f.post(t, testSecret, messageUpdate(waiterChatID, "/start")))
	assert.Contains(t, f.bot.last(waiterChatID), "Оберіть вашу роль")

	f.post(t, testSecret, messageUpdate(waiterChatID, entities.CapabilityServeTables.Title()))
	assert.Contains(t, f.bot.last(waiterChatID), "Надішліть свій номер")
	state, err := f.cache.Get(context.Background(), stateKey(waiterChatID))
	require.NoError(t, err)
	assert.Equal(t, string(entities.CapabilityServeTables), state)

	f.post(t, testSecret, messageUpdate(waiterChatID, "+380 67 123 45 67"))
	assert.Contains(t, f.bot.last(waiterChatID), "Ви увійшли як <b>Оля</b>")
	assert.Equal(t, []entities.Capability{entities.CapabilityServeTables}, f.employees.logins)

	_, err = f.cache.Get(context.Background(), stateKey(waiterChatID))
	assert.ErrorIs(t, err, repositories.ErrCacheMiss)
}

func TestLoginFlow_WrongRoleShowsMessage(t *testing.T) {
	f := newBotFixture(t)
	f.employees.loginErr = apperrors.ErrWrongRole
	require.NoError(t, f.cache.Set(context.Background(), stateKey(waiterChatID), string(entities.CapabilityBarOrders), time.Minute))

	f.post(t, testSecret, messageUpdate(waiterChatID, "0671234567"))

	assert.Contains(t, f.bot.last(waiterChatID), "недоступна для вашої ролі")
}

func TestLoginFlow_RejectsForeignContact(t *testing.T) {
	f := newBotFixture(t)
	require.NoError(t, f.cache.Set(context.Background(), stateKey(waiterChatID), string(entities.CapabilityServeTables), time.Minute))
	body := `{"update_id":3,"message":{"message_id":2,"from":{"id":501},"chat":{"id":501},` +
		`"contact":{"phone_number":"+380671234567","user_id":777}}}`

	f.post(t, testSecret, body)

	assert.Contains(t, f.bot.last(waiterChatID), "власний номер")
	assert.Empty(t, f.employees.logins)
}

func TestShiftButtons(t *testing.T) {
	f := newBotFixture(t)
	f.employees.byChat[waiterChatID] = &entities.Employee{ID: 3, FullName: "Оля"}

	f.post(t, testSecret, messageUpdate(waiterChatID, btnStartShift))
	assert.True(t, f.employees.byChat[waiterChatID].IsOnShift)
	assert.Contains(t, f.bot.last(waiterChatID), "Зміну розпочато")

	f.post(t, testSecret, messageUpdate(waiterChatID, btnEndShift))
	assert.False(t, f.employees.byChat[waiterChatID].IsOnShift)

	f.post(t, testSecret, messageUpdate(waiterChatID, btnLogout))
	assert.NotContains(t, f.employees.byChat, waiterChatID)
}

func TestShiftButtons_NotLinked(t *testing.T) {
	f := newBotFixture(t)

	f.post(t, testSecret, messageUpdate(unknownChatID, btnStartShift))

	assert.Contains(t, f.bot.last(unknownChatID), "/start")
}

func TestCallback_AcceptByWaiter(t *testing.T) {
	f := newBotFixture(t)
	f.employees.byChat[waiterChatID] = &entities.Employee{ID: 3, FullName: "Оля"}

	f.post(t, testSecret, callbackUpdate(waiterChatID, waiterChatID, notifications.AcceptCallback(42)))

	require.Len(t, f.orders.calls, 1)
	assert.Equal(t, orderCall{method: "AcceptByWaiter", orderID: 42, actor: "Оля"}, f.orders.calls[0])
	assert.Equal(t, []string{"🙋 Замовлення #42 ваше."}, f.bot.answers)

	require.Len(t, f.bot.edits, 1)
	assert.Equal(t, waiterChatID, f.bot.edits[0].chatID)
	assert.Equal(t, 5, f.bot.edits[0].messageID)
	assert.Contains(t, f.bot.edits[0].text, "Прийняв: <b>Оля</b>")
}

func TestCallback_AlreadyAccepted(t *testing.T) {
	f := newBotFixture(t)
	f.employees.byChat[waiterChatID] = &entities.Employee{ID: 3, FullName: "Оля"}
	f.orders.err = apperrors.ErrAlreadyAccepted

	f.post(t, testSecret, callbackUpdate(waiterChatID, waiterChatID, notifications.AcceptCallback(42)))

	assert.Equal(t, []string{"Це замовлення вже прийняв інший офіціант."}, f.bot.answers)
	assert.Empty(t, f.bot.edits)
}

func TestCallback_RepeatedReady(t *testing.T) {
	f := newBotFixture(t)
	f.employees.byChat[waiterChatID] = &entities.Employee{ID: 9, FullName: "Петро"}
	f.orders.repeated = true

	f.post(t, testSecret, callbackUpdate(waiterChatID, waiterChatID, notifications.ReadyCallback(entities.AreaBar, 7)))

	require.Len(t, f.bot.answers, 1)
	assert.Contains(t, f.bot.answers[0], "вже було готове")
}

func TestCallback_AdminChatActsAsAdministrator(t *testing.T) {
	f := newBotFixture(t)

	f.post(t, testSecret, callbackUpdate(unknownChatID, adminChatID, notifications.StatusCallback(5, 2)))

	require.Len(t, f.orders.calls, 1)
	assert.Equal(t, "ChangeStatus", f.orders.calls[0].method)
	assert.Equal(t, "Адміністратор: Іра", f.orders.calls[0].actor)
}

func TestCallback_UnknownUserOutsideAdminChat(t *testing.T) {
	f := newBotFixture(t)

	f.post(t, testSecret, callbackUpdate(unknownChatID, unknownChatID, notifications.StatusCallback(5, 2)))

	assert.Empty(t, f.orders.calls)
	assert.Equal(t, []string{"Ви не авторизовані. Натисніть /start"}, f.bot.answers)
}

func TestCallback_StaleData(t *testing.T) {
	f := newBotFixture(t)

	f.post(t, testSecret, callbackUpdate(waiterChatID, waiterChatID, "legacy:1"))

	assert.Equal(t, []string{"Кнопка застаріла."}, f.bot.answers)
}

func TestRequestDeduplicator(t *testing.T) {
	d := NewRequestDeduplicator()

	assert.True(t, d.TryAcquire(1, "cmd", time.Minute))
	assert.False(t, d.TryAcquire(1, "cmd", time.Minute))
	assert.True(t, d.TryAcquire(2, "cmd", time.Minute))
	assert.True(t, d.TryAcquire(1, "cb", time.Minute))
}
