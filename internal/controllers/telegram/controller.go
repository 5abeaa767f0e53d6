package telegram

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"restaurant-system/internal/repositories"
	"restaurant-system/internal/services"
	"restaurant-system/pkg/config"
	tgapi "restaurant-system/pkg/telegram"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	staffStateKey         = "tg_staff_state:%d"
	stateExpiration       = 30 * time.Minute
	maxMessageAge         = 2 * time.Minute
	commandCooldown       = 1000 * time.Millisecond
	callbackCooldown      = 500 * time.Millisecond
	goroutineTimeout      = 45 * time.Second
	maxConcurrentRequests = 50
)

// StaffBotController - вебхук бота персонала: вход по телефону, смены и inline-кнопки заказов.
type StaffBotController struct {
	employees    services.EmployeeServiceInterface
	orders       services.OrderServiceInterface
	bot          tgapi.ServiceInterface
	cache        repositories.CacheRepositoryInterface
	deduplicator *RequestDeduplicator
	cfg          config.TelegramConfig
	logger       *zap.Logger

	sem      chan struct{}
	inflight sync.WaitGroup
	now      func() time.Time
}

func NewStaffBotController(
	employees services.EmployeeServiceInterface,
	orders services.OrderServiceInterface,
	bot tgapi.ServiceInterface,
	cache repositories.CacheRepositoryInterface,
	cfg config.TelegramConfig,
	logger *zap.Logger,
) *StaffBotController {
	return &StaffBotController{
		employees:    employees,
		orders:       orders,
		bot:          bot,
		cache:        cache,
		deduplicator: NewRequestDeduplicator(),
		cfg:          cfg,
		logger:       logger,
		sem:          make(chan struct{}, maxConcurrentRequests),
		now:          time.Now,
	}
}

// HandleWebhook отвечает Telegram сразу, обработка идёт в фоне.
func (c *StaffBotController) HandleWebhook(ctx echo.Context) error {
	if !c.secretMatches(ctx.Param("secret")) {
		return ctx.NoContent(http.StatusNotFound)
	}

	var update tgapi.Update
	if err := ctx.Bind(&update); err != nil {
		return ctx.NoContent(http.StatusOK)
	}

	if query := update.CallbackQuery; query != nil {
		if !c.deduplicator.TryAcquire(query.From.ID, "cb", callbackCooldown) {
			c.spawn("answerDuplicate", func(bgCtx context.Context) {
				_ = c.bot.AnswerCallbackQuery(bgCtx, query.ID, "")
			})
			return ctx.NoContent(http.StatusOK)
		}
		c.spawn("handleCallback", func(bgCtx context.Context) { c.handleCallback(bgCtx, query) })
	}

	if msg := update.Message; msg != nil && c.isRecent(msg) {
		if strings.HasPrefix(msg.Text, "/") && !c.deduplicator.TryAcquire(msg.Chat.ID, "cmd", commandCooldown) {
			return ctx.NoContent(http.StatusOK)
		}
		c.spawn("handleMessage", func(bgCtx context.Context) { c.handleMessage(bgCtx, msg) })
	}
	return ctx.NoContent(http.StatusOK)
}

// Wait ждёт фоновые обработчики. Нужен при остановке сервера и в тестах.
func (c *StaffBotController) Wait() {
	c.inflight.Wait()
}

// RunCleanup чистит устаревшие ключи антиспама до отмены ctx.
func (c *StaffBotController) RunCleanup(ctx context.Context) {
	c.deduplicator.Cleanup(ctx, time.Minute)
}

func (c *StaffBotController) spawn(name string, fn func(ctx context.Context)) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer c.recoverPanic(name)

		c.sem <- struct{}{}
		defer func() { <-c.sem }()

		bgCtx, cancel := context.WithTimeout(context.Background(), goroutineTimeout)
		defer cancel()
		fn(bgCtx)
	}()
}

func (c *StaffBotController) secretMatches(given string) bool {
	if c.cfg.WebhookSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.cfg.WebhookSecret), []byte(given)) == 1
}

// isRecent - после простоя бота старые сообщения не обрабатываем. Кнопки живут дольше, их не проверяем.
func (c *StaffBotController) isRecent(msg *tgapi.Message) bool {
	if msg.Date <= 0 {
		return true
	}
	return c.now().Sub(time.Unix(msg.Date, 0)) <= maxMessageAge
}

func (c *StaffBotController) recoverPanic(funcName string) {
	if r := recover(); r != nil {
		c.logger.Error("PANIC в горутине",
			zap.String("function", funcName),
			zap.Any("panic", r),
			zap.Stack("stacktrace"))
	}
}

func (c *StaffBotController) send(ctx context.Context, chatID int64, text string, options ...tgapi.MessageOption) {
	options = append(options, tgapi.WithHTML())
	if err := c.bot.SendMessageEx(ctx, chatID, text, options...); err != nil {
		c.logger.Error("Не удалось отправить сообщение боту персонала", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func stateKey(chatID int64) string {
	return fmt.Sprintf(staffStateKey, chatID)
}
