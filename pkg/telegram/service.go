// Файл: pkg/telegram/service.go
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.telegram.org"

// --- ОСНОВНОЙ ИНТЕРФЕЙС СЕРВИСА ---

type ServiceInterface interface {
	SendMessageEx(ctx context.Context, chatID int64, text string, options ...MessageOption) error
	AnswerCallbackQuery(ctx context.Context, callbackQueryID string, text string) error
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, options ...MessageOption) error
	SetWebhook(ctx context.Context, url, secretToken string) error
}

// --- СТРУКТУРА СЕРВИСА ---

type Service struct {
	botToken   string
	apiURL     string
	httpClient *http.Client
	debug      bool
}

type ServiceOption func(*Service)

// WithAPIURL - другой адрес Bot API (локальный bot-api сервер или тесты).
func WithAPIURL(url string) ServiceOption {
	return func(s *Service) { s.apiURL = url }
}

func WithDebug(debug bool) ServiceOption {
	return func(s *Service) { s.debug = debug }
}

func NewService(botToken string, opts ...ServiceOption) *Service {
	s := &Service{
		botToken:   botToken,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- ОСНОВНЫЕ СТРУКТУРЫ ЗАПРОСОВ ---

type sendMessageRequest struct {
	ChatID      int64       `json:"chat_id"`
	Text        string      `json:"text"`
	ParseMode   string      `json:"parse_mode,omitempty"`
	ReplyMarkup interface{} `json:"reply_markup,omitempty"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type ReplyKeyboardButton struct {
	Text           string `json:"text"`
	RequestContact bool   `json:"request_contact,omitempty"`
}

type replyKeyboardMarkup struct {
	Keyboard        [][]ReplyKeyboardButton `json:"keyboard"`
	ResizeKeyboard  bool                    `json:"resize_keyboard"`
	OneTimeKeyboard bool                    `json:"one_time_keyboard,omitempty"`
}

type callbackQueryRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
}

type editMessageTextRequest struct {
	ChatID      int64       `json:"chat_id"`
	MessageID   int         `json:"message_id"`
	Text        string      `json:"text"`
	ParseMode   string      `json:"parse_mode,omitempty"`
	ReplyMarkup interface{} `json:"reply_markup,omitempty"`
}

type setWebhookRequest struct {
	URL            string   `json:"url"`
	SecretToken    string   `json:"secret_token,omitempty"`
	AllowedUpdates []string `json:"allowed_updates"`
}

type MessageOption func(*sendMessageRequest)

func WithKeyboard(rows [][]InlineKeyboardButton) MessageOption {
	return func(req *sendMessageRequest) {
		if len(rows) > 0 {
			req.ReplyMarkup = inlineKeyboardMarkup{InlineKeyboard: rows}
		}
	}
}

func WithHTML() MessageOption {
	return func(req *sendMessageRequest) {
		req.ParseMode = "HTML"
	}
}

func WithReplyKeyboard(rows [][]ReplyKeyboardButton) MessageOption {
	return func(req *sendMessageRequest) {
		if len(rows) > 0 {
			req.ReplyMarkup = replyKeyboardMarkup{
				Keyboard:       rows,
				ResizeKeyboard: true,
			}
		}
	}
}

func WithRemoveKeyboard() MessageOption {
	return func(req *sendMessageRequest) {
		req.ReplyMarkup = map[string]bool{"remove_keyboard": true}
	}
}

func (s *Service) SendMessageEx(ctx context.Context, chatID int64, text string, options ...MessageOption) error {
	reqPayload := &sendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}

	for _, opt := range options {
		opt(reqPayload)
	}

	return s.sendRequest(ctx, "sendMessage", reqPayload)
}

func (s *Service) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, options ...MessageOption) error {
	if messageID == 0 {
		return s.SendMessageEx(ctx, chatID, text, options...)
	}

	tempSendReq := &sendMessageRequest{}
	for _, opt := range options {
		opt(tempSendReq)
	}

	editReq := &editMessageTextRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   tempSendReq.ParseMode,
		ReplyMarkup: tempSendReq.ReplyMarkup,
	}

	return s.sendRequest(ctx, "editMessageText", editReq)
}

// Ответ на callback-кнопку
func (s *Service) AnswerCallbackQuery(ctx context.Context, callbackQueryID string, text string) error {
	if callbackQueryID == "" {
		return fmt.Errorf("callbackQueryID не может быть пустым")
	}

	reqPayload := callbackQueryRequest{
		CallbackQueryID: callbackQueryID,
		Text:            text,
	}
	return s.sendRequest(ctx, "answerCallbackQuery", reqPayload)
}

func (s *Service) SetWebhook(ctx context.Context, url, secretToken string) error {
	return s.sendRequest(ctx, "setWebhook", setWebhookRequest{
		URL:            url,
		SecretToken:    secretToken,
		AllowedUpdates: []string{"message", "callback_query"},
	})
}

// --- ВСПОМОГАТЕЛЬНЫЕ ФУНКЦИИ ---

func (s *Service) sendRequest(ctx context.Context, methodName string, payload interface{}) error {
	if s.botToken == "" {
		return fmt.Errorf("токен Telegram-бота не установлен")
	}

	apiURL := fmt.Sprintf("%s/bot%s/%s", s.apiURL, s.botToken, methodName)

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка сериализации JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка отправки запроса в Telegram: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if s.debug {
		fmt.Printf("[telegram] %s\nRequest: %s\nResponse: %s\n\n", methodName, string(reqBody), string(body))
	}

	var telegramResp struct {
		OK          bool            `json:"ok"`
		Description string          `json:"description,omitempty"`
		ErrorCode   int             `json:"error_code,omitempty"`
		Result      json.RawMessage `json:"result,omitempty"`
	}

	if err := json.Unmarshal(body, &telegramResp); err != nil {
		return fmt.Errorf("ошибка декодирования ответа Telegram API: %w", err)
	}

	if !telegramResp.OK {
		return fmt.Errorf("telegram API ошибка (%s): код %d, описание: %s", methodName, telegramResp.ErrorCode, telegramResp.Description)
	}

	return nil
}

// EscapeHTML экранирует пользовательский текст для parse_mode=HTML.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}
