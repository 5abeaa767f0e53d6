package controllers

import (
	"net/http"

	"restaurant-system/pkg/middleware"
	appwebsocket "restaurant-system/pkg/websocket"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketController подключает дашборд администратора. Токен уже проверен QueryToken.
type WebSocketController struct {
	hub    *appwebsocket.Hub
	logger *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{hub: hub, logger: logger}
}

func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	login, _ := middleware.AdminLogin(ctx.Request().Context())

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: не удалось улучшить соединение", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn, login)
	c.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("WebSocket: клиент успешно подключен", zap.String("login", login))
	return nil
}
