package routes

import (
	"restaurant-system/internal/controllers/telegram"

	"github.com/labstack/echo/v4"
)

// Секрет в пути: без него вебхук отвечает 404.
func runTelegramRouter(api *echo.Group, staffBot *telegram.StaffBotController) {
	api.POST("/telegram/webhook/:secret", staffBot.HandleWebhook)
}
