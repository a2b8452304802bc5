package ws

import (
	connectionhub "ats-backend/lib/ws/hub/connection-hub"
	"ats-backend/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		userID := middleware.GetUserID(ctx)
		ctx.Locals("userID", userID)
		return ctx.Next()
	})
	app.Get("/", websocket.New(pushHandler))
}

// pushHandler keeps the dashboard socket open; the server only pushes,
// client frames are read and dropped to detect disconnect.
func pushHandler(c *websocket.Conn) {
	userID := c.Locals("userID").(string)
	connectionhub.Instance.AddClient(userID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(userID)
	}()
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
