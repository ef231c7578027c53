// handlers/feed.go - Live announcement feed over websocket
package handlers

import (
	"time"

	"hacksphere/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const feedPingPeriod = 30 * time.Second

// FeedUpgrade rejects plain HTTP requests to the websocket endpoint. When
// OptionalAuth resolved an identity, the viewer's institute and team are
// stashed in locals so the socket can scope its stream.
func FeedUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if userID, err := middleware.GetUserID(c); err == nil {
		c.Locals("feedInstitute", middleware.GetInstituteID(c))
		if user, err := appStore.Users().GetByID(userID); err == nil {
			c.Locals("feedTeam", user.TeamID)
		}
	}
	return c.Next()
}

// FeedSocket streams announcements to the client as they are published,
// scoped to audiences the viewer can see. Anonymous connections get the
// "all" audience only. The read loop exists only to notice the client
// going away.
func FeedSocket(conn *websocket.Conn) {
	instituteID, _ := conn.Locals("feedInstitute").(string)
	teamID, _ := conn.Locals("feedTeam").(*uint)

	events := feedHub.Subscribe()
	defer feedHub.Unsubscribe(events)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case a, ok := <-events:
			if !ok {
				return
			}
			if !a.VisibleTo(instituteID, teamID) {
				continue
			}
			if err := conn.WriteJSON(fiber.Map{"type": "announcement", "data": a}); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// FeedStatus reports the live subscriber count.
func FeedStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"clients": feedHub.Count()})
}
