// Package appcatalog serves the static reference list of connectable
// third-party apps. Tasks reference these by id; dangling ids are tolerated
// and rendered as unknown by clients.
package appcatalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

type App struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

var Module = fx.Module("appcatalog.module",
	fx.Invoke(RegisterRoutes),
)

var available = []App{
	{ID: "gmail", Name: "Gmail", Category: "email", Description: "Email service by Google"},
	{ID: "slack", Name: "Slack", Category: "communication", Description: "Team communication platform"},
	{ID: "notion", Name: "Notion", Category: "productivity", Description: "All-in-one workspace"},
	{ID: "trello", Name: "Trello", Category: "productivity", Description: "Project management tool"},
	{ID: "github", Name: "GitHub", Category: "development", Description: "Code hosting platform"},
	{ID: "drive", Name: "Google Drive", Category: "storage", Description: "Cloud storage service"},
	{ID: "sheets", Name: "Google Sheets", Category: "productivity", Description: "Online spreadsheets"},
	{ID: "calendar", Name: "Google Calendar", Category: "calendar", Description: "Scheduling and calendars"},
}

// Available returns the catalog in a stable order.
func Available() []App {
	out := make([]App, len(available))
	copy(out, available)
	return out
}

// Lookup resolves an app id. ok is false for dangling references.
func Lookup(id string) (App, bool) {
	for _, app := range available {
		if app.ID == id {
			return app, true
		}
	}
	return App{}, false
}

func RegisterRoutes(r *gin.Engine) {
	r.GET("/apps", func(c *gin.Context) {
		c.JSON(http.StatusOK, Available())
	})
}
