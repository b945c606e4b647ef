package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	CreateEvent(c *ginext.Context)
	GetEvent(c *ginext.Context)
	ListEvents(c *ginext.Context)
	ApproveEvent(c *ginext.Context)
	RejectEvent(c *ginext.Context)
	DeleteEvent(c *ginext.Context)
	SaveEvent(c *ginext.Context)
	UnsaveEvent(c *ginext.Context)
	ListSavedEvents(c *ginext.Context)
	ListNotifications(c *ginext.Context)
	MarkNotificationRead(c *ginext.Context)
	UnreadCount(c *ginext.Context)
	SyncPushToken(c *ginext.Context)
	TriggerReminders(c *ginext.Context)
	StorageCleanup(c *ginext.Context)
	Upload(c *ginext.Context)
	CreateUser(c *ginext.Context)
	ListUsers(c *ginext.Context)
}

func InitRouter(mode string, h Handler, auth, admin ginext.HandlerFunc, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Public directory
		api.GET("/events", h.ListEvents)
		api.GET("/events/:id", h.GetEvent)

		// Authenticated
		authed := api.Group("", auth)
		{
			authed.POST("/events", h.CreateEvent)
			authed.POST("/events/:id/save", h.SaveEvent)
			authed.DELETE("/events/:id/save", h.UnsaveEvent)
			authed.GET("/me/saved", h.ListSavedEvents)
			authed.GET("/me/notifications", h.ListNotifications)
			authed.POST("/me/notifications/:id/read", h.MarkNotificationRead)
			authed.GET("/me/notifications/unread-count", h.UnreadCount)
			authed.POST("/push/token", h.SyncPushToken)
			authed.POST("/users", h.CreateUser)
		}

		// Admin only
		adm := api.Group("", auth, admin)
		{
			adm.POST("/events/:id/approve", h.ApproveEvent)
			adm.POST("/events/:id/reject", h.RejectEvent)
			adm.DELETE("/events/:id", h.DeleteEvent)
			adm.POST("/admin/reminders/trigger", h.TriggerReminders)
			adm.POST("/admin/storage-cleanup", h.StorageCleanup)
			adm.POST("/upload", h.Upload)
			adm.GET("/users", h.ListUsers)
		}
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
