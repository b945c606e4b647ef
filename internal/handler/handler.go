package handler

import (
	"context"
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/handler/dto"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/middleware"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/service"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/service/ports"
	"github.com/wb-go/wbf/ginext"
)

type EventSvc interface {
	Create(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type SavedSvc interface {
	Save(ctx context.Context, userID, eventID string) error
	Unsave(ctx context.Context, userID, eventID string) error
	ListEvents(ctx context.Context, userID string) ([]*domain.Event, error)
	Count(ctx context.Context, userID string) (int, error)
}

type UserSvc interface {
	Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type NotificationSvc interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
	RegisterToken(ctx context.Context, userID string, chatID int64) error
	RemoveToken(ctx context.Context, userID string, chatID int64) error
}

type ReminderSvc interface {
	Sweep(ctx context.Context, now time.Time, opts service.SweepOptions) (*service.SweepResult, error)
}

type ReconcilerSvc interface {
	Reconcile(ctx context.Context) (*service.ReconcileResult, error)
}

type Handler struct {
	eventService        EventSvc
	savedService        SavedSvc
	userService         UserSvc
	notificationService NotificationSvc
	reminderService     ReminderSvc
	reconcilerService   ReconcilerSvc
	store               ports.ObjectStore
}

func NewHandler(
	eventService EventSvc,
	savedService SavedSvc,
	userService UserSvc,
	notificationService NotificationSvc,
	reminderService ReminderSvc,
	reconcilerService ReconcilerSvc,
	store ports.ObjectStore,
) *Handler {
	return &Handler{
		eventService:        eventService,
		savedService:        savedService,
		userService:         userService,
		notificationService: notificationService,
		reminderService:     reminderService,
		reconcilerService:   reconcilerService,
		store:               store,
	}
}

// Events

func (h *Handler) CreateEvent(c *ginext.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	input := domain.CreateEventInput{
		Title:            req.Title,
		Description:      req.Description,
		Date:             date,
		Time:             req.Time,
		Venue:            req.Venue,
		Category:         domain.Category(req.Category),
		ImageURL:         req.ImageURL,
		DocumentURL:      req.DocumentURL,
		Organizer:        req.Organizer,
		CreatedBy:        user.Email,
		UserID:           user.ID,
		RegistrationLink: req.RegistrationLink,
		SocialLink:       req.SocialLink,
		EntryFee:         req.EntryFee,
		ExpectedAudience: req.ExpectedAudience,
	}

	event, err := h.eventService.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *Handler) GetEvent(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *Handler) ListEvents(c *ginext.Context) {
	events, err := h.eventService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.ToEventResponse(e))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ApproveEvent(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	if err := h.eventService.Approve(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"success": true})
}

func (h *Handler) RejectEvent(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	if err := h.eventService.Reject(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"success": true})
}

func (h *Handler) DeleteEvent(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"success": true})
}

// Saved events

func (h *Handler) SaveEvent(c *ginext.Context) {
	eventID := c.Param("id")
	if _, err := uuid.Parse(eventID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	if err := h.savedService.Save(c.Request.Context(), userID, eventID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"saved": true})
}

func (h *Handler) UnsaveEvent(c *ginext.Context) {
	eventID := c.Param("id")
	if _, err := uuid.Parse(eventID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	if err := h.savedService.Unsave(c.Request.Context(), userID, eventID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"saved": false})
}

func (h *Handler) ListSavedEvents(c *ginext.Context) {
	userID := c.GetString(middleware.ContextUserID)

	events, err := h.savedService.ListEvents(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.ToEventResponse(e))
	}

	c.JSON(http.StatusOK, resp)
}

// Notifications

func (h *Handler) ListNotifications(c *ginext.Context) {
	userID := c.GetString(middleware.ContextUserID)

	items, err := h.notificationService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		resp = append(resp, dto.ToNotificationResponse(n))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) MarkNotificationRead(c *ginext.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := h.notificationService.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"read": true})
}

func (h *Handler) UnreadCount(c *ginext.Context) {
	userID := c.GetString(middleware.ContextUserID)

	count, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"count": count})
}

func (h *Handler) SyncPushToken(c *ginext.Context) {
	var req dto.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	userID := c.GetString(middleware.ContextUserID)

	var err error
	if req.Action == "remove" {
		err = h.notificationService.RemoveToken(c.Request.Context(), userID, req.DeviceToken)
	} else {
		err = h.notificationService.RegisterToken(c.Request.Context(), userID, req.DeviceToken)
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"success": true})
}

// Admin

func (h *Handler) TriggerReminders(c *ginext.Context) {
	// The body is optional; an empty or malformed one means a real sweep.
	var req dto.ReminderTriggerRequest
	_ = c.ShouldBindJSON(&req)

	opts := service.SweepOptions{}
	if req.TestMode {
		opts.TestMode = true
		opts.UserID = c.GetString(middleware.ContextUserID)
	}

	res, err := h.reminderService.Sweep(c.Request.Context(), time.Now(), opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSweepResponse(res))
}

func (h *Handler) StorageCleanup(c *ginext.Context) {
	res, err := h.reconcilerService.Reconcile(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CleanupResponse{
		Deleted: res.Deleted,
		Total:   res.Total,
		Errors:  res.Errors,
	})
}

func (h *Handler) Upload(c *ginext.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "file is required"})
		return
	}

	fileName := c.PostForm("file_name")
	if fileName == "" {
		fileName = uuid.New().String() + path.Ext(file.Filename)
	}

	src, err := file.Open()
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer src.Close()

	url, err := h.store.Put(
		c.Request.Context(), fileName, src, file.Size,
		file.Header.Get("Content-Type"),
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"url": url})
}

// Users

func (h *Handler) CreateUser(c *ginext.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	input := domain.CreateUserInput{
		Email: req.Email,
		Name:  req.Name,
		Role:  domain.Role(req.Role),
	}

	user, err := h.userService.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *Handler) ListUsers(c *ginext.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.ToUserResponse(u))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrSavedEventNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
