package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jason-czar/Sportstreams/internal/service"
	"github.com/jason-czar/Sportstreams/internal/switcher"
	"github.com/jason-czar/Sportstreams/pkg/response"
)

// EventHandler translates the REST surface into coordinator and service
// calls.
type EventHandler struct {
	events      *service.EventService
	cameras     *service.CameraService
	chat        *service.ChatService
	coordinator *switcher.Coordinator
}

func NewEventHandler(
	events *service.EventService,
	cameras *service.CameraService,
	chat *service.ChatService,
	coordinator *switcher.Coordinator,
) *EventHandler {
	return &EventHandler{
		events:      events,
		cameras:     cameras,
		chat:        chat,
		coordinator: coordinator,
	}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine, session *SessionMiddleware) {
	api := r.Group("/api/v1")

	authed := api.Group("", session.RequireSession())
	{
		authed.POST("/events", h.CreateEvent)
		authed.GET("/events", h.ListEvents)
		authed.POST("/events/:id/start", h.StartEvent)
		authed.POST("/events/:id/stop", h.EndEvent)
		authed.POST("/events/:id/switch", h.SwitchCamera)
		authed.GET("/events/:id/switch-log", h.SwitchHistory)
		authed.POST("/events/:id/simulcast", h.EnableSimulcast)
		authed.DELETE("/events/:id/simulcast/:target_id", h.DisableSimulcast)
	}

	open := api.Group("", session.OptionalSession())
	{
		open.GET("/events/:id", h.GetEvent)
		// Kept off the /events subtree: a static "join" segment cannot
		// coexist with the :id wildcard in gin's route tree.
		open.GET("/join/:code", h.GetEventByJoinCode)
		open.POST("/events/:id/cameras", h.RegisterCamera)
		open.GET("/events/:id/cameras", h.ListCameras)
		open.POST("/cameras/:id/live", h.SetCameraLiveness)
		open.GET("/events/:id/chat", h.ChatHistory)
		open.POST("/events/:id/chat", h.PostChatMessage)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

type createEventRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "event name is required")
		return
	}

	user, _ := currentUser(c)
	event, err := h.events.CreateEvent(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, event)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	user, _ := currentUser(c)
	events, err := h.events.ListEvents(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	detail, err := h.events.GetEventDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, detail)
}

func (h *EventHandler) GetEventByJoinCode(c *gin.Context) {
	event, err := h.events.GetEventByJoinCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, event)
}

func (h *EventHandler) StartEvent(c *gin.Context) {
	if !h.requireOwner(c) {
		return
	}
	event, err := h.events.StartEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, event)
}

func (h *EventHandler) EndEvent(c *gin.Context) {
	if !h.requireOwner(c) {
		return
	}
	event, err := h.events.EndEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, event)
}

type switchRequest struct {
	CameraID string `json:"camera_id" binding:"required"`
}

func (h *EventHandler) SwitchCamera(c *gin.Context) {
	if !h.requireOwner(c) {
		return
	}

	var req switchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "camera_id is required")
		return
	}

	activeID, err := h.coordinator.SwitchCamera(c.Request.Context(), c.Param("id"), req.CameraID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"active_camera_id": activeID})
}

// SwitchHistory exposes the audit trail to the event's director.
func (h *EventHandler) SwitchHistory(c *gin.Context) {
	if !h.requireOwner(c) {
		return
	}

	entries, err := h.events.SwitchHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, entries)
}

type registerCameraRequest struct {
	Label        string `json:"label" binding:"required"`
	OperatorName string `json:"operator_name"`
}

func (h *EventHandler) RegisterCamera(c *gin.Context) {
	var req registerCameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "camera label is required")
		return
	}

	params := service.RegisterCameraParams{
		EventID:      c.Param("id"),
		Label:        req.Label,
		OperatorName: req.OperatorName,
	}
	if user, ok := currentUser(c); ok {
		params.OperatorUserID = &user.ID
		if params.OperatorName == "" {
			params.OperatorName = user.Username
		}
	}

	camera, err := h.cameras.RegisterCamera(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}

	// Registration is the one response that includes ingest credentials.
	response.Created(c, gin.H{
		"camera":     camera,
		"stream_key": camera.StreamKey,
		"ingest_url": camera.IngestURL,
	})
}

func (h *EventHandler) ListCameras(c *gin.Context) {
	cameras, err := h.cameras.ListCameras(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, cameras)
}

type livenessRequest struct {
	IsLive *bool `json:"is_live" binding:"required"`
}

func (h *EventHandler) SetCameraLiveness(c *gin.Context) {
	var req livenessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "is_live is required")
		return
	}

	if err := h.coordinator.SetCameraLiveness(c.Request.Context(), c.Param("id"), *req.IsLive); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"camera_id": c.Param("id"), "is_live": *req.IsLive})
}

type simulcastRequest struct {
	Platform  string `json:"platform" binding:"required"`
	URL       string `json:"url" binding:"required"`
	StreamKey string `json:"stream_key" binding:"required"`
}

func (h *EventHandler) EnableSimulcast(c *gin.Context) {
	if !h.requireOwner(c) {
		return
	}

	var req simulcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "platform, url, and stream_key are required")
		return
	}

	target, err := h.events.EnableSimulcast(c.Request.Context(), c.Param("id"), req.Platform, req.URL, req.StreamKey)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, target)
}

func (h *EventHandler) DisableSimulcast(c *gin.Context) {
	if !h.requireOwner(c) {
		return
	}

	if err := h.events.DisableSimulcast(c.Request.Context(), c.Param("id"), c.Param("target_id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

func (h *EventHandler) ChatHistory(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			response.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	messages, err := h.chat.History(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, messages)
}

type chatRequest struct {
	DisplayName string `json:"display_name"`
	Body        string `json:"body" binding:"required"`
}

func (h *EventHandler) PostChatMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "message body is required")
		return
	}

	var userID *string
	displayName := req.DisplayName
	if user, ok := currentUser(c); ok {
		userID = &user.ID
		if displayName == "" {
			displayName = user.Username
		}
	}
	if displayName == "" {
		displayName = "anonymous"
	}

	msg, err := h.chat.PostMessage(c.Request.Context(), c.Param("id"), userID, displayName, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, msg)
}

// requireOwner loads the event and checks the session user owns it. Writes
// the error response and returns false when the check fails.
func (h *EventHandler) requireOwner(c *gin.Context) bool {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "valid session required")
		return false
	}

	event, err := h.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return false
	}
	if event.OwnerID != user.ID {
		response.Forbidden(c, "only the event owner may do this")
		return false
	}
	return true
}
