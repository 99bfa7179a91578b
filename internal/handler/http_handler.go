package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/internal/service"
	pkglog "github.com/avinash-a11y/insta-clone/pkg/log"
	"github.com/avinash-a11y/insta-clone/pkg/response"
)

// Handler exposes the social core over HTTP. Routing stays thin: bind,
// delegate, map coded errors onto the response envelope.
type Handler struct {
	users         service.UserService
	graph         service.SocialGraphService
	content       service.ContentService
	feed          service.FeedService
	engagement    service.EngagementService
	search        service.SearchService
	notifications service.NotificationService
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	users service.UserService,
	graph service.SocialGraphService,
	content service.ContentService,
	feed service.FeedService,
	engagement service.EngagementService,
	search service.SearchService,
	notifications service.NotificationService,
) *Handler {
	return &Handler{
		users:         users,
		graph:         graph,
		content:       content,
		feed:          feed,
		engagement:    engagement,
		search:        search,
		notifications: notifications,
	}
}

// RegisterRoutes registers all routes onto the Gin engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Signup)
			auth.POST("/signin", h.Signin)
		}

		users := api.Group("/users")
		{
			users.GET("/:username", h.GetProfile)
			users.GET("/:username/posts", h.ListUserPosts)
			users.GET("/:username/liked", h.ListLikedPosts)
			users.GET("/:username/followers/count", h.GetFollowersCount)
			users.POST("/:username/follow", h.Follow)
			users.DELETE("/:username/follow", h.Unfollow)
			users.GET("/:username/follow/status", h.FollowStatus)
		}

		posts := api.Group("/posts")
		{
			posts.POST("", h.CreatePost)
			posts.GET("", h.PostFeed)
			posts.GET("/:id", h.GetPost)
			posts.PUT("/:id/like", h.ToggleLike)
			posts.POST("/:id/comments", h.AddComment)
		}

		stories := api.Group("/stories")
		{
			stories.POST("", h.CreateStory)
			stories.GET("/feed", h.StoryFeed)
		}

		api.GET("/search", h.Search)

		notifications := api.Group("/notifications")
		{
			notifications.GET("", h.ListNotifications)
			notifications.POST("/read", h.MarkNotificationRead)
			notifications.POST("/read-all", h.MarkAllNotificationsRead)
		}
	}
}

// Signup handles POST /api/v1/auth/signup.
func (h *Handler) Signup(c *gin.Context) {
	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.users.Signup(c.Request.Context(), &req)
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Created(c, profile)
}

// Signin handles POST /api/v1/auth/signin.
func (h *Handler) Signin(c *gin.Context) {
	var req domain.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.users.Signin(c.Request.Context(), &req)
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, profile)
}

// GetProfile handles GET /api/v1/users/:username.
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.users.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, profile)
}

// ListUserPosts handles GET /api/v1/users/:username/posts.
func (h *Handler) ListUserPosts(c *gin.Context) {
	posts, err := h.content.ListPostsByAuthor(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, gin.H{"posts": posts})
}

// ListLikedPosts handles GET /api/v1/users/:username/liked.
func (h *Handler) ListLikedPosts(c *gin.Context) {
	posts, err := h.content.ListPostsLikedBy(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, gin.H{"liked_posts": posts})
}

// GetFollowersCount handles GET /api/v1/users/:username/followers/count.
func (h *Handler) GetFollowersCount(c *gin.Context) {
	count, err := h.graph.FollowersCount(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, gin.H{"count": count})
}

// followRequest names the acting follower for follow/unfollow calls.
type followRequest struct {
	Username string `json:"username" binding:"required"`
}

// Follow handles POST /api/v1/users/:username/follow. The body names the
// follower; the path names the target.
func (h *Handler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	changed, err := h.graph.Follow(c.Request.Context(), req.Username, c.Param("username"))
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, gin.H{"changed": changed})
}

// Unfollow handles DELETE /api/v1/users/:username/follow.
func (h *Handler) Unfollow(c *gin.Context) {
	follower := c.Query("username")
	if follower == "" {
		response.BadRequest(c, "username is required")
		return
	}

	changed, err := h.graph.Unfollow(c.Request.Context(), follower, c.Param("username"))
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, gin.H{"changed": changed})
}

// FollowStatus handles GET /api/v1/users/:username/follow/status.
func (h *Handler) FollowStatus(c *gin.Context) {
	follower := c.Query("username")
	if follower == "" {
		response.BadRequest(c, "username is required")
		return
	}

	following, err := h.graph.IsFollowing(c.Request.Context(), follower, c.Param("username"))
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, gin.H{"is_following": following})
}

// CreatePost handles POST /api/v1/posts.
func (h *Handler) CreatePost(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.content.CreatePost(c.Request.Context(), &req)
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Created(c, gin.H{"post": post})
}

// PostFeed handles GET /api/v1/posts.
func (h *Handler) PostFeed(c *gin.Context) {
	posts, err := h.feed.ComposePostFeed(c.Request.Context())
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, gin.H{"posts": posts})
}

// GetPost handles GET /api/v1/posts/:id.
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.content.GetPostByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, gin.H{"post": post})
}

// ToggleLike handles PUT /api/v1/posts/:id/like.
func (h *Handler) ToggleLike(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.engagement.ToggleLike(c.Request.Context(), c.Param("id"), req.Username)
	if err != nil {
		if errors.Is(err, service.ErrLikeConflict) {
			pkglog.Ctx(c.Request.Context()).Warn().
				Str(pkglog.FieldPostID, c.Param("id")).
				Msg("like toggle conflict")
		}
		response.FromAppError(c, err)
		return
	}

	response.Success(c, result)
}

// AddComment handles POST /api/v1/posts/:id/comments.
func (h *Handler) AddComment(c *gin.Context) {
	var req domain.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.engagement.AddComment(c.Request.Context(), c.Param("id"), req.Username, req.Text)
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, gin.H{"comment": comment})
}

// CreateStory handles POST /api/v1/stories.
func (h *Handler) CreateStory(c *gin.Context) {
	var req domain.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	story, err := h.content.CreateStory(c.Request.Context(), &req)
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Created(c, gin.H{"story": story})
}

// StoryFeed handles GET /api/v1/stories/feed.
func (h *Handler) StoryFeed(c *gin.Context) {
	viewer := c.Query("username")
	if viewer == "" {
		response.BadRequest(c, "username is required")
		return
	}

	feed, err := h.feed.ComposeStoryFeed(c.Request.Context(), viewer)
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, feed)
}

// Search handles GET /api/v1/search.
func (h *Handler) Search(c *gin.Context) {
	result, err := h.search.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, result)
}

// ListNotifications handles GET /api/v1/notifications.
func (h *Handler) ListNotifications(c *gin.Context) {
	recipient := c.Query("username")
	if recipient == "" {
		response.BadRequest(c, "username is required")
		return
	}

	var filter domain.NotificationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	list, err := h.notifications.List(c.Request.Context(), recipient, filter)
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, list)
}

// markReadRequest identifies one notification to mark as read.
type markReadRequest struct {
	Username string `json:"username" binding:"required"`
	ID       string `json:"id" binding:"required"`
}

// MarkNotificationRead handles POST /api/v1/notifications/read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	list, err := h.notifications.MarkRead(c.Request.Context(), req.Username, req.ID)
	if err != nil {
		response.FromAppError(c, err)
		return
	}

	response.Success(c, list)
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all.
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.notifications.MarkAllRead(c.Request.Context(), req.Username); err != nil {
		response.FromAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
