package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"psytech/internal/domain/models"
	"psytech/internal/lib/logger/sl"
	"psytech/internal/scheduler"
	generator "psytech/internal/services/generator_service"
	"psytech/internal/storage"
	"psytech/internal/transport/http/dto/request"
	"psytech/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	_ "psytech/docs"
)

type PostService interface {
	CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, postID uuid.UUID, patch models.PostPatch) (*models.Post, error)
	PublishPost(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	UnpublishPost(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error
	GetPost(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	ListAllPosts(ctx context.Context) ([]models.Post, error)
	ListPublishedPosts(ctx context.Context, filter models.PostFilter) (models.PostPage, error)
	GetPublishedPost(ctx context.Context, slug string) (*models.Post, error)
	TagCounts(ctx context.Context) ([]models.TagCount, error)
}

type ContactService interface {
	Submit(ctx context.Context, in models.ContactInput) (*models.ContactSubmission, error)
	List(ctx context.Context) ([]models.ContactSubmission, error)
	Get(ctx context.Context, contactID uuid.UUID) (*models.ContactSubmission, error)
}

type StatusService interface {
	CreateStatusCheck(ctx context.Context, clientName string) (*models.StatusCheck, error)
	ListStatusChecks(ctx context.Context) ([]models.StatusCheck, error)
}

type Generator interface {
	Enqueue() error
}

type SchedulerStatus interface {
	Status() scheduler.Status
}

type Routers struct {
	log            *slog.Logger
	serviceName    string
	PostService    PostService
	ContactService ContactService
	StatusService  StatusService
	Generator      Generator
	Scheduler      SchedulerStatus
}

func NewRouter(
	log *slog.Logger,
	serviceName string,
	postService PostService,
	contactService ContactService,
	statusService StatusService,
	gen Generator,
	sched SchedulerStatus,
) *Routers {
	return &Routers{
		log:            log,
		serviceName:    serviceName,
		PostService:    postService,
		ContactService: contactService,
		StatusService:  statusService,
		Generator:      gen,
		Scheduler:      sched,
	}
}

// writeError maps service errors onto HTTP responses.
func (r *Routers) writeError(c echo.Context, log *slog.Logger, err error) error {
	var verr *models.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Info("validation failed", sl.Err(err))
		return c.JSON(http.StatusUnprocessableEntity, response.ValidationFailed(verr.Fields))
	case errors.Is(err, storage.ErrPostNotFound):
		return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
	case errors.Is(err, storage.ErrContactNotFound):
		return c.JSON(http.StatusNotFound, response.ErrContactNotFound)
	case errors.Is(err, storage.ErrSlugExists):
		log.Warn("slug conflict", sl.Err(err))
		return c.JSON(http.StatusConflict, response.ErrSlugConflict)
	case errors.Is(err, generator.ErrGeneratorDisabled):
		return c.JSON(http.StatusServiceUnavailable, response.ErrGeneratorDisabled)
	}

	log.Error("request failed", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// parseID reads the :id path parameter. A value that is not a UUID cannot
// name a stored record, so callers answer it with 404.
func parseID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

// invalidBody answers a request body that does not decode into the expected
// shape: broken JSON, wrong field types or unknown fields on strict routes.
func invalidBody(c echo.Context, log *slog.Logger, err error) error {
	log.Warn("invalid request data", sl.Err(err))

	details := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		details = fmt.Sprint(he.Message)
	}

	return c.JSON(http.StatusUnprocessableEntity, response.ErrorResponseWithDetails("invalid_request", details))
}

// Root godoc
// @Summary API root
// @Tags system
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router / [get]
func (r *Routers) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, response.MessageResponse{Message: r.serviceName})
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.HealthResponse{Status: "healthy", Service: r.serviceName})
}

// SubmitContact godoc
// @Summary Submit the contact form
// @Description Stores the submission and notifies the team by e-mail. Rate limited per client IP.
// @Tags contact
// @Accept json
// @Produce json
// @Param request body request.ContactRequest true "Contact form"
// @Success 200 {object} models.ContactSubmission
// @Failure 422 {object} response.ValidationErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /contact [post]
func (r *Routers) SubmitContact(c echo.Context) error {
	const op = "http.routers.SubmitContact"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.ContactRequest

	if err := c.Bind(&req); err != nil {
		return invalidBody(c, log, err)
	}

	req.Normalize()

	if err := c.Validate(req); err != nil {
		if fields, ok := fieldErrors(err); ok {
			log.Info("contact form rejected", slog.Int("fields", len(fields)))
			return c.JSON(http.StatusUnprocessableEntity, response.ValidationFailed(fields))
		}
		return r.writeError(c, log, err)
	}

	contact, err := r.ContactService.Submit(c.Request().Context(), req.ToInput())
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, contact)
}

// ListPublishedPosts godoc
// @Summary List published posts
// @Tags posts
// @Produce json
// @Param lang query string false "Language code"
// @Param tag query string false "Tag"
// @Param q query string false "Search in title, summary and content"
// @Param page query int false "Page, from 1" default(1)
// @Param per_page query int false "Page size, at most 100" default(10)
// @Success 200 {object} models.PostPage
// @Failure 422 {object} response.ErrorResponse
// @Router /posts [get]
func (r *Routers) ListPublishedPosts(c echo.Context) error {
	const op = "http.routers.ListPublishedPosts"

	log := r.log.With(
		slog.String("op", op),
	)

	var filter models.PostFilter

	err := echo.QueryParamsBinder(c).
		String("lang", &filter.Language).
		String("tag", &filter.Tag).
		String("q", &filter.Query).
		Int("page", &filter.Page).
		Int("per_page", &filter.PerPage).
		BindError()
	if err != nil {
		log.Warn("invalid query", sl.Err(err))
		return c.JSON(http.StatusUnprocessableEntity, response.ErrorResponseWithDetails("invalid_request", "page and per_page must be integers"))
	}

	page, err := r.PostService.ListPublishedPosts(c.Request().Context(), filter)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, page)
}

// TagCounts godoc
// @Summary Tags of published posts with counts
// @Tags posts
// @Produce json
// @Success 200 {array} models.TagCount
// @Router /posts/tags/all [get]
func (r *Routers) TagCounts(c echo.Context) error {
	const op = "http.routers.TagCounts"

	counts, err := r.PostService.TagCounts(c.Request().Context())
	if err != nil {
		return r.writeError(c, r.log.With(slog.String("op", op)), err)
	}
	if counts == nil {
		counts = []models.TagCount{}
	}

	return c.JSON(http.StatusOK, counts)
}

// GetPublishedPost godoc
// @Summary Get a published post by slug
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.Post
// @Failure 404 {object} response.ErrorResponse
// @Router /posts/{slug} [get]
func (r *Routers) GetPublishedPost(c echo.Context) error {
	const op = "http.routers.GetPublishedPost"

	post, err := r.PostService.GetPublishedPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return r.writeError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, post)
}

// ListAllPosts godoc
// @Summary List all posts including drafts
// @Tags admin
// @Produce json
// @Success 200 {array} models.Post
// @Failure 401 {object} response.ErrorResponse
// @Security BasicAuth
// @Router /admin/posts [get]
func (r *Routers) ListAllPosts(c echo.Context) error {
	const op = "http.routers.ListAllPosts"

	posts, err := r.PostService.ListAllPosts(c.Request().Context())
	if err != nil {
		return r.writeError(c, r.log.With(slog.String("op", op)), err)
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Get any post by id
// @Tags admin
// @Produce json
// @Param id path string true "Post id" format(uuid)
// @Success 200 {object} models.Post
// @Failure 404 {object} response.ErrorResponse
// @Security BasicAuth
// @Router /admin/posts/{id} [get]
func (r *Routers) GetPost(c echo.Context) error {
	const op = "http.routers.GetPost"

	postID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
	}

	post, err := r.PostService.GetPost(c.Request().Context(), postID)
	if err != nil {
		return r.writeError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary Create a draft post
// @Description Unknown fields are rejected.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.CreatePostRequest true "Post"
// @Success 200 {object} models.Post
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ValidationErrorResponse
// @Security BasicAuth
// @Router /admin/posts [post]
func (r *Routers) CreatePost(c echo.Context) error {
	const op = "http.routers.CreatePost"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.CreatePostRequest

	if err := request.DecodeStrict(c, &req); err != nil {
		return invalidBody(c, log, err)
	}

	post, err := r.PostService.CreatePost(c.Request().Context(), req.ToInput())
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, post)
}

// UpdatePost godoc
// @Summary Update a post
// @Description Only the fields present in the body change. A new title or language regenerates the slug.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Post id" format(uuid)
// @Param request body request.UpdatePostRequest true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ValidationErrorResponse
// @Security BasicAuth
// @Router /admin/posts/{id} [put]
func (r *Routers) UpdatePost(c echo.Context) error {
	const op = "http.routers.UpdatePost"

	log := r.log.With(
		slog.String("op", op),
	)

	postID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
	}

	var req request.UpdatePostRequest

	if err := request.DecodeStrict(c, &req); err != nil {
		return invalidBody(c, log, err)
	}

	post, err := r.PostService.UpdatePost(c.Request().Context(), postID, req.ToPatch())
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Tags admin
// @Produce json
// @Param id path string true "Post id" format(uuid)
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BasicAuth
// @Router /admin/posts/{id} [delete]
func (r *Routers) DeletePost(c echo.Context) error {
	const op = "http.routers.DeletePost"

	postID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
	}

	if err := r.PostService.DeletePost(c.Request().Context(), postID); err != nil {
		return r.writeError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse{Message: "Post deleted successfully"})
}

// PublishPost godoc
// @Summary Publish a post
// @Description Sets published_at and sends the publish webhook in the background.
// @Tags admin
// @Produce json
// @Param id path string true "Post id" format(uuid)
// @Success 200 {object} models.Post
// @Failure 404 {object} response.ErrorResponse
// @Security BasicAuth
// @Router /admin/posts/{id}/publish [post]
func (r *Routers) PublishPost(c echo.Context) error {
	const op = "http.routers.PublishPost"

	postID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
	}

	post, err := r.PostService.PublishPost(c.Request().Context(), postID)
	if err != nil {
		return r.writeError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, post)
}

// UnpublishPost godoc
// @Summary Return a post to draft
// @Tags admin
// @Produce json
// @Param id path string true "Post id" format(uuid)
// @Success 200 {object} models.Post
// @Failure 404 {object} response.ErrorResponse
// @Security BasicAuth
// @Router /admin/posts/{id}/unpublish [post]
func (r *Routers) UnpublishPost(c echo.Context) error {
	const op = "http.routers.UnpublishPost"

	postID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
	}

	post, err := r.PostService.UnpublishPost(c.Request().Context(), postID)
	if err != nil {
		return r.writeError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, post)
}

// GenerateAIPost godoc
// @Summary Start AI post generation
// @Description Returns immediately; the draft is written in the background.
// @Tags admin
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Failure 503 {object} response.ErrorResponse
// @Security BasicAuth
// @Router /admin/posts/generate-ai [post]
func (r *Routers) GenerateAIPost(c echo.Context) error {
	const op = "http.routers.GenerateAIPost"

	if err := r.Generator.Enqueue(); err != nil {
		return r.writeError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse{Message: "AI post generation started in background"})
}

// ListContacts godoc
// @Summary List contact submissions
// @Tags admin
// @Produce json
// @Success 200 {array} models.ContactSubmission
// @Security BasicAuth
// @Router /admin/contacts [get]
func (r *Routers) ListContacts(c echo.Context) error {
	const op = "http.routers.ListContacts"

	contacts, err := r.ContactService.List(c.Request().Context())
	if err != nil {
		return r.writeError(c, r.log.With(slog.String("op", op)), err)
	}
	if contacts == nil {
		contacts = []models.ContactSubmission{}
	}

	return c.JSON(http.StatusOK, contacts)
}

// GetContact godoc
// @Summary Get a contact submission
// @Tags admin
// @Produce json
// @Param id path string true "Submission id" format(uuid)
// @Success 200 {object} models.ContactSubmission
// @Failure 404 {object} response.ErrorResponse
// @Security BasicAuth
// @Router /admin/contacts/{id} [get]
func (r *Routers) GetContact(c echo.Context) error {
	const op = "http.routers.GetContact"

	contactID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrContactNotFound)
	}

	contact, err := r.ContactService.Get(c.Request().Context(), contactID)
	if err != nil {
		return r.writeError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, contact)
}

// SchedulerStatus godoc
// @Summary Scheduler status
// @Tags admin
// @Produce json
// @Success 200 {object} scheduler.Status
// @Security BasicAuth
// @Router /admin/scheduler/status [get]
func (r *Routers) SchedulerStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, r.Scheduler.Status())
}

// CreateStatusCheck godoc
// @Summary Record a client status check
// @Tags system
// @Accept json
// @Produce json
// @Param request body request.StatusCheckRequest true "Client"
// @Success 200 {object} models.StatusCheck
// @Failure 422 {object} response.ValidationErrorResponse
// @Router /status [post]
func (r *Routers) CreateStatusCheck(c echo.Context) error {
	const op = "http.routers.CreateStatusCheck"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.StatusCheckRequest

	if err := c.Bind(&req); err != nil {
		return invalidBody(c, log, err)
	}

	if err := c.Validate(req); err != nil {
		if fields, ok := fieldErrors(err); ok {
			return c.JSON(http.StatusUnprocessableEntity, response.ValidationFailed(fields))
		}
		return r.writeError(c, log, err)
	}

	check, err := r.StatusService.CreateStatusCheck(c.Request().Context(), req.ClientName)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, check)
}

// ListStatusChecks godoc
// @Summary List recorded status checks
// @Tags system
// @Produce json
// @Success 200 {array} models.StatusCheck
// @Router /status [get]
func (r *Routers) ListStatusChecks(c echo.Context) error {
	const op = "http.routers.ListStatusChecks"

	checks, err := r.StatusService.ListStatusChecks(c.Request().Context())
	if err != nil {
		return r.writeError(c, r.log.With(slog.String("op", op)), err)
	}
	if checks == nil {
		checks = []models.StatusCheck{}
	}

	return c.JSON(http.StatusOK, checks)
}
