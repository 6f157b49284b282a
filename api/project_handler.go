package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-site-backend/database"
	"github.com/rpupo63/agency-site-backend/errs"
	"github.com/rpupo63/agency-site-backend/metrics"
	"github.com/rpupo63/agency-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// projectCollection is one project category seen through its JSON payloads.
type projectCollection interface {
	list(ctx context.Context) (any, error)
	get(ctx context.Context, id string) (any, error)
	create(w http.ResponseWriter, r *http.Request) (any, error)
	update(w http.ResponseWriter, r *http.Request, id string) (any, error)
	delete(ctx context.Context, id string) (bool, error)
}

type projectInput[T any] interface {
	ToModel() T
}

type projectPatch interface {
	Columns() map[string]any
}

// collection binds a repository to the create and patch payloads of its entity.
type collection[T any, In projectInput[T], P projectPatch] struct {
	entity string
	repo   database.Repository[T]
}

func (c collection[T, In, P]) list(ctx context.Context) (any, error) {
	return c.repo.List(ctx)
}

func (c collection[T, In, P]) get(ctx context.Context, id string) (any, error) {
	row, err := c.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errs.NewNotFound(c.entity)
	}
	return row, nil
}

func (c collection[T, In, P]) create(w http.ResponseWriter, r *http.Request) (any, error) {
	var in In
	if err := decodeJSONBody(w, r, &in); err != nil {
		return nil, err
	}
	if err := models.Validate(&in); err != nil {
		return nil, err
	}

	row := in.ToModel()
	if err := c.repo.Create(r.Context(), &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (c collection[T, In, P]) update(w http.ResponseWriter, r *http.Request, id string) (any, error) {
	var patch P
	if err := decodeJSONBody(w, r, &patch); err != nil {
		return nil, err
	}
	if err := models.Validate(&patch); err != nil {
		return nil, err
	}

	row, err := c.repo.Update(r.Context(), id, patch.Columns())
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errs.NewNotFound(c.entity)
	}
	return row, nil
}

func (c collection[T, In, P]) delete(ctx context.Context, id string) (bool, error) {
	return c.repo.Delete(ctx, id)
}

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	websites    database.Repository[models.WebsiteProject]
	videos      database.Repository[models.VideoProject]
	socials     database.Repository[models.SocialProject]
	collections map[string]projectCollection
}

func newProjectHandler(websites *database.WebsiteProjectRepo, videos *database.VideoProjectRepo, socials *database.SocialProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		websites:  websites,
		videos:    videos,
		socials:   socials,
		collections: map[string]projectCollection{
			"website": collection[models.WebsiteProject, models.WebsiteProjectInput, models.WebsiteProjectPatch]{
				entity: "website project", repo: websites,
			},
			"video": collection[models.VideoProject, models.VideoProjectInput, models.VideoProjectPatch]{
				entity: "video project", repo: videos,
			},
			"social": collection[models.SocialProject, models.SocialProjectInput, models.SocialProjectPatch]{
				entity: "social project", repo: socials,
			},
		},
	}
}

// collection resolves the {kind} URL parameter, writing a 404 for unknown kinds.
func (h projectHandler) collection(w http.ResponseWriter, r *http.Request) (string, projectCollection, bool) {
	kind := chi.URLParam(r, "kind")
	c, ok := h.collections[kind]
	if !ok {
		h.responder.WriteError(w, errs.NewNotFoundError("project kind "+kind))
		return "", nil, false
	}
	return kind, c, true
}

// getCatalog retrieves every project of every kind
// @Summary Get the whole catalog
// @Description Lists website, video and social projects in insertion order
// @Tags Projects
// @Produce json
// @Success 200 {object} CatalogResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/projects [get]
func (h projectHandler) getCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var catalog CatalogResponse
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			catalog.Website, err = h.websites.List(ctx)
			return err
		})
		g.Go(func() (err error) {
			catalog.Video, err = h.videos.List(ctx)
			return err
		})
		g.Go(func() (err error) {
			catalog.Social, err = h.socials.List(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, catalog)
	}
}

// listProjects retrieves all projects of one kind
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param kind path string true "website, video or social"
// @Success 200 {array} object
// @Failure 404 {object} ErrorResponse "Unknown kind"
// @Router /api/projects/{kind} [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, c, ok := h.collection(w, r)
		if !ok {
			return
		}

		rows, err := c.list(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, rows)
	}
}

// getProject retrieves one project
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param kind path string true "website, video or social"
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} object
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/projects/{kind}/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, c, ok := h.collection(w, r)
		if !ok {
			return
		}

		row, err := c.get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, row)
	}
}

// createProject creates a project
// @Summary Create project
// @Description Admin only. Validates the payload, assigns id and createdAt.
// @Tags Projects
// @Accept json
// @Produce json
// @Param kind path string true "website, video or social"
// @Success 201 {object} object "Created project"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/projects/{kind} [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, c, ok := h.collection(w, r)
		if !ok {
			return
		}

		row, err := c.create(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		metrics.ProjectMutationsTotal.WithLabelValues(kind, "create").Inc()
		h.responder.WriteJSONStatus(w, http.StatusCreated, row)
	}
}

// updateProject applies a partial update
// @Summary Update project
// @Description Admin only. Omitted fields keep their stored values; unknown fields are ignored.
// @Tags Projects
// @Accept json
// @Produce json
// @Param kind path string true "website, video or social"
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} object "Merged project"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/projects/{kind}/{id} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, c, ok := h.collection(w, r)
		if !ok {
			return
		}

		row, err := c.update(w, r, chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		metrics.ProjectMutationsTotal.WithLabelValues(kind, "update").Inc()
		h.responder.WriteJSON(w, row)
	}
}

// deleteProject removes a project
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param kind path string true "website, video or social"
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/projects/{kind}/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, c, ok := h.collection(w, r)
		if !ok {
			return
		}

		deleted, err := c.delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound(kind+" project"))
			return
		}

		metrics.ProjectMutationsTotal.WithLabelValues(kind, "delete").Inc()
		h.responder.WriteJSON(w, SuccessResponse{Success: true, Message: "Project deleted"})
	}
}
