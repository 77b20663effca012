package public

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/application"
	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
	"github.com/tastetrail/tastetrail-services/api/internal/interfaces/http/common"
)

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		size, _ := common.ParsePositiveInt(query.Get("limit"), domain.DefaultPageSize)
		if size > common.MaxListingLimit {
			size = common.MaxListingLimit
		}

		stores, info, err := h.discovery.ListPage(ctx, domain.NewPageRequest(page, size))
		if err != nil {
			h.writeError(w, err, "store listing failed")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, storeListResponse{
			Stores:     buildStoreResponses(stores),
			Page:       info.Page,
			TotalPages: info.TotalPages,
			TotalCount: info.TotalCount,
			RedirectTo: info.RedirectTo,
		})
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "store slug is required"})
			return
		}

		store, reviews, err := h.stores.BySlug(ctx, slug)
		if err != nil {
			h.writeError(w, err, "store detail fetch failed")
			return
		}

		detail := storeDetailResponse{
			storeResponse: buildStoreResponse(*store),
			Reviews:       make([]reviewResponse, 0, len(reviews)),
		}
		for _, review := range reviews {
			detail.Reviews = append(detail.Reviews, buildReviewResponse(review))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, detail)
	}
}

func (h *Handler) storeCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		cmd, ok := h.decodeStoreRequest(w, r, user.ID)
		if !ok {
			return
		}

		store, err := h.stores.Create(ctx, cmd)
		if err != nil {
			h.writeError(w, err, "store creation failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildStoreResponse(*store))
	}
}

func (h *Handler) storeUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "store id is required"})
			return
		}

		cmd, ok := h.decodeStoreRequest(w, r, user.ID)
		if !ok {
			return
		}

		store, err := h.stores.Update(ctx, id, cmd)
		if err != nil {
			h.writeError(w, err, "store update failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreResponse(*store))
	}
}

// decodeStoreRequest reads and validates the shared create/update payload.
// Coordinate presence is checked here; range/finiteness rules stay in the
// service layer.
func (h *Handler) decodeStoreRequest(w http.ResponseWriter, r *http.Request, authorID string) (application.UpsertStoreCommand, bool) {
	var req upsertStoreRequest
	body := http.MaxBytesReader(w, r.Body, common.MaxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return application.UpsertStoreCommand{}, false
	}
	if len(req.Location.Coordinates) != 2 {
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "location.coordinates must be [longitude, latitude]"})
		return application.UpsertStoreCommand{}, false
	}

	return application.UpsertStoreCommand{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		Longitude:   req.Location.Coordinates[0],
		Latitude:    req.Location.Coordinates[1],
		Address:     req.Location.Address,
		Photo:       req.Photo,
		AuthorID:    authorID,
	}, true
}
