package public

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tastetrail/tastetrail-services/api/internal/interfaces/http/common"
)

func (h *Handler) nearStoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		lng, okLng := common.ParseFloat(query.Get("lng"))
		lat, okLat := common.ParseFloat(query.Get("lat"))
		if !okLng || !okLat {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "lng and lat must be numbers"})
			return
		}

		maxDistance, _ := common.ParseFloat(query.Get("maxDistance"))
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 0)

		stores, err := h.discovery.FindNear(ctx, lng, lat, maxDistance, limit)
		if err != nil {
			h.writeError(w, err, "proximity search failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreResponses(stores))
	}
}

func (h *Handler) searchStoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 0)

		results, err := h.discovery.Search(ctx, query.Get("q"), limit)
		if err != nil {
			h.writeError(w, err, "text search failed")
			return
		}

		items := make([]scoredStoreResponse, 0, len(results))
		for _, result := range results {
			items = append(items, scoredStoreResponse{
				storeResponse: buildStoreResponse(result.Store),
				Score:         result.Score,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

func (h *Handler) topStoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		minReviews, _ := common.ParsePositiveInt(query.Get("minReviews"), 0)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 0)

		rated, err := h.discovery.TopRated(ctx, minReviews, limit)
		if err != nil {
			h.writeError(w, err, "top rated fetch failed")
			return
		}

		items := make([]ratedStoreResponse, 0, len(rated))
		for _, row := range rated {
			items = append(items, ratedStoreResponse{
				ID:            row.Store.ID,
				Name:          row.Store.Name,
				Slug:          row.Store.Slug,
				Photo:         row.Store.Photo,
				AverageRating: row.AverageRating,
				ReviewCount:   row.ReviewCount,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

func (h *Handler) tagListHandler() http.HandlerFunc {
	return h.tagsHandler("")
}

func (h *Handler) storesByTagHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := strings.TrimSpace(chi.URLParam(r, "tag"))
		h.tagsHandler(tag)(w, r)
	}
}

// tagsHandler serves both the facet overview and a single tag's stores:
// the tag page always carries the full count list alongside the filtered
// stores, the way the directory's tag screen renders both.
func (h *Handler) tagsHandler(tag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		counts, err := h.discovery.TagCounts(ctx)
		if err != nil {
			h.writeError(w, err, "tag facet fetch failed")
			return
		}
		stores, err := h.discovery.StoresByTag(ctx, tag)
		if err != nil {
			h.writeError(w, err, "stores by tag fetch failed")
			return
		}

		tags := make([]tagCountResponse, 0, len(counts))
		for _, count := range counts {
			tags = append(tags, tagCountResponse{Tag: count.Tag, Count: count.Count})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, tagListResponse{
			Tags:   tags,
			Tag:    tag,
			Stores: buildStoreResponses(stores),
		})
	}
}
