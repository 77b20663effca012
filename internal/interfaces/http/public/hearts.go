package public

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tastetrail/tastetrail-services/api/internal/interfaces/http/common"
)

func (h *Handler) heartToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		storeID := strings.TrimSpace(chi.URLParam(r, "id"))
		if storeID == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "store id is required"})
			return
		}

		updated, err := h.hearts.Toggle(ctx, user.ID, storeID)
		if err != nil {
			h.writeError(w, err, "heart toggle failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, heartsResponse{Hearts: updated.Hearts})
	}
}

func (h *Handler) heartedStoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		stores, err := h.hearts.ListHearted(ctx, user.ID)
		if err != nil {
			h.writeError(w, err, "hearted stores fetch failed")
			return
		}

		ids := make([]string, 0, len(stores))
		for _, store := range stores {
			ids = append(ids, store.ID)
		}
		common.WriteJSON(h.logger, w, http.StatusOK, heartsResponse{
			Hearts: ids,
			Stores: buildStoreResponses(stores),
		})
	}
}
