package public

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/application"
	"github.com/tastetrail/tastetrail-services/api/internal/interfaces/http/common"
)

func (h *Handler) reviewCreateHandler() http.HandlerFunc {
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

		var req createReviewRequest
		body := http.MaxBytesReader(w, r.Body, common.MaxRequestBody)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		review, err := h.reviews.Add(ctx, application.AddReviewCommand{
			StoreID:  storeID,
			AuthorID: user.ID,
			Text:     req.Text,
			Rating:   req.Rating,
		})
		if err != nil {
			h.writeError(w, err, "review creation failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildReviewResponse(*review))
	}
}
