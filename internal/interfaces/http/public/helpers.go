package public

import (
	"errors"
	"net/http"
	"time"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
	"github.com/tastetrail/tastetrail-services/api/internal/interfaces/http/common"
)

func buildStoreResponse(store domain.Store) storeResponse {
	created := ""
	if !store.CreatedAt.IsZero() {
		created = store.CreatedAt.Format(time.RFC3339)
	}
	return storeResponse{
		ID:          store.ID,
		Name:        store.Name,
		Slug:        store.Slug,
		Description: store.Description,
		Tags:        append([]string{}, store.Tags...),
		Location: locationResponse{
			Type:        store.Location.Type,
			Coordinates: append([]float64{}, store.Location.Coordinates...),
			Address:     store.Location.Address,
		},
		Photo:   store.Photo,
		Author:  store.AuthorID,
		Created: created,
	}
}

func buildStoreResponses(stores []domain.Store) []storeResponse {
	items := make([]storeResponse, 0, len(stores))
	for _, store := range stores {
		items = append(items, buildStoreResponse(store))
	}
	return items
}

func buildReviewResponse(review domain.Review) reviewResponse {
	return reviewResponse{
		ID:      review.ID,
		Store:   review.StoreID,
		Author:  review.AuthorID,
		Text:    review.Text,
		Rating:  review.Rating,
		Created: review.CreatedAt.Format(time.RFC3339),
	}
}

// writeError maps domain sentinels onto HTTP statuses; anything unmapped is
// logged and reported as a 500 without leaking internals.
func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		common.WriteJSON(h.logger, w, http.StatusBadRequest, errorBody(err))
	case errors.Is(err, domain.ErrNotFound):
		common.WriteJSON(h.logger, w, http.StatusNotFound, errorBody(err))
	case errors.Is(err, domain.ErrNotOwner):
		common.WriteJSON(h.logger, w, http.StatusForbidden, map[string]string{"error": "you must own the store to edit it"})
	case errors.Is(err, domain.ErrSlugTaken):
		common.WriteJSON(h.logger, w, http.StatusConflict, errorBody(err))
	default:
		h.logger.Printf("%s: %v", fallback, err)
		common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": fallback})
	}
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}
