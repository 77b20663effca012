package public

// locationResponse mirrors the stored GeoJSON point plus address.
type locationResponse struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address"`
}

type storeResponse struct {
	ID          string           `json:"id,omitempty"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description,omitempty"`
	Tags        []string         `json:"tags"`
	Location    locationResponse `json:"location"`
	Photo       string           `json:"photo,omitempty"`
	Author      string           `json:"author,omitempty"`
	Created     string           `json:"created,omitempty"`
}

type storeListResponse struct {
	Stores     []storeResponse `json:"stores"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	TotalCount int             `json:"totalCount"`
	RedirectTo int             `json:"redirectTo,omitempty"`
}

type scoredStoreResponse struct {
	storeResponse
	Score float64 `json:"score"`
}

type tagCountResponse struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type tagListResponse struct {
	Tags   []tagCountResponse `json:"tags"`
	Tag    string             `json:"tag,omitempty"`
	Stores []storeResponse    `json:"stores"`
}

type ratedStoreResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Photo         string  `json:"photo,omitempty"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

type reviewResponse struct {
	ID      string `json:"id"`
	Store   string `json:"store"`
	Author  string `json:"author"`
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	Created string `json:"created"`
}

type storeDetailResponse struct {
	storeResponse
	Reviews []reviewResponse `json:"reviews"`
}

type upsertStoreRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Location    struct {
		Coordinates []float64 `json:"coordinates"`
		Address     string    `json:"address"`
	} `json:"location"`
	Photo string `json:"photo"`
}

type createReviewRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

type heartsResponse struct {
	Hearts []string        `json:"hearts"`
	Stores []storeResponse `json:"stores,omitempty"`
}
