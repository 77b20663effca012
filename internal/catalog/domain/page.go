package domain

// DefaultPageSize is the store listing page size.
const DefaultPageSize = 4

// PageRequest carries page/size values from the HTTP layer to the repo
// layer. Page is 1-indexed.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest builds a PageRequest from raw values. Non-positive pages
// fall back to 1 and non-positive sizes to DefaultPageSize.
func NewPageRequest(page, size int) PageRequest {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	return PageRequest{Page: page, Size: size}
}

// Skip returns the number of records to skip before the requested window.
func (p PageRequest) Skip() int {
	return (p.Page - 1) * p.Size
}

// PageInfo describes the resolved window of a listing. RedirectTo is zero
// unless the requested page was past the end, in which case it names the
// last real page the caller should be sent to instead of an empty one.
type PageInfo struct {
	Page       int
	TotalPages int
	TotalCount int
	RedirectTo int
}

// NewPageInfo computes totals for a page request. itemCount is how many
// records the window actually yielded; a zero-item window with a non-zero
// skip means the page is past the end and gets a redirect target, clamped
// to page 1 so an empty collection never redirects to page 0.
func NewPageInfo(req PageRequest, totalCount, itemCount int) PageInfo {
	totalPages := (totalCount + req.Size - 1) / req.Size
	info := PageInfo{
		Page:       req.Page,
		TotalPages: totalPages,
		TotalCount: totalCount,
	}
	if itemCount == 0 && req.Skip() > 0 {
		info.RedirectTo = totalPages
		if info.RedirectTo < 1 {
			info.RedirectTo = 1
		}
	}
	return info
}
