package domain

// SearchRequest is the unified search request.
type SearchRequest struct {
	Query string `form:"query" binding:"required"`
}

// SearchResponse is the unified search response. Order follows store
// iteration order for users and newest-first for posts; there is no
// relevance ranking.
type SearchResponse struct {
	Users []Profile `json:"users"`
	Posts []*Post   `json:"posts"`
	Total int       `json:"total"`
}
