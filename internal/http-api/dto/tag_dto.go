package dto

// TagVoteRequest: payload to put a folksonomy tag on an entity. The entity
// kind comes from the route.
type TagVoteRequest struct {
	EntityID int64  `json:"entity_id" binding:"required"`
	Tag      string `json:"tag" binding:"required"`
}

// TagCloudEntry: one aggregated tag weight
type TagCloudEntry struct {
	TagID int64  `json:"tag_id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// TagCloudResponse: the tag cloud for one entity
type TagCloudResponse struct {
	EntityID int64           `json:"entity_id"`
	Kind     string          `json:"kind"`
	Tags     []TagCloudEntry `json:"tags"`
}
