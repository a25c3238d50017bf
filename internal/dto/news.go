package dto

import "mime/multipart"

// NewsRequest POST /news and PUT|PATCH /news/:id. An update replaces every
// mutable field; IsActive is only changed when present.
type NewsRequest struct {
	Title    string  `json:"title"     form:"title"     binding:"required,max=255"`
	Content  *string `json:"content"   form:"content"`
	Regions  string  `json:"regions"   form:"regions"   binding:"required"`
	PostedBy string  `json:"posted_by" form:"posted_by" binding:"required,max=255"`
	IsActive *bool   `json:"is_active" form:"is_active"`

	Thumbnail *multipart.FileHeader `json:"-" form:"thumbnail"`
}

// NewsResponse is a feed item with derived fields.
type NewsResponse struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Content      *string  `json:"content"`
	Thumbnail    *string  `json:"thumbnail"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	Regions      string   `json:"regions"`
	RegionsArray []string `json:"regions_array"`
	PostedBy     string   `json:"posted_by"`
	DatePosted   string   `json:"date_posted"`
	IsActive     bool     `json:"is_active"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}
