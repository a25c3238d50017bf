package dto

// TermsResponse GET /terms
type TermsResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Version   string `json:"version"`
	UpdatedAt string `json:"updated_at"` // 2006-01-02 15:04:05
}
