package dto

import "strconv"

// ── auth ──

// LoginResponse is returned by login and the legacy token endpoint.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt *string      `json:"expires_at,omitempty"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ── pagination ──

const (
	DefaultPerPage = 15
	MaxPerPage     = 500
	// MaxPage keeps the row offset well inside int range.
	MaxPage = 1 << 20
)

// PaginationRequest offset pagination parameters. PerPage is kept as text so
// that "all" and garbage values can be told apart from numbers.
type PaginationRequest struct {
	Page    int    `form:"page"`
	PerPage string `form:"per_page"`
}

// GetPage returns the requested page, between 1 and MaxPage.
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	if p.Page > MaxPage {
		return MaxPage
	}
	return p.Page
}

// GetPerPage returns the page size: 15 when missing or not a number, capped at 500.
func (p *PaginationRequest) GetPerPage() int {
	n, err := strconv.Atoi(p.PerPage)
	if err != nil || n <= 0 {
		return DefaultPerPage
	}
	if n > MaxPerPage {
		return MaxPerPage
	}
	return n
}

// GetOffset returns the row offset of the page.
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPerPage()
}
