package request

import (
	"math"

	"review-service/pkg/utils"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	// MaxPage keeps the row offset inside a 32-bit int at any page size.
	MaxPage = math.MaxInt32 / MaxPerPage
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// NewPaginatedRequest reads page and per_page query values, clamping them
// into range.
func NewPaginatedRequest(page, perPage string) PaginatedRequest {
	p := PaginatedRequest{
		Page:    utils.ParseInt(page, 1),
		PerPage: utils.ParseInt(perPage, DefaultPerPage),
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	return p
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(min(p.Page, MaxPage), p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		return MaxPerPage
	}
	return p.PerPage
}
