package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const DefaultPerPage = 15

// PageParams reads ?page= and ?per_page= with the 15-per-page default.
func PageParams(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))
	if perPage < 1 || perPage > 100 {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// Paginate is a gorm scope applying LIMIT/OFFSET for the given page.
func Paginate(page, perPage int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * perPage).Limit(perPage)
	}
}

// Paginated is the list-response envelope.
type Paginated struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
}

func NewPaginated(data interface{}, page, perPage int, total int64) Paginated {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return Paginated{Data: data, Page: page, PerPage: perPage, Total: total, TotalPages: pages}
}
