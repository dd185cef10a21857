package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pagination mirrors the repository Page types so handlers can convert it
// directly.
type pagination struct {
	Offset int
	Limit  int
}

// parsePagination extracts from and size query parameters with defaults,
// clamping to sane bounds.
func parsePagination(c *gin.Context) pagination {
	from, _ := strconv.Atoi(c.DefaultQuery("from", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	if from < 0 {
		from = 0
	}
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	return pagination{Offset: from, Limit: size}
}
