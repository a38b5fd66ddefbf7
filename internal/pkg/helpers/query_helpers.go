package helpers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/pkg/query"
)

// reserved query parameters that are never filter dimensions
var reservedParams = map[string]struct{}{
	"q": {}, "search": {}, "sort": {}, "sortBy": {}, "page": {}, "size": {}, "token": {},
}

// ParseCriteria reads ?q= (or ?search=), ?sort= (or ?sortBy=) and every other
// parameter as a filter dimension.
func ParseCriteria(c *gin.Context) query.Criteria {
	criteria := query.Criteria{
		Query:   firstNonEmpty(c.Query("q"), c.Query("search")),
		Sort:    firstNonEmpty(c.Query("sort"), c.Query("sortBy")),
		Filters: map[string]string{},
	}

	for key, values := range c.Request.URL.Query() {
		if _, skip := reservedParams[key]; skip || len(values) == 0 {
			continue
		}
		criteria.Filters[key] = strings.TrimSpace(values[0])
	}
	return criteria
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
