package handlers

import "github.com/gin-gonic/gin"

// queryParams flattens the request query into the parameter set consumed by
// the filter builder. Only the first value of a repeated key is used.
func queryParams(c *gin.Context) map[string]string {
	values := c.Request.URL.Query()
	params := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}
