package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/response"
)

// parseIDParam reads a numeric path parameter. On failure it writes a 400
// response and reports false so the handler can bail out.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
