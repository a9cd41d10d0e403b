package shared

import (
	"strconv"

	"github.com/heartlink/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CurrentUserID 从上下文读取已认证用户 ID，缺失时统一返回 401。
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		RespondError(c, response.CodeUnauthorized, "Unauthorized", nil)
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeUnauthorized, "Unauthorized", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeUnauthorized, "Unauthorized", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "Internal server error", nil)
		return 0, false
	}
}

// ParseUintParam 解析路径参数为 uint，非法值返回 400。
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "Invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}
