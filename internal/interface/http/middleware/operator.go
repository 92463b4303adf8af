package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// OperatorHeader 操作员请求头
const OperatorHeader = "X-Operator"

const operatorKey = "operator"

// Operator 操作员中间件
// 没有认证体系,操作员只用于写日志:
// 取请求头X-Operator,没有时使用配置的默认操作员
func Operator(defaultOperator string) gin.HandlerFunc {
	return func(c *gin.Context) {
		op := strings.TrimSpace(c.GetHeader(OperatorHeader))
		if op == "" {
			op = defaultOperator
		}
		c.Set(operatorKey, op)
		c.Next()
	}
}

// ResolveOperator 请求体里的operator优先,其次是中间件注入的值
func ResolveOperator(c *gin.Context, fromBody string) string {
	if op := strings.TrimSpace(fromBody); op != "" {
		return op
	}
	return c.GetString(operatorKey)
}
