// Package handler HTTP处理器
//
// 每个处理器只做三件事:绑定参数 → 调用用例 → 转换响应。
// 业务规则全部在application/domain层,这里不出现任何库存计算。
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/warehouse/internal/interface/http/dto"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
	"github.com/xiebiao/warehouse/pkg/response"
)

const (
	defaultPageSize        = 20
	defaultJournalPageSize = 50
)

// bindError 参数绑定失败统一响应
func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
}

// parseID 解析路径参数中的ID
// 返回false时已经写入了错误响应
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的ID: "+c.Param(name))
		return 0, false
	}
	return uint(id), true
}

// normalizePage 填充分页默认值
// 仓储层也会兜底,这里补齐是为了响应里的page/page_size与实际查询一致
func normalizePage(q dto.PageQuery, def int) (int, int) {
	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = def
	}
	return page, size
}
