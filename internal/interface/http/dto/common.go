package dto

import "time"

// TimeLayout 响应中的时间格式
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime 格式化时间,零值返回空字符串
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// PageQuery 分页查询参数
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}
