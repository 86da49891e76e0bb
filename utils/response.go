package utils

import (
	"github.com/kataras/iris/v12"
)

type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	ctx.JSON(iris.Map{
		"data": data,
		"meta": PageMeta{Page: page, PerPage: perPage, Total: total},
	})
}

// Pagination reads page/per_page query params with sane bounds.
func Pagination(ctx iris.Context) (page, perPage int) {
	page = ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage = ctx.URLParamIntDefault("per_page", 12)
	if perPage < 1 || perPage > 50 {
		perPage = 12
	}
	return page, perPage
}
