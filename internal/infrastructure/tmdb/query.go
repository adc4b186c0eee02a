package tmdb

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
)

// Request 一个完整的数据源请求描述:接口路径 + 查询参数
// 不包含凭证和语言,由 Client 在发送时追加
type Request struct {
	Path  string
	Query url.Values
}

// String 便于日志和测试比较
func (r Request) String() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}

// ListRequest 根据列表参数构造趋势榜或发现页请求
func ListRequest(p valueobjects.ListParams) Request {
	p = p.Normalize()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))

	if p.View == valueobjects.ViewDiscover {
		q.Set("sort_by", p.SortBy.String())
		if len(p.Genres) > 0 {
			q.Set("with_genres", p.Genres.CSV())
		}
		return Request{Path: "/discover/movie", Query: q}
	}

	return Request{
		Path:  fmt.Sprintf("/trending/movie/%s", p.TimeWindow),
		Query: q,
	}
}

// SearchRequest 关键字搜索请求,空白关键字返回 ok=false,调用方不应发出请求
func SearchRequest(query string) (Request, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, false
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", "1")
	return Request{Path: "/search/movie", Query: q}, true
}

// DetailRequest 详情请求,总是与 CreditsRequest 成对发出
func DetailRequest(id int) Request {
	return Request{Path: fmt.Sprintf("/movie/%d", id)}
}

// CreditsRequest 演职员表请求
func CreditsRequest(id int) Request {
	return Request{Path: fmt.Sprintf("/movie/%d/credits", id)}
}

// GenresRequest 类型表请求
func GenresRequest() Request {
	return Request{Path: "/genre/movie/list"}
}
