package contracts

import (
	"context"

	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
)

// MovieSource 电影元数据数据源
// 所有方法都是一次独立的HTTP GET,调用方负责并发和结果取舍
type MovieSource interface {
	// ListMovies 趋势榜或发现页的一页结果
	ListMovies(ctx context.Context, params valueobjects.ListParams) (*entities.MoviePage, error)
	// SearchMovies 关键字搜索,仅第一页
	SearchMovies(ctx context.Context, query string) (*entities.MoviePage, error)
	// GetMovie 单部电影详情,不含演职员表
	GetMovie(ctx context.Context, id int) (*entities.MovieDetail, error)
	// GetCredits 演职员表
	GetCredits(ctx context.Context, id int) (*entities.Credits, error)
	// ListGenres 电影类型表
	ListGenres(ctx context.Context) ([]entities.Genre, error)
}

// ErrorReporter 控制器的通用错误通道
// component 标识出错的组件,例如 "list"、"search"、"detail"
type ErrorReporter func(component string, err error)
