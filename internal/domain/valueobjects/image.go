package valueobjects

import "strings"

const (
	DefaultImageBaseURL      = "https://image.tmdb.org/t/p"
	DefaultPosterSize        = "w500"
	DefaultBackdropSize      = "w1280"
	DefaultPosterPlaceholder = "/static/placeholder.svg"
)

// ImageResolver 将TMDB相对图片路径解析为CDN地址
type ImageResolver struct {
	BaseURL      string
	PosterSize   string
	BackdropSize string
	Placeholder  string
}

// DefaultImageResolver 默认的 w500 海报解析器
func DefaultImageResolver() ImageResolver {
	return ImageResolver{
		BaseURL:      DefaultImageBaseURL,
		PosterSize:   DefaultPosterSize,
		BackdropSize: DefaultBackdropSize,
		Placeholder:  DefaultPosterPlaceholder,
	}
}

// Poster 海报地址,缺失时返回占位图
func (r ImageResolver) Poster(path string) string {
	if strings.TrimSpace(path) == "" {
		return r.Placeholder
	}
	return r.join(r.PosterSize, path)
}

// Backdrop 背景图地址,缺失时返回空字符串(不展示)
func (r ImageResolver) Backdrop(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	size := r.BackdropSize
	if size == "" {
		size = r.PosterSize
	}
	return r.join(size, path)
}

func (r ImageResolver) join(size, path string) string {
	base := strings.TrimRight(r.BaseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + "/" + size + path
}
