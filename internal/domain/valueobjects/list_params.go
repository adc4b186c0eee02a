package valueobjects

import (
	"strconv"
	"strings"
)

// ViewMode 列表视图类型
type ViewMode string

const (
	ViewTrending ViewMode = "trending" // 趋势榜
	ViewDiscover ViewMode = "discover" // 发现(按类型/排序筛选)
)

// String 返回视图类型的字符串表示
func (v ViewMode) String() string {
	return string(v)
}

// IsValid 检查视图类型是否有效
func (v ViewMode) IsValid() bool {
	return v == ViewTrending || v == ViewDiscover
}

// Title 列表页标题
func (v ViewMode) Title() string {
	if v == ViewDiscover {
		return "Discover Movies"
	}
	return "Trending Movies"
}

// TimeWindow 趋势榜时间窗口,仅在 ViewTrending 下有意义
type TimeWindow string

const (
	TimeWindowDay  TimeWindow = "day"
	TimeWindowWeek TimeWindow = "week"
)

func (w TimeWindow) String() string {
	return string(w)
}

func (w TimeWindow) IsValid() bool {
	return w == TimeWindowDay || w == TimeWindowWeek
}

// Label 展示用名称
func (w TimeWindow) Label() string {
	if w == TimeWindowWeek {
		return "This Week"
	}
	return "Today"
}

// SortKey 发现页排序键,仅在 ViewDiscover 下有意义
type SortKey string

const (
	SortPopularity  SortKey = "popularity.desc"
	SortReleaseDate SortKey = "release_date.desc"
	SortRating      SortKey = "vote_average.desc"
)

// SortKeys 展示顺序
var SortKeys = []SortKey{SortPopularity, SortReleaseDate, SortRating}

func (s SortKey) String() string {
	return string(s)
}

func (s SortKey) IsValid() bool {
	switch s {
	case SortPopularity, SortReleaseDate, SortRating:
		return true
	default:
		return false
	}
}

// Label 展示用名称
func (s SortKey) Label() string {
	switch s {
	case SortReleaseDate:
		return "Release Date"
	case SortRating:
		return "Rating"
	default:
		return "Popularity"
	}
}

// ParseSortKey 解析排序键,同时接受简写 popularity/release/rating
func ParseSortKey(value string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "popularity", string(SortPopularity):
		return SortPopularity, true
	case "release", "release_date", string(SortReleaseDate):
		return SortReleaseDate, true
	case "rating", "vote_average", string(SortRating):
		return SortRating, true
	default:
		return "", false
	}
}

// GenreSelection 已选类型ID,保持选择顺序
// 值语义:所有修改都返回新的切片,不影响调用方持有的旧值
type GenreSelection []int

// Contains 是否已选中
func (g GenreSelection) Contains(id int) bool {
	for _, v := range g {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle 已选中则移除,否则追加到末尾
func (g GenreSelection) Toggle(id int) GenreSelection {
	out := make(GenreSelection, 0, len(g)+1)
	found := false
	for _, v := range g {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

// CSV 逗号拼接,空集合返回空字符串
func (g GenreSelection) CSV() string {
	parts := make([]string, len(g))
	for i, id := range g {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// ListParams 列表查询参数
type ListParams struct {
	View       ViewMode       `json:"view"`
	TimeWindow TimeWindow     `json:"time_window"`
	SortBy     SortKey        `json:"sort_by"`
	Genres     GenreSelection `json:"genres"`
	Page       int            `json:"page"`
}

// DefaultListParams 初始参数:今日趋势第一页
func DefaultListParams() ListParams {
	return ListParams{
		View:       ViewTrending,
		TimeWindow: TimeWindowDay,
		SortBy:     SortPopularity,
		Genres:     GenreSelection{},
		Page:       1,
	}
}

// Normalize 填充默认值并修正非法值
func (p ListParams) Normalize() ListParams {
	if !p.View.IsValid() {
		p.View = ViewTrending
	}
	if !p.TimeWindow.IsValid() {
		p.TimeWindow = TimeWindowDay
	}
	if !p.SortBy.IsValid() {
		p.SortBy = SortPopularity
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Genres == nil {
		p.Genres = GenreSelection{}
	}
	return p
}

// Clone 深拷贝,避免共享 Genres 底层数组
func (p ListParams) Clone() ListParams {
	out := p
	out.Genres = append(GenreSelection{}, p.Genres...)
	return out
}
