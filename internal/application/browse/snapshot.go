package browse

import (
	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
)

// Snapshot 渲染用视图模型,生成后不再变化
type Snapshot struct {
	SessionID    string                  `json:"session_id"`
	View         ViewState               `json:"view"`
	Title        string                  `json:"title"`
	DarkTheme    bool                    `json:"dark_theme"`
	Theme        string                  `json:"theme"`
	Query        string                  `json:"query,omitempty"`
	Loading      bool                    `json:"loading"`
	Params       valueobjects.ListParams `json:"params"`
	TimeWindow   string                  `json:"time_window_label"`
	SortLabel    string                  `json:"sort_label"`
	Genres       []GenreOption           `json:"genres"`
	Items        []Card                  `json:"items"`
	HasMore      bool                    `json:"has_more"`
	Page         int                     `json:"page,omitempty"`
	TotalPages   int                     `json:"total_pages,omitempty"`
	TotalResults int                     `json:"total_results,omitempty"`
	SelectedID   int                     `json:"selected_id,omitempty"`
	NotFound     bool                    `json:"not_found,omitempty"`
	Detail       *DetailView             `json:"detail,omitempty"`
	Error        *Notice                 `json:"error,omitempty"`
}

// Card 网格中的一张卡片
type Card struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
	Year      string `json:"year"`
	Rating    string `json:"rating"`
}

// GenreOption 类型筛选按钮
type GenreOption struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// DetailView 详情页
type DetailView struct {
	ID          int                   `json:"id"`
	Title       string                `json:"title"`
	Tagline     string                `json:"tagline,omitempty"`
	Overview    string                `json:"overview,omitempty"`
	Year        string                `json:"year"`
	Rating      string                `json:"rating"`
	Runtime     string                `json:"runtime,omitempty"`
	PosterURL   string                `json:"poster_url"`
	BackdropURL string                `json:"backdrop_url,omitempty"`
	Genres      []string              `json:"genres"`
	Cast        []entities.CastMember `json:"cast"`
	Crew        []entities.CrewMember `json:"crew"`
}

// IsListing 模板辅助
func (s *Snapshot) IsListing() bool { return s.View == ViewListing }

func (s *Snapshot) IsSearching() bool { return s.View == ViewSearching }

func (s *Snapshot) IsDetail() bool { return s.View == ViewDetail }

// IsDiscover 发现页展示排序和类型筛选,趋势榜展示时间窗口
func (s *Snapshot) IsDiscover() bool { return s.Params.View == valueobjects.ViewDiscover }
