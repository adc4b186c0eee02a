package entities

import (
	"fmt"
	"strings"
)

const (
	// MaxCastMembers 详情页展示的演员数上限
	MaxCastMembers = 10

	JobDirector = "Director"
	JobWriter   = "Writer"
)

// Genre 电影类型
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieSummary 列表/搜索结果中的电影条目
type MovieSummary struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// Year 上映年份,日期缺失时返回 TBA
func (m MovieSummary) Year() string {
	return releaseYear(m.ReleaseDate)
}

// RatingLabel 评分保留一位小数,0 视为缺失
func (m MovieSummary) RatingLabel() string {
	return ratingLabel(m.VoteAverage)
}

// MoviePage 一页结果
type MoviePage struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// CastMember 演员
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
}

// CrewMember 幕后人员,同一人可能以不同职务出现多次
type CrewMember struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Key 以 人员+职务 作为唯一键
func (c CrewMember) Key() string {
	return fmt.Sprintf("%d-%s", c.ID, c.Job)
}

// Credits 演职员表
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// MovieDetail 电影详情
type MovieDetail struct {
	MovieSummary
	Runtime  int          `json:"runtime"`
	Tagline  string       `json:"tagline,omitempty"`
	Overview string       `json:"overview,omitempty"`
	Genres   []Genre      `json:"genres"`
	Cast     []CastMember `json:"cast"`
	Crew     []CrewMember `json:"crew"`
}

// Usable 是否为可展示的有效记录
func (d *MovieDetail) Usable() bool {
	return d != nil && d.ID > 0 && strings.TrimSpace(d.Title) != ""
}

// RuntimeLabel 时长格式化为 "2h 19m",未知时返回空字符串
func (d *MovieDetail) RuntimeLabel() string {
	if d == nil || d.Runtime <= 0 {
		return ""
	}
	return fmt.Sprintf("%dh %dm", d.Runtime/60, d.Runtime%60)
}

// ApplyCredits 合并演职员表:演员截取前 MaxCastMembers 个,幕后只保留导演和编剧
// credits 为 nil 时两者都置为空列表
func (d *MovieDetail) ApplyCredits(credits *Credits) {
	if credits == nil {
		d.Cast = []CastMember{}
		d.Crew = []CrewMember{}
		return
	}
	d.Cast = TruncateCast(credits.Cast, MaxCastMembers)
	d.Crew = FilterCrew(credits.Crew)
}

// TruncateCast 保持源顺序截取前 n 个
func TruncateCast(cast []CastMember, n int) []CastMember {
	if len(cast) > n {
		cast = cast[:n]
	}
	out := make([]CastMember, len(cast))
	copy(out, cast)
	return out
}

// FilterCrew 保持源顺序筛选导演和编剧,同一人的多个职务各自保留
func FilterCrew(crew []CrewMember) []CrewMember {
	out := make([]CrewMember, 0, len(crew))
	for _, c := range crew {
		if c.Job == JobDirector || c.Job == JobWriter {
			out = append(out, c)
		}
	}
	return out
}

func releaseYear(date string) string {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return "TBA"
	}
	year := date[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return "TBA"
		}
	}
	return year
}

func ratingLabel(v float64) string {
	if v <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", v)
}
