package handlers

import (
	"html/template"
	"strings"

	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
)

// PageTemplateName gin HTML 渲染使用的模板名
const PageTemplateName = "page"

// PageTemplate 解析页面模板
func PageTemplate() *template.Template {
	return template.Must(template.New("movie-browser").Funcs(template.FuncMap{
		"join":        strings.Join,
		"viewModes":   func() []valueobjects.ViewMode { return []valueobjects.ViewMode{valueobjects.ViewTrending, valueobjects.ViewDiscover} },
		"timeWindows": func() []valueobjects.TimeWindow { return []valueobjects.TimeWindow{valueobjects.TimeWindowDay, valueobjects.TimeWindowWeek} },
		"sortKeys":    func() []valueobjects.SortKey { return valueobjects.SortKeys },
		// crew 姓名附带职务
		"crew": func(members []entities.CrewMember) []string {
			var out []string
			for _, m := range members {
				out = append(out, m.Name+" ("+m.Job+")")
			}
			return out
		},
	}).Parse(pageTpl))
}

const pageTpl = `{{define "page"}}<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · Movie Browser</title>
<style>
  :root { --bg:#fafafa; --fg:#1c1c1e; --card:#fff; --muted:#6b6b70; --accent:#e50914; }
  [data-theme="dark"] { --bg:#121214; --fg:#f2f2f7; --card:#1f1f23; --muted:#a1a1aa; }
  body { margin:0; font-family:system-ui,sans-serif; background:var(--bg); color:var(--fg); }
  header { display:flex; gap:12px; align-items:center; padding:12px 20px; background:var(--card); position:sticky; top:0; }
  header .search { flex:1; display:flex; gap:6px; }
  header input { flex:1; padding:6px 10px; }
  button { cursor:pointer; }
  .brand { font-weight:700; background:none; border:0; color:var(--fg); font-size:1.1em; }
  form { display:inline; margin:0; }
  main { padding:16px 20px; }
  .controls { display:flex; flex-wrap:wrap; gap:8px; margin-bottom:12px; }
  .active, .selected { background:var(--accent); color:#fff; }
  .grid { display:grid; grid-template-columns:repeat(auto-fill,minmax(160px,1fr)); gap:16px; }
  .card { background:var(--card); border-radius:8px; overflow:hidden; color:inherit; text-decoration:none; }
  .card img { width:100%; aspect-ratio:2/3; object-fit:cover; display:block; }
  .card .meta { padding:8px; font-size:.9em; }
  .muted { color:var(--muted); }
  .notice { margin:12px 20px; padding:10px; border:1px solid var(--accent); border-radius:6px; }
  .detail { display:flex; gap:24px; flex-wrap:wrap; }
  .detail img.poster { width:300px; border-radius:8px; }
  .backdrop { width:100%; max-height:320px; object-fit:cover; border-radius:8px; margin-bottom:16px; }
</style>
</head>
<body>
<header>
  <form method="post" action="/home"><button class="brand" type="submit">🎬 Movie Browser</button></form>
  <form method="get" action="/search" class="search">
    <input type="search" name="q" value="{{.Query}}" placeholder="Search movies...">
    <button type="submit">Search</button>
  </form>
  <form method="post" action="/theme/toggle"><button type="submit">{{if .DarkTheme}}☀ Light{{else}}☾ Dark{{end}}</button></form>
</header>
{{with .Error}}
<div class="notice" role="alert">
  <span>{{.Message}}</span>
  <form method="post" action="/error/retry"><button type="submit">Retry</button></form>
  <form method="post" action="/error/dismiss"><button type="submit">Dismiss</button></form>
</div>
{{end}}
<main>
{{if .IsDetail}}{{template "detail" .}}{{else}}{{template "listing" .}}{{end}}
</main>
</body>
</html>{{end}}

{{define "listing"}}
<h1>{{.Title}}</h1>
{{if .IsListing}}
<div class="controls">
  {{range viewModes}}<form method="post" action="/list/view"><button type="submit" name="value" value="{{.}}"{{if eq . $.Params.View}} class="active"{{end}}>{{.Title}}</button></form>{{end}}
</div>
{{if .IsDiscover}}
<div class="controls">
  {{range sortKeys}}<form method="post" action="/list/sort"><button type="submit" name="value" value="{{.}}"{{if eq . $.Params.SortBy}} class="active"{{end}}>{{.Label}}</button></form>{{end}}
</div>
<div class="controls">
  {{range .Genres}}<form method="post" action="/list/genres/{{.ID}}/toggle"><button type="submit"{{if .Selected}} class="selected"{{end}}>{{.Name}}</button></form>{{end}}
</div>
{{else}}
<div class="controls">
  {{range timeWindows}}<form method="post" action="/list/time-window"><button type="submit" name="value" value="{{.}}"{{if eq . $.Params.TimeWindow}} class="active"{{end}}>{{.Label}}</button></form>{{end}}
</div>
{{end}}
{{end}}
{{if .Items}}
<div class="grid">
  {{range .Items}}
  <a class="card" href="/movies/{{.ID}}">
    <img src="{{.PosterURL}}" alt="{{.Title}}" loading="lazy">
    <div class="meta"><strong>{{.Title}}</strong><br><span class="muted">{{.Year}} · ★ {{.Rating}}</span></div>
  </a>
  {{end}}
</div>
{{else if not .Loading}}
<p class="muted">{{if .IsSearching}}No movies match "{{.Query}}".{{else}}No movies to show.{{end}}</p>
{{end}}
{{if .Loading}}<p class="muted">Loading...</p>{{end}}
{{if and .IsListing .HasMore}}
<p><form method="post" action="/list/more"><button type="submit">Load More</button></form></p>
{{end}}
{{end}}

{{define "detail"}}
<form method="post" action="/back"><button type="submit">← Back</button></form>
{{if .NotFound}}
<h1>Movie not found</h1>
<p class="muted">The movie you are looking for does not exist.</p>
{{else if .Detail}}{{with .Detail}}
{{if .BackdropURL}}<img class="backdrop" src="{{.BackdropURL}}" alt="">{{end}}
<div class="detail">
  <img class="poster" src="{{.PosterURL}}" alt="{{.Title}}">
  <div>
    <h1>{{.Title}} <span class="muted">({{.Year}})</span></h1>
    {{if .Tagline}}<p><em>{{.Tagline}}</em></p>{{end}}
    <p>★ {{.Rating}}{{if .Runtime}} · {{.Runtime}}{{end}}{{if .Genres}} · {{join .Genres ", "}}{{end}}</p>
    {{if .Overview}}<p>{{.Overview}}</p>{{end}}
    {{if .Crew}}<h3>Crew</h3><p>{{join (crew .Crew) ", "}}</p>{{end}}
    {{if .Cast}}<h3>Cast</h3><ul>{{range .Cast}}<li>{{.Name}}{{if .Character}} <span class="muted">as {{.Character}}</span>{{end}}</li>{{end}}</ul>{{end}}
  </div>
</div>
{{end}}{{else}}
<p class="muted">Loading...</p>
{{end}}
{{end}}`
