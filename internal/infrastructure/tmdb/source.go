package tmdb

import (
	"context"
	"fmt"

	"github.com/easayliu/movie-browser/internal/application/contracts"
	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
	apperrors "github.com/easayliu/movie-browser/internal/shared/errors"
)

// MovieSource 将 Client 适配为 contracts.MovieSource
type MovieSource struct {
	client *Client
}

var _ contracts.MovieSource = (*MovieSource)(nil)

func NewMovieSource(client *Client) *MovieSource {
	return &MovieSource{client: client}
}

func (s *MovieSource) ListMovies(ctx context.Context, params valueobjects.ListParams) (*entities.MoviePage, error) {
	resp, err := s.client.FetchMovieList(ctx, ListRequest(params))
	if err != nil {
		return nil, err
	}
	return toMoviePage(resp), nil
}

func (s *MovieSource) SearchMovies(ctx context.Context, query string) (*entities.MoviePage, error) {
	resp, err := s.client.SearchMovie(ctx, query)
	if err != nil {
		return nil, err
	}
	return toMoviePage(resp), nil
}

func (s *MovieSource) GetMovie(ctx context.Context, id int) (*entities.MovieDetail, error) {
	d, err := s.client.GetMovieDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &entities.MovieDetail{
		MovieSummary: entities.MovieSummary{
			ID:           d.ID,
			Title:        d.Title,
			PosterPath:   d.PosterPath,
			BackdropPath: d.BackdropPath,
			VoteAverage:  d.VoteAverage,
			ReleaseDate:  d.ReleaseDate,
		},
		Runtime:  d.Runtime,
		Tagline:  d.Tagline,
		Overview: d.Overview,
		Genres:   make([]entities.Genre, 0, len(d.Genres)),
	}
	for _, g := range d.Genres {
		detail.Genres = append(detail.Genres, entities.Genre{ID: g.ID, Name: g.Name})
		detail.GenreIDs = append(detail.GenreIDs, g.ID)
	}

	if !detail.Usable() {
		return nil, apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodeNotFound,
			fmt.Sprintf("movie %d has no usable record", id), map[string]interface{}{"movie_id": id})
	}
	return detail, nil
}

func (s *MovieSource) GetCredits(ctx context.Context, id int) (*entities.Credits, error) {
	c, err := s.client.GetMovieCredits(ctx, id)
	if err != nil {
		return nil, err
	}

	credits := &entities.Credits{
		Cast: make([]entities.CastMember, 0, len(c.Cast)),
		Crew: make([]entities.CrewMember, 0, len(c.Crew)),
	}
	for _, m := range c.Cast {
		credits.Cast = append(credits.Cast, entities.CastMember{ID: m.ID, Name: m.Name, Character: m.Character})
	}
	for _, m := range c.Crew {
		credits.Crew = append(credits.Crew, entities.CrewMember{ID: m.ID, Name: m.Name, Job: m.Job})
	}
	return credits, nil
}

func (s *MovieSource) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	genres, err := s.client.GetGenres(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Genre, 0, len(genres))
	for _, g := range genres {
		out = append(out, entities.Genre{ID: g.ID, Name: g.Name})
	}
	return out, nil
}

func toMoviePage(resp *MovieListResponse) *entities.MoviePage {
	page := &entities.MoviePage{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Results:      make([]entities.MovieSummary, 0, len(resp.Results)),
	}
	for _, r := range resp.Results {
		page.Results = append(page.Results, ToSummary(r))
	}
	return page
}

// ToSummary 列表条目转换
func ToSummary(r MovieResult) entities.MovieSummary {
	return entities.MovieSummary{
		ID:           r.ID,
		Title:        r.Title,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
		VoteAverage:  r.VoteAverage,
		ReleaseDate:  r.ReleaseDate,
		GenreIDs:     r.GenreIDs,
	}
}
