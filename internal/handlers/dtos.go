package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/homeflix/homeflix/internal/models"
)

// CreatorResponse identifies the user who created a catalog record
type CreatorResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedBy *CreatorResponse `json:"created_by,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// GenreResponse represents a genre in API responses
type GenreResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedBy *CreatorResponse `json:"created_by,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// MovieResponse represents a movie with its embedded tags and genres
type MovieResponse struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Tags      []TagResponse    `json:"tags"`
	Genres    []GenreResponse  `json:"genres"`
	CreatedBy *CreatorResponse `json:"created_by,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ListingResponse represents a listing with its embedded movie
type ListingResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	StreamURL          string           `json:"stream_url"`
	SeasonNumber       int              `json:"season_number"`
	EpisodeNumber      int              `json:"episode_number"`
	ContentDescription string           `json:"content_description"`
	Movie              *MovieResponse   `json:"movie,omitempty"`
	CreatedBy          *CreatorResponse `json:"created_by,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ProfileResponse represents a viewing profile
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NameRef is a nested tag or genre reference on movie writes. Names are
// get-or-created under the requesting user.
type NameRef struct {
	Name string `json:"name" validate:"required,min=1,max=30"`
}

func creatorToResponse(u *models.User) *CreatorResponse {
	if u == nil {
		return nil
	}
	return &CreatorResponse{ID: u.ID, Email: u.Email}
}

func tagToResponse(t *models.Tag) TagResponse {
	return TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatedBy: creatorToResponse(t.Creator),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func genreToResponse(g *models.Genre) GenreResponse {
	return GenreResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: creatorToResponse(g.Creator),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func movieToResponse(m *models.Movie) MovieResponse {
	tags := make([]TagResponse, 0, len(m.Tags))
	for _, t := range m.Tags {
		tags = append(tags, tagToResponse(t))
	}
	genres := make([]GenreResponse, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, genreToResponse(g))
	}
	return MovieResponse{
		ID:        m.ID,
		Title:     m.Title,
		Tags:      tags,
		Genres:    genres,
		CreatedBy: creatorToResponse(m.Creator),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func listingToResponse(l *models.Listing) ListingResponse {
	resp := ListingResponse{
		ID:                 l.ID,
		Name:               l.Name,
		StreamURL:          l.StreamURL,
		SeasonNumber:       l.SeasonNumber,
		EpisodeNumber:      l.EpisodeNumber,
		ContentDescription: l.ContentDescription,
		CreatedBy:          creatorToResponse(l.Creator),
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
	if l.Movie != nil {
		movie := movieToResponse(l.Movie)
		resp.Movie = &movie
	}
	return resp
}

func profileToResponse(p *models.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// parsePagination reads limit/offset query params, clamping to sane bounds
func parsePagination(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func refNames(refs []NameRef) []string {
	if refs == nil {
		return nil
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}
