package models

import (
	"time"
)

type Movie struct {
	ID        string
	Title     string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated by the movie repository on reads
	Tags   []*Tag
	Genres []*Genre

	// Creator, resolved for responses
	Creator *User
}

type Tag struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	Creator *User
}

type Genre struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	Creator *User
}

type Listing struct {
	ID                 string
	Name               string
	StreamURL          string
	SeasonNumber       int
	EpisodeNumber      int
	ContentDescription string
	MovieID            string
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Populated by the listing repository on reads
	Movie *Movie

	Creator *User
}
