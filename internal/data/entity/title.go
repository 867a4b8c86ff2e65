package entity

import "github.com/google/uuid"

const (
	// MinTitleYear is the year of the first film screening.
	MinTitleYear = 1895
	// MaxTitleYear is the storage-level upper bound on Title.Year.
	MaxTitleYear = 2100
)

type Category struct {
	BaseSimple
	Name string `db:"name"`
	Slug string `db:"slug"`
}

type Genre struct {
	BaseSimple
	Name string `db:"name"`
	Slug string `db:"slug"`
}

type Title struct {
	BaseNoDelete
	Name        string     `db:"name"`
	Year        *int       `db:"year"`
	Description string     `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`
}

// TitleFilter narrows a title listing. Empty fields do not filter.
type TitleFilter struct {
	Name     string
	Year     *int
	Genre    string
	Category string
}
