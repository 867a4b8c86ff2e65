package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinScore = 1
	MaxScore = 10
)

type Review struct {
	ID       uuid.UUID `db:"id"`
	TitleID  uuid.UUID `db:"title_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
	Score    int       `db:"score"`
	PubDate  time.Time `db:"pub_date"`

	// Username of the author, filled by joins on read.
	AuthorUsername string `db:"-"`
}

type Comment struct {
	ID       uuid.UUID `db:"id"`
	ReviewID uuid.UUID `db:"review_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
	PubDate  time.Time `db:"pub_date"`

	AuthorUsername string `db:"-"`
}

// ReviewInput carries the client-settable fields of a review.
type ReviewInput struct {
	Text  string
	Score int
}

// NewReview builds a review owned by author on title. Author and title are
// never taken from client input.
func NewReview(author *User, title *Title, in ReviewInput, now time.Time) *Review {
	return &Review{
		ID:             uuid.New(),
		TitleID:        title.ID,
		AuthorID:       author.ID,
		Text:           in.Text,
		Score:          in.Score,
		PubDate:        now,
		AuthorUsername: author.Username,
	}
}

// NewComment builds a comment owned by author on review.
func NewComment(author *User, review *Review, text string, now time.Time) *Comment {
	return &Comment{
		ID:             uuid.New(),
		ReviewID:       review.ID,
		AuthorID:       author.ID,
		Text:           text,
		PubDate:        now,
		AuthorUsername: author.Username,
	}
}
