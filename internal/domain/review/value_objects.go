package review

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
)

const MaxDescriptionLength = 255

type Rating struct {
	value int
}

func NewRating(v int) (Rating, error) {
	if v < 1 || v > 5 {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: v}, nil
}

func (r Rating) Value() int { return r.value }

type Description struct {
	text string
}

func NewDescription(s string) (Description, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Description{}, ErrEmptyDescription
	}
	if len(t) > MaxDescriptionLength {
		return Description{}, ErrDescriptionTooLong
	}
	return Description{text: t}, nil
}

func (d Description) String() string { return d.text }
