package models

import "fmt"

// Book is one entry of a personal library.
//
// Title is the lookup key for removal but is not unique: the same title
// may appear several times in a Library.
type Book struct {
	Title           string `json:"title" db:"title"`
	Author          string `json:"author" db:"author"`
	PublicationYear int    `json:"publication_year" db:"publication_year"`
	Genre           string `json:"genre" db:"genre"`
	ReadStatus      bool   `json:"read_status" db:"read_status"`
}

// ReadLabel returns "Read" or "Unread".
func (b Book) ReadLabel() string {
	if b.ReadStatus {
		return "Read"
	}
	return "Unread"
}

func (b Book) String() string {
	return fmt.Sprintf("%s by %s (%d) - %s - %s", b.Title, b.Author, b.PublicationYear, b.Genre, b.ReadLabel())
}
