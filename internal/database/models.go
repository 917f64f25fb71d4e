package database

import "time"

type User struct {
	ClerkId   string    `db:"clerk_id"`
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	ImageUrl  string    `db:"image_url"`
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Club rows reference their owner by clerkId only.
type Club struct {
	Id             int64    `db:"id"`
	Name           string   `db:"name"`
	Description    string   `db:"description"`
	Location       string   `db:"location"`
	FoundingYear   *int     `db:"founding_year"`
	MembershipFee  *float64 `db:"membership_fee"`
	MaxCapacity    *int     `db:"max_capacity"`
	CurrentMembers *int     `db:"current_members"`
	ContactEmail   string   `db:"contact_email"`
	BannerUrl      string   `db:"banner_url"`
	UserId         string   `db:"user_id"`
}

// Book.Isbn is stored as NULL when empty so that the unique index
// only applies to books that have one.
type Book struct {
	Id              int64   `db:"id"`
	Title           string  `db:"title"`
	Author          string  `db:"author"`
	Description     string  `db:"description"`
	Price           float64 `db:"price"`
	PublicationYear *int    `db:"publication_year"`
	Isbn            string  `db:"isbn"`
	UserId          string  `db:"user_id"`
}

type Message struct {
	Id        int64     `db:"id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UserId    string    `db:"user_id"`
}
