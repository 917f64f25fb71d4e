package types

import (
	"time"
)

type User struct {
	ClerkId   string    `json:"clerkId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	ImageUrl  string    `json:"imageUrl"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Club struct {
	Id             int64    `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	FoundingYear   *int     `json:"foundingYear"`
	MembershipFee  *float64 `json:"membershipFee"`
	MaxCapacity    *int     `json:"maxCapacity"`
	CurrentMembers *int     `json:"currentMembers"`
	ContactEmail   string   `json:"contactEmail"`
	BannerUrl      string   `json:"bannerUrl"`
	User           *User    `json:"user"`
}

type Book struct {
	Id              int64   `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	PublicationYear *int    `json:"publicationYear"`
	Isbn            string  `json:"isbn"`
	User            *User   `json:"user"`
}

type Message struct {
	Id        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	User      *User     `json:"user"`
}

// TypingStatus is relayed to typing subscribers and never stored.
type TypingStatus struct {
	Username string `json:"username"`
	Typing   bool   `json:"typing"`
}
