package api

import (
	"github.com/npezzotti/go-clubs/internal/types"
)

// UserRequest accepts the external identity as clerkId or externalId.
type UserRequest struct {
	ClerkId    string `json:"clerkId"`
	ExternalId string `json:"externalId"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	ImageUrl   string `json:"imageUrl"`
	Username   string `json:"username"`
}

func (u UserRequest) id() string {
	if u.ClerkId != "" {
		return u.ClerkId
	}
	return u.ExternalId
}

func (u UserRequest) valid() bool {
	return u.id() != "" && u.Email != "" && u.Username != ""
}

func (u UserRequest) user() types.User {
	return types.User{
		ClerkId:   u.id(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ImageUrl:  u.ImageUrl,
		Username:  u.Username,
	}
}

type ClubRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	FoundingYear   *int     `json:"foundingYear"`
	MembershipFee  *float64 `json:"membershipFee"`
	MaxCapacity    *int     `json:"maxCapacity"`
	CurrentMembers *int     `json:"currentMembers"`
	ContactEmail   string   `json:"contactEmail"`
}

func (c ClubRequest) valid() bool {
	return c.Name != "" && c.Description != "" && c.Location != ""
}

func (c ClubRequest) club() types.Club {
	return types.Club{
		Name:           c.Name,
		Description:    c.Description,
		Location:       c.Location,
		FoundingYear:   c.FoundingYear,
		MembershipFee:  c.MembershipFee,
		MaxCapacity:    c.MaxCapacity,
		CurrentMembers: c.CurrentMembers,
		ContactEmail:   c.ContactEmail,
	}
}

// BookRequest.Price is a pointer so that a missing price can be told
// apart from a free book.
type BookRequest struct {
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Description     string   `json:"description"`
	Price           *float64 `json:"price"`
	PublicationYear *int     `json:"publicationYear"`
	Isbn            string   `json:"isbn"`
}

func (b BookRequest) valid() bool {
	return b.Title != "" && b.Author != "" && b.Price != nil && *b.Price >= 0
}

func (b BookRequest) book() types.Book {
	var price float64
	if b.Price != nil {
		price = *b.Price
	}
	return types.Book{
		Title:           b.Title,
		Author:          b.Author,
		Description:     b.Description,
		Price:           price,
		PublicationYear: b.PublicationYear,
		Isbn:            b.Isbn,
	}
}

type MessageRequest struct {
	Content string `json:"content"`
}

func (m MessageRequest) valid() bool {
	return m.Content != ""
}
