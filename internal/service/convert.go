package service

import (
	"github.com/npezzotti/go-clubs/internal/database"
	"github.com/npezzotti/go-clubs/internal/types"
)

func clubOwner(c database.Club) string { return c.UserId }

func bookOwner(b database.Book) string { return b.UserId }

func toClub(c database.Club, owner *types.User) types.Club {
	return types.Club{
		Id:             c.Id,
		Name:           c.Name,
		Description:    c.Description,
		Location:       c.Location,
		FoundingYear:   c.FoundingYear,
		MembershipFee:  c.MembershipFee,
		MaxCapacity:    c.MaxCapacity,
		CurrentMembers: c.CurrentMembers,
		ContactEmail:   c.ContactEmail,
		BannerUrl:      c.BannerUrl,
		User:           owner,
	}
}

// clubFields copies the caller-editable fields. Id, owner and banner are
// always set by the service.
func clubFields(c types.Club) database.Club {
	return database.Club{
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

func toBook(b database.Book, owner *types.User) types.Book {
	return types.Book{
		Id:              b.Id,
		Title:           b.Title,
		Author:          b.Author,
		Description:     b.Description,
		Price:           b.Price,
		PublicationYear: b.PublicationYear,
		Isbn:            b.Isbn,
		User:            owner,
	}
}

func bookFields(b types.Book) database.Book {
	return database.Book{
		Title:           b.Title,
		Author:          b.Author,
		Description:     b.Description,
		Price:           b.Price,
		PublicationYear: b.PublicationYear,
		Isbn:            b.Isbn,
	}
}

func toMessage(m database.Message, owner *types.User) types.Message {
	return types.Message{
		Id:        m.Id,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		User:      owner,
	}
}
