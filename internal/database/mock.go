package database

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockUserRepository) Get(ctx context.Context, clerkId string) (User, error) {
	args := m.Called(ctx, clerkId)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockUserRepository) Save(ctx context.Context, user User) (User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockUserRepository) Delete(ctx context.Context, clerkId string) error {
	args := m.Called(ctx, clerkId)
	return args.Error(0)
}

type MockClubRepository struct {
	mock.Mock
}

func (m *MockClubRepository) List(ctx context.Context) ([]Club, error) {
	args := m.Called(ctx)
	if clubs, ok := args.Get(0).([]Club); ok {
		return clubs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockClubRepository) Get(ctx context.Context, id int64) (Club, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Club), args.Error(1)
}
func (m *MockClubRepository) Save(ctx context.Context, club Club) (Club, error) {
	args := m.Called(ctx, club)
	return args.Get(0).(Club), args.Error(1)
}
func (m *MockClubRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) List(ctx context.Context) ([]Book, error) {
	args := m.Called(ctx)
	if books, ok := args.Get(0).([]Book); ok {
		return books, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockBookRepository) Get(ctx context.Context, id int64) (Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Book), args.Error(1)
}
func (m *MockBookRepository) Save(ctx context.Context, book Book) (Book, error) {
	args := m.Called(ctx, book)
	return args.Get(0).(Book), args.Error(1)
}
func (m *MockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) List(ctx context.Context) ([]Message, error) {
	args := m.Called(ctx)
	if msgs, ok := args.Get(0).([]Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMessageRepository) Get(ctx context.Context, id int64) (Message, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockMessageRepository) Save(ctx context.Context, msg Message) (Message, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockMessageRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
