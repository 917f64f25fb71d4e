package blob

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Store(ctx context.Context, r io.Reader, meta Metadata) (string, error) {
	args := m.Called(ctx, r, meta)
	return args.String(0), args.Error(1)
}
func (m *MockStore) Open(ctx context.Context, ref string) (io.ReadCloser, Metadata, error) {
	args := m.Called(ctx, ref)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Get(1).(Metadata), args.Error(2)
	}
	return nil, args.Get(1).(Metadata), args.Error(2)
}
func (m *MockStore) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}
