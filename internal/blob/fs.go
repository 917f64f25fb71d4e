package blob

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStore keeps blobs as flat files in a single directory.
type FileStore struct {
	dir string
	log *zap.SugaredLogger
}

func NewFileStore(dir string, log *zap.SugaredLogger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &FileStore{dir: dir, log: log}, nil
}

func (fh *FileStore) Store(ctx context.Context, r io.Reader, meta Metadata) (string, error) {
	ref, err := newRef(meta)
	if err != nil {
		return "", err
	}

	location := filepath.Join(fh.dir, ref)
	outfile, err := os.OpenFile(location, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		fh.log.Errorw("failed to create file", "location", location, "error", err)
		return "", err
	}

	size, err := io.Copy(outfile, r)
	if cerr := outfile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(location)
		return "", err
	}

	fh.log.Infow("stored blob", "ref", ref, "size", size)
	return ref, nil
}

func (fh *FileStore) Open(ctx context.Context, ref string) (io.ReadCloser, Metadata, error) {
	if !ValidRef(ref) {
		return nil, Metadata{}, ErrInvalidRef
	}

	file, err := os.Open(filepath.Join(fh.dir, ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Metadata{}, ErrNotFound
		}
		return nil, Metadata{}, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, Metadata{}, err
	}

	return file, Metadata{Name: ref, ContentType: contentTypeOf(ref), Size: info.Size()}, nil
}

func (fh *FileStore) Delete(ctx context.Context, ref string) error {
	if !ValidRef(ref) {
		return ErrInvalidRef
	}

	err := os.Remove(filepath.Join(fh.dir, ref))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}

	return err
}
