package blob

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"go.uber.org/zap"
)

// S3Store keeps blobs as objects in a single bucket, keyed by reference.
type S3Store struct {
	svc    s3iface.S3API
	bucket string
	log    *zap.SugaredLogger
}

type S3Config struct {
	Bucket         string
	Region         string
	Endpoint       string
	ForcePathStyle bool
}

func NewS3Store(conf S3Config, log *zap.SugaredLogger) (*S3Store, error) {
	awsConf := &aws.Config{
		Region:           aws.String(conf.Region),
		S3ForcePathStyle: aws.Bool(conf.ForcePathStyle),
	}
	if conf.Endpoint != "" {
		awsConf.Endpoint = aws.String(conf.Endpoint)
	}

	sess, err := session.NewSession(awsConf)
	if err != nil {
		return nil, err
	}

	return NewS3StoreWithClient(s3.New(sess), conf.Bucket, log), nil
}

func NewS3StoreWithClient(svc s3iface.S3API, bucket string, log *zap.SugaredLogger) *S3Store {
	return &S3Store{svc: svc, bucket: bucket, log: log}
}

// Store buffers the upload so the SDK gets a seekable body for signing.
func (sh *S3Store) Store(ctx context.Context, r io.Reader, meta Metadata) (string, error) {
	ref, err := newRef(meta)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	contentType := contentTypeOf(ref)

	_, err = sh.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(sh.bucket),
		Key:         aws.String(ref),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		sh.log.Errorw("s3 upload failed", "bucket", sh.bucket, "ref", ref, "error", err)
		return "", err
	}

	sh.log.Infow("stored blob", "bucket", sh.bucket, "ref", ref, "size", len(data))
	return ref, nil
}

func (sh *S3Store) Open(ctx context.Context, ref string) (io.ReadCloser, Metadata, error) {
	if !ValidRef(ref) {
		return nil, Metadata{}, ErrInvalidRef
	}

	out, err := sh.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(sh.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return nil, Metadata{}, translateS3Error(err)
	}

	meta := Metadata{
		Name:        ref,
		ContentType: contentTypeOf(ref),
		Size:        aws.Int64Value(out.ContentLength),
	}

	return out.Body, meta, nil
}

// Delete checks for the object first since S3 reports success for
// deleting a key that does not exist.
func (sh *S3Store) Delete(ctx context.Context, ref string) error {
	if !ValidRef(ref) {
		return ErrInvalidRef
	}

	_, err := sh.svc.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(sh.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return translateS3Error(err)
	}

	_, err = sh.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(sh.bucket),
		Key:    aws.String(ref),
	})
	return translateS3Error(err)
}

func translateS3Error(err error) error {
	if err == nil {
		return nil
	}

	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return ErrNotFound
		}
	}

	return err
}
