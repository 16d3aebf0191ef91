package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/neodb/blobstore"
	"github.com/hupe1980/neodb/internal/hash"
)

// Client is the subset of the S3 API used by Store. *s3.Client satisfies it.
type Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// DownloadConfig tunes whole-object reads.
type DownloadConfig struct {
	// PartSize is the size of each ranged part request.
	// Default: 8MB
	PartSize int64

	// Concurrency is the number of parts fetched in parallel. Values below 2
	// disable the transfer manager and read with a single GetObject.
	// Default: 5
	Concurrency int
}

// DefaultDownloadConfig returns the default download settings.
func DefaultDownloadConfig() DownloadConfig {
	return DownloadConfig{
		PartSize:    8 * 1024 * 1024,
		Concurrency: 5,
	}
}

// Option configures a Store.
type Option func(*Store)

// WithDownloadConfig overrides the download settings.
func WithDownloadConfig(cfg DownloadConfig) Option {
	return func(s *Store) {
		s.download = cfg
	}
}

// Store implements blobstore.Store and blobstore.Putter for S3.
type Store struct {
	client   Client
	bucket   string
	prefix   string
	download DownloadConfig
}

// NewStore creates a new S3 blob store.
// rootPrefix is prepended to all keys (e.g. "neo/").
func NewStore(client Client, bucket, rootPrefix string, optFns ...Option) *Store {
	s := &Store{
		client:   client,
		bucket:   bucket,
		prefix:   rootPrefix,
		download: DefaultDownloadConfig(),
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// NewFromConfig creates a Store using the default AWS credential chain and
// region resolution.
func NewFromConfig(ctx context.Context, bucket, rootPrefix string, optFns ...Option) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}
	return NewStore(s3.NewFromConfig(cfg), bucket, rootPrefix, optFns...), nil
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open checks that the object exists and returns a lazily read blob.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, blobstore.ErrNotFound
		}
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	return &s3Blob{
		ctx:      ctx,
		client:   s.client,
		bucket:   s.bucket,
		key:      key,
		size:     aws.ToInt64(head.ContentLength),
		download: s.download,
	}, nil
}

// Put uploads data with a single PutObject call. S3 verifies the CRC32C
// checksum sent along with the body.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:            aws.String(s.bucket),
		Key:               aws.String(s.key(name)),
		Body:              bytes.NewReader(data),
		ContentLength:     aws.Int64(int64(len(data))),
		ChecksumAlgorithm: types.ChecksumAlgorithmCrc32c,
		ChecksumCRC32C:    aws.String(hash.CRC32CBase64(data)),
	})
	return err
}

// s3Blob implements blobstore.Blob.
type s3Blob struct {
	ctx      context.Context
	client   Client
	bucket   string
	key      string
	size     int64
	download DownloadConfig
}

func (b *s3Blob) Close() error {
	return nil
}

func (b *s3Blob) Size() int64 {
	return b.size
}

// ReadAt reads len(p) bytes starting at offset off. A read of the whole
// object goes through the transfer manager when concurrency is enabled.
func (b *s3Blob) ReadAt(p []byte, off int64) (int, error) {
	if off >= b.size {
		return 0, io.EOF
	}
	if err := b.ctx.Err(); err != nil {
		return 0, err
	}

	if off == 0 && int64(len(p)) >= b.size && b.download.Concurrency > 1 {
		return b.downloadAll(p)
	}

	end := off + int64(len(p)) - 1
	if end >= b.size {
		end = b.size - 1
	}

	resp, err := b.client.GetObject(b.ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	want := int(end - off + 1)
	n, err := io.ReadFull(resp.Body, p[:want])
	if err != nil {
		return n, err
	}
	if want < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *s3Blob) downloadAll(p []byte) (int, error) {
	d := manager.NewDownloader(b.client, func(d *manager.Downloader) {
		d.PartSize = b.download.PartSize
		d.Concurrency = b.download.Concurrency
	})

	buf := manager.NewWriteAtBuffer(p[:0])
	n64, err := d.Download(b.ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
	})
	if err != nil {
		return 0, err
	}

	n := copy(p, buf.Bytes()[:n64])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
