// Package source reads report definition files from the local filesystem or
// from Google Cloud Storage.
package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/utils/logging"
	"github.com/secmon-lab/riskcard/pkg/utils/safe"
	"google.golang.org/api/option"
)

// Format is the encoding of a report definition file
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

const gcsScheme = "gs://"

// MaxSize is the largest report file accepted
const MaxSize = 1 << 20

var (
	ErrNotFound          = goerr.New("report source not found")
	ErrUnsupportedFormat = goerr.New("unsupported report format")
	ErrTooLarge          = goerr.New("report source too large")
)

// FormatOf derives the file format from the extension of location
func FormatOf(location string) (Format, error) {
	switch strings.ToLower(path.Ext(location)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", goerr.Wrap(ErrUnsupportedFormat, "report file extension must be .toml, .yaml, .yml or .json",
			goerr.V("location", location))
	}
}

type reader struct {
	gcsOptions []option.ClientOption
}

type Option func(*reader)

// WithCredentialsFile sets the service account key used for gs:// locations.
// Without it Application Default Credentials are used.
func WithCredentialsFile(path string) Option {
	return func(r *reader) {
		if path != "" {
			r.gcsOptions = append(r.gcsOptions, option.WithCredentialsFile(path))
		}
	}
}

// WithClientOptions appends raw GCS client options, e.g. an endpoint for an emulator
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(r *reader) {
		r.gcsOptions = append(r.gcsOptions, opts...)
	}
}

// Read loads the report file at location, a local path or gs://bucket/object
func Read(ctx context.Context, location string, opts ...Option) ([]byte, Format, error) {
	format, err := FormatOf(location)
	if err != nil {
		return nil, "", err
	}

	r := &reader{}
	for _, opt := range opts {
		opt(r)
	}

	var data []byte
	if strings.HasPrefix(location, gcsScheme) {
		data, err = r.readGCS(ctx, location)
	} else {
		data, err = readFile(ctx, location)
	}
	if err != nil {
		return nil, "", err
	}

	logging.From(ctx).Debug("report source loaded",
		"location", location,
		"format", format,
		"size", len(data),
	)
	return data, format, nil
}

func readFile(ctx context.Context, p string) ([]byte, error) {
	fd, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrNotFound, "report file does not exist", goerr.V("path", p))
		}
		return nil, goerr.Wrap(err, "failed to open report file", goerr.V("path", p))
	}
	defer safe.Close(ctx, fd)

	return readLimited(fd, p)
}

// ParseGCSURL splits gs://bucket/object into bucket and object names
func ParseGCSURL(location string) (string, string, error) {
	rest, ok := strings.CutPrefix(location, gcsScheme)
	if !ok {
		return "", "", goerr.New("not a gs:// URL", goerr.V("location", location))
	}
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", goerr.New("gs:// URL must name a bucket and an object", goerr.V("location", location))
	}
	return bucket, object, nil
}

func (r *reader) readGCS(ctx context.Context, location string) ([]byte, error) {
	bucket, object, err := ParseGCSURL(location)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx, r.gcsOptions...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}
	defer safe.Close(ctx, client)

	obj, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, goerr.Wrap(ErrNotFound, "report object does not exist",
				goerr.V("bucket", bucket), goerr.V("object", object))
		}
		return nil, goerr.Wrap(err, "failed to open report object",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}
	defer safe.Close(ctx, obj)

	return readLimited(obj, location)
}

func readLimited(src io.Reader, location string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(src, MaxSize+1))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read report source", goerr.V("location", location))
	}
	if len(data) > MaxSize {
		return nil, goerr.Wrap(ErrTooLarge, "report source exceeds size limit",
			goerr.V("location", location), goerr.V("limit", MaxSize))
	}
	return data, nil
}
