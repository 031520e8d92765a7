package gridfs

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Apurer/marketplace-api/internal/domains/listings/ports"
)

const bucketName = "listing_images"

var _ ports.ImageStorage = (*Storage)(nil)

// Storage keeps listing images in a MongoDB GridFS bucket keyed by stored name.
type Storage struct {
	bucket *gridfs.Bucket
}

// New opens the listing image bucket on the given database.
func New(db *mongo.Database) (*Storage, error) {
	if db == nil {
		return nil, errors.New("mongo database is nil")
	}
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, err
	}
	return &Storage{bucket: bucket}, nil
}

func (s *Storage) Save(ctx context.Context, name string, body io.Reader) error {
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentTypeOf(name)})
	stream, err := s.bucket.OpenUploadStream(name, opts)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}
	if _, err := io.Copy(stream, body); err != nil {
		_ = stream.Abort()
		return err
	}
	return stream.Close()
}

func (s *Storage) Open(ctx context.Context, name string) (*ports.StoredImage, error) {
	stream, err := s.bucket.OpenDownloadStreamByName(name)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ports.ErrImageNotFound
		}
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetReadDeadline(deadline)
	}
	return &ports.StoredImage{
		Name:        name,
		ContentType: contentTypeOf(name),
		Size:        stream.GetFile().Length,
		Body:        stream,
	}, nil
}

func (s *Storage) Delete(ctx context.Context, name string) error {
	cursor, err := s.bucket.FindContext(ctx, bson.M{"filename": name})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	for cursor.Next(ctx) {
		var file struct {
			ID any `bson:"_id"`
		}
		if err := cursor.Decode(&file); err != nil {
			return err
		}
		if err := s.bucket.DeleteContext(ctx, file.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return err
		}
	}
	return cursor.Err()
}

func contentTypeOf(name string) string {
	return mime.TypeByExtension(filepath.Ext(name))
}
