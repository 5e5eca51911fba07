package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hr-eval/core/hris"
	"hr-eval/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver writes the upstream employee payload of each successful sync
// pass to object storage, giving operators a forensic trail for the
// change-detection decisions. Archive failures never affect the pass.
type Archiver struct {
	client storage.Client
	bucket string
	log    *zap.Logger
}

// NewArchiver creates a snapshot archiver over the given storage client.
func NewArchiver(client storage.Client, bucket string, log *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, log: log}
}

// Archive stores one snapshot named after the pass start time. It is meant
// to be called fire-and-forget; all failures are logged, not returned.
func (a *Archiver) Archive(ctx context.Context, startedAt time.Time, employees []hris.Employee) {
	objectName := fmt.Sprintf("snapshots/employees-%s.json", startedAt.UTC().Format("20060102T150405Z"))

	if err := a.ensureBucket(ctx); err != nil {
		a.log.Warn("Snapshot archive bucket unavailable", zap.Error(err))
		return
	}

	data, err := json.Marshal(employees)
	if err != nil {
		a.log.Warn("Failed to encode snapshot", zap.Error(err))
		return
	}

	_, err = a.client.PutObject(ctx, a.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		a.log.Warn("Failed to archive sync snapshot",
			zap.String("object", objectName),
			zap.Error(err),
		)
		return
	}

	a.log.Info("Archived sync snapshot",
		zap.String("object", objectName),
		zap.Int("employees", len(employees)),
	)
}

func (a *Archiver) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
}
