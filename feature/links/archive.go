package links

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"travel-admin/core/reconcile"
	"travel-admin/core/storage"

	"github.com/minio/minio-go/v7"
)

// Archive stores reconciliation reports as JSON objects.
// Keys follow <prefix>/<kind>/<parent>/<unix-nano>.json.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewArchive creates an archive writing under prefix in bucket.
func NewArchive(client storage.Client, bucket, prefix string) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// ArchivedReport is a report read back from the archive.
type ArchivedReport struct {
	Key        string    `json:"key"`
	ArchivedAt time.Time `json:"archived_at"`
	Report     *Report   `json:"report"`
}

func (a *Archive) dir(kind string, parent uint) string {
	return path.Join(a.prefix, kind, strconv.FormatUint(uint64(parent), 10)) + "/"
}

// Save writes the report and returns its object key.
func (a *Archive) Save(ctx context.Context, report *Report) (string, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	key := a.dir(report.Kind, report.ParentID) + strconv.FormatInt(a.now().UnixNano(), 10) + ".json"
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", key, err)
	}
	return key, nil
}

// History returns the archived reports of one parent, newest first, at most limit entries.
// A limit of zero or less returns every report.
func (a *Archive) History(ctx context.Context, kind string, parent uint, limit int) ([]ArchivedReport, error) {
	type entry struct {
		key string
		at  time.Time
	}

	var entries []entry
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: a.dir(kind, parent), Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		nanos, err := strconv.ParseInt(strings.TrimSuffix(path.Base(obj.Key), ".json"), 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, entry{key: obj.Key, at: time.Unix(0, nanos).UTC()})
	}

	slices.SortFunc(entries, func(x, y entry) int {
		return y.at.Compare(x.at)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]ArchivedReport, 0, len(entries))
	for _, e := range entries {
		report, err := a.load(ctx, e.key)
		if err != nil {
			return nil, err
		}
		out = append(out, ArchivedReport{Key: e.key, ArchivedAt: e.at, Report: report})
	}
	return out, nil
}

func (a *Archive) load(ctx context.Context, key string) (*Report, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download report %s: %w", key, err)
	}
	defer obj.Close()

	var stored storedReport
	if err := json.NewDecoder(obj).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", key, err)
	}
	return stored.toReport(), nil
}

// storedReport mirrors the archived JSON. Failures keep their error text and class
// since the wrapped error values do not survive JSON.
type storedReport struct {
	Kind         string `json:"kind"`
	ParentID     uint   `json:"parent_id"`
	Status       string `json:"status"`
	Message      string `json:"message"`
	AddedCount   int    `json:"added_count"`
	RemovedCount int    `json:"removed_count"`
	Incomplete   bool   `json:"incomplete"`
	Failures     []struct {
		Kind    string `json:"kind"`
		ChildID uint   `json:"child_id"`
		Class   string `json:"class"`
		Error   string `json:"error"`
	} `json:"failures"`
}

func (s storedReport) toReport() *Report {
	r := &Report{
		Kind:     s.Kind,
		ParentID: s.ParentID,
		Status:   s.Status,
		Message:  s.Message,
	}
	r.AddedCount = s.AddedCount
	r.RemovedCount = s.RemovedCount
	r.Incomplete = s.Incomplete
	r.Failures = make([]reconcile.FailedOperation[uint], 0, len(s.Failures))
	for _, f := range s.Failures {
		r.Failures = append(r.Failures, reconcile.FailedOperation[uint]{
			Kind:    reconcile.OperationKind(f.Kind),
			ChildID: f.ChildID,
			Err:     archivedError{msg: f.Error, class: reconcile.FailureClass(f.Class)},
		})
	}
	return r
}

// archivedError restores the failure class of an archived failure.
type archivedError struct {
	msg   string
	class reconcile.FailureClass
}

func (e archivedError) Error() string { return e.msg }

func (e archivedError) Is(target error) bool {
	switch e.class {
	case reconcile.ClassNetwork:
		return target == reconcile.ErrNetwork
	case reconcile.ClassConflict:
		return target == reconcile.ErrConflict
	case reconcile.ClassNotFound:
		return target == reconcile.ErrNotFound
	case reconcile.ClassCanceled:
		return target == reconcile.ErrCanceled
	}
	return false
}
