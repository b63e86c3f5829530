package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/gigledger/backend/internal/application/adapter"
)

// filterQuery narrows a collection to the filter, newest first.
func filterQuery(collection *firestore.CollectionRef, filter adapter.RecordFilter) firestore.Query {
	query := collection.
		Where("user_id", "==", filter.UserID.String()).
		Where("is_deleted", "==", filter.Deleted)
	if filter.Range != nil {
		query = query.
			Where("date", ">=", filter.Range.Start.UTC()).
			Where("date", "<=", filter.Range.End.UTC())
	}
	return query.OrderBy("date", firestore.Desc)
}

// readAll decodes every document of an iterator.
func readAll[T any](docs *firestore.DocumentIterator, decode func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	defer docs.Stop()

	var items []T
	for {
		doc, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			return items, nil
		}
		if err != nil {
			return nil, err
		}
		item, err := decode(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", doc.Ref.ID, err)
		}
		items = append(items, item)
	}
}

// observeQuery streams the query result on every server-side change.
func observeQuery[T, S any](
	ctx context.Context,
	query firestore.Query,
	decode func(*firestore.DocumentSnapshot) (T, error),
	wrap func([]T, error) S,
) <-chan S {
	out := make(chan S, 1)
	go func() {
		defer close(out)

		snapshots := query.Snapshots(ctx)
		defer snapshots.Stop()

		for {
			snapshot, err := snapshots.Next()
			if err != nil {
				if ctx.Err() != nil || isCanceled(err) {
					return
				}
				slog.Error("Firestore snapshot listener failed", "error", err)
				select {
				case out <- wrap(nil, err):
				case <-ctx.Done():
				}
				return
			}

			items, err := readAll(snapshot.Documents, decode)
			select {
			case out <- wrap(items, err):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// deleteWhere deletes every document matched by the query with a bulk writer.
func deleteWhere(ctx context.Context, client *firestore.Client, query firestore.Query) error {
	refs, err := readAll(query.Documents(ctx), func(doc *firestore.DocumentSnapshot) (*firestore.DocumentRef, error) {
		return doc.Ref, nil
	})
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}

	writer := client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := writer.Delete(ref)
		if err != nil {
			writer.End()
			return err
		}
		jobs = append(jobs, job)
	}
	writer.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return err
		}
	}
	return nil
}
