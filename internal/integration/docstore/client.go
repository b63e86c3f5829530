// Package docstore stores shifts and expenses in Cloud Firestore.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gigledger/backend/config"
)

const (
	shiftsCollection   = "shifts"
	expensesCollection = "expenses"
)

// NewClient opens a Firestore client for the configured project.
// Without a credentials file the client falls back to application default credentials.
func NewClient(ctx context.Context, cfg config.StorageConfig) (*firestore.Client, error) {
	if cfg.FirestoreProjectID == "" {
		return nil, errors.New("FIRESTORE_PROJECT_ID is required for the firestore backend")
	}

	var opts []option.ClientOption
	if cfg.FirestoreCredFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirestoreCredFile))
	}

	client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isCanceled(err error) bool {
	code := status.Code(err)
	return code == codes.Canceled || code == codes.DeadlineExceeded || errors.Is(err, context.Canceled)
}
