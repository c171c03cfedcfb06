package firebase

import (
	"context"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"chronova/pkg/logger"
)

// Credentials locates a service account. JSON wins over Path; with neither
// set the client falls back to Application Default Credentials.
type Credentials struct {
	JSON string
	Path string
}

func (c Credentials) options() ([]option.ClientOption, error) {
	switch {
	case c.JSON != "":
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(c.JSON))}, nil
	case c.Path != "":
		if _, err := os.Stat(c.Path); err != nil {
			return nil, err
		}
		logger.Info("Using Firebase service account from file: %s", c.Path)
		return []option.ClientOption{option.WithCredentialsFile(c.Path)}, nil
	default:
		logger.Info("Using Application Default Credentials")
		return nil, nil
	}
}

// NewFirestoreClient opens the Firestore database of a Firebase project.
func NewFirestoreClient(ctx context.Context, projectID string, creds Credentials) (*firestore.Client, error) {
	opts, err := creds.options()
	if err != nil {
		return nil, err
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, err
	}

	return app.Firestore(ctx)
}
