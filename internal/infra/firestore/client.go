package firestore

import (
	"context"
	"fmt"

	gfs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Коллекции документной базы
const (
	collectionBranches     = "branches"
	collectionCalendar     = "calendar"
	collectionSchedules    = "scheduleConfigurations"
	collectionAppointments = "appointments"
)

// NewClient инициализирует Firebase App и возвращает клиент Firestore.
// Пустой credentialsFile - используются application default credentials.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*gfs.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: init firebase app: %w", ErrConnect, err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: init firestore client: %w", ErrConnect, err)
	}

	return client, nil
}
