// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	fsadapter "homeplate/internal/adapters/out/firestore"
	"homeplate/internal/adapters/out/localstore"
	"homeplate/internal/adapters/out/mail"
	"homeplate/internal/application/usecase"
	"homeplate/internal/domain/store"
	"homeplate/internal/infra/auth"
	appcfg "homeplate/internal/infra/config"
	firestoreinfra "homeplate/internal/infra/firestore"
)

// Secret Manager secret ids used when the corresponding env vars are unset.
const (
	secretSendGridKey = "sendgrid-api-key"
	secretWebAPIKey   = "firebase-web-api-key"
)

// Container is shared runtime infrastructure.
// - owns external clients (Firestore/Firebase/SecretManager)
// - Firestore is strict (init error is fatal); the rest is best-effort
//   (warn + continue), matching what each collaborator tolerates.
type Container struct {
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestoreinfra.ClientWrapper
	FirebaseApp   *firebase.App
	Messaging     *messaging.Client
	SecretManager *secretmanager.Client

	// Ports wired for the application layer
	Store     store.Client
	Tokens    *auth.SessionProvider
	Mailer    usecase.Mailer
	CartStore usecase.CartStore

	Orders      *fsadapter.OrderRepositoryFS
	Chats       *fsadapter.ChatRepositoryFS
	Couriers    *fsadapter.CourierRepositoryFS
	Restaurants *fsadapter.RestaurantRepositoryFS
	Users       *fsadapter.UserRepositoryFS
}

func NewContainer(ctx context.Context) (*Container, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}

	projectID := strings.TrimSpace(cfg.FirestoreProjectID)
	if projectID == "" {
		return nil, errors.New("di: projectID is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}

	c := &Container{Config: cfg, ProjectID: projectID}

	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}

	// 1) Firestore (strict)
	fw, err := firestoreinfra.NewClient(ctx, projectID, credFile)
	if err != nil {
		return nil, fmt.Errorf("di: firestore init failed: %w", err)
	}
	c.Firestore = fw
	c.Store = fsadapter.NewStoreClient(fw.Client)

	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
	}

	// 2) Optional: Firebase App + Messaging (push fan-out)
	if app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, clientOpts...); err != nil {
		log.Printf("[di] WARN: firebase app init failed: %v (push disabled)", err)
	} else {
		c.FirebaseApp = app
		if msg, err := app.Messaging(ctx); err != nil {
			log.Printf("[di] WARN: messaging init failed: %v (push disabled)", err)
		} else {
			c.Messaging = msg
		}
	}

	// 3) Optional: Secret Manager (fills keys the env left empty)
	if sm, err := secretmanager.NewClient(ctx, clientOpts...); err != nil {
		log.Printf("[di] WARN: secretmanager init failed: %v", err)
	} else {
		c.SecretManager = sm
	}

	sendgridKey := strings.TrimSpace(cfg.SendGridAPIKey)
	if sendgridKey == "" {
		sendgridKey = c.accessSecret(ctx, secretSendGridKey)
	}
	apiKey := strings.TrimSpace(cfg.FirebaseAPIKey)
	if apiKey == "" {
		apiKey = c.accessSecret(ctx, secretWebAPIKey)
	}

	// 4) Ports
	c.Tokens = auth.NewSessionProvider(apiKey, cfg.FirebaseRefreshToken)
	c.Mailer = mail.NewSendGridClient(sendgridKey)
	c.CartStore = localstore.NewCartStoreFile(cfg.LocalDataDir)

	c.Orders = fsadapter.NewOrderRepositoryFS(c.Store)
	c.Chats = fsadapter.NewChatRepositoryFS(c.Store)
	c.Couriers = fsadapter.NewCourierRepositoryFS(c.Store)
	c.Restaurants = fsadapter.NewRestaurantRepositoryFS(c.Store)
	c.Users = fsadapter.NewUserRepositoryFS(c.Store)

	return c, nil
}

// accessSecret resolves projects/<id>/secrets/<name>/versions/latest,
// returning "" on any failure (the caller decides whether that matters).
func (c *Container) accessSecret(ctx context.Context, name string) string {
	if c.SecretManager == nil {
		return ""
	}
	resourceName := "projects/" + c.ProjectID + "/secrets/" + name + "/versions/latest"
	resp, err := c.SecretManager.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: resourceName})
	if err != nil {
		log.Printf("[di] WARN: AccessSecretVersion failed (%s): %v", resourceName, err)
		return ""
	}
	if resp == nil || resp.Payload == nil {
		return ""
	}
	return strings.TrimSpace(string(resp.Payload.Data))
}

func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.SecretManager != nil {
		_ = c.SecretManager.Close()
	}
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
}
