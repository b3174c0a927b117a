package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/reco-hub/reco-backend/config"
)

// InitializeFirebase initializes the Firebase Admin SDK and returns an Auth client
func InitializeFirebase(cfg *config.FirebaseConfig) (*fbauth.Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return authClient, nil
}

type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier wraps a Firebase Auth client as a TokenVerifier.
func NewFirebaseVerifier(client *fbauth.Client) TokenVerifier {
	return &firebaseVerifier{client: client}
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	id := &Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		id.Name = name
	}
	if picture, ok := decoded.Claims["picture"].(string); ok {
		id.PhotoURL = picture
	}

	return id, nil
}
