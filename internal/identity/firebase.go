// File: internal/identity/firebase.go
package identity

import (
	"context"
	"path/filepath"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"homequest_backend/internal/common"
	"homequest_backend/internal/config"
)

// userTypeClaim is the custom claim carrying the profile role chosen at signup.
const userTypeClaim = "user_type"

// FirebaseService resolves bearer tokens through the Firebase Admin SDK and
// creates accounts for signup. It implements both Verifier and Provider.
type FirebaseService struct {
	authClient *auth.Client
	timeout    time.Duration
	logger     *zap.Logger
}

var _ Verifier = (*FirebaseService)(nil)
var _ Provider = (*FirebaseService)(nil)

// NewFirebaseService initializes the Firebase Admin SDK from the configured
// service account key and returns a ready service.
func NewFirebaseService(cfg *config.Config, logger *zap.Logger) (*FirebaseService, error) {
	cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)
	opt := option.WithCredentialsFile(cleanPath)

	var app *firebase.App
	var err error
	if cfg.FirebaseProjectID != "" {
		app, err = firebase.NewApp(context.Background(), &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opt)
	} else {
		app, err = firebase.NewApp(context.Background(), nil, opt)
	}
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err), zap.String("keyPath", cleanPath))
		return nil, err
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, err
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return &FirebaseService{
		authClient: authClient,
		timeout:    cfg.ProviderTimeout,
		logger:     logger,
	}, nil
}

// Verify parses the Authorization header and resolves the token against
// Firebase. Header parsing failures never reach the provider.
func (s *FirebaseService) Verify(ctx context.Context, authorizationHeader string) (*Identity, error) {
	idToken, err := ParseBearerToken(authorizationHeader)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, common.ErrUnauthorized.WithDetails("Invalid or expired credential.")
	}

	ident := &Identity{ID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		ident.Name = name
	}
	if userType, ok := token.Claims[userTypeClaim].(string); ok {
		ident.UserType = userType
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		ident.EmailVerified = verified
	}

	s.logger.Debug("Bearer credential verified", zap.String("uid", ident.ID))
	return ident, nil
}

// SignUp creates a new Firebase account and records the chosen user type as
// a custom claim so later token verifications can recover it.
func (s *FirebaseService) SignUp(ctx context.Context, email, password, name, userType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(name)

	record, err := s.authClient.CreateUser(ctx, params)
	if err != nil {
		s.logger.Error("Firebase user creation failed", zap.Error(err), zap.String("email", email))
		return "", common.ErrStore.WithDetails("Identity provider rejected the signup request.")
	}

	if err := s.authClient.SetCustomUserClaims(ctx, record.UID, map[string]interface{}{userTypeClaim: userType}); err != nil {
		s.logger.Error("Failed to set user type claim", zap.Error(err), zap.String("uid", record.UID))
		return "", common.ErrStore.WithDetails("Identity provider could not store the account role.")
	}

	s.logger.Info("Identity created", zap.String("uid", record.UID))
	return record.UID, nil
}
