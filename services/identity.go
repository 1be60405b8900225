package services

import (
	"context"
	"fmt"
	"time"

	apperrors "restaurante360/errors"
	"restaurante360/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Account is what a provider returns after provisioning credentials.
type Account struct {
	// UID is the provider's id for the user; empty when the user table
	// owns the id.
	UID          string
	PasswordHash string
}

// Identity is a verified token subject.
type Identity struct {
	UID   string
	Email string
}

// IdentityProvider provisions credentials and verifies session tokens.
type IdentityProvider interface {
	Name() string
	Provision(ctx context.Context, email, password, displayName string) (*Account, error)
	Verify(ctx context.Context, token string) (*Identity, error)
}

// TokenIssuer is implemented by providers that log users in server-side.
type TokenIssuer interface {
	IssueToken(user *models.User) (string, error)
	CheckPassword(hash, password string) bool
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// LocalProvider stores bcrypt hashes and signs HS256 tokens.
type LocalProvider struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

func NewLocalProvider(secret string, ttl time.Duration, clock func() time.Time) *LocalProvider {
	if clock == nil {
		clock = time.Now
	}
	return &LocalProvider{secret: []byte(secret), ttl: ttl, clock: clock}
}

func (p *LocalProvider) Name() string { return "local" }

func (p *LocalProvider) Provision(ctx context.Context, email, password, displayName string) (*Account, error) {
	if len(password) < 6 {
		return nil, weakPassword()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &Account{PasswordHash: string(hash)}, nil
}

func (p *LocalProvider) IssueToken(user *models.User) (string, error) {
	now := p.clock()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(p.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *LocalProvider) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Verify checks the signature, then iat/exp against the provider clock, the
// same clock IssueToken stamps them with.
func (p *LocalProvider) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	claims := &Claims{}
	parser := &jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, invalidToken(err)
	}
	now := p.clock().Unix()
	if !claims.VerifyExpiresAt(now, true) || !claims.VerifyIssuedAt(now, true) {
		return nil, invalidToken(fmt.Errorf("token outside validity window at %d", now))
	}
	return &Identity{UID: claims.Subject, Email: claims.Email}, nil
}

func invalidToken(err error) *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token inválido ou expirado", err)
}

// FirebaseProvider delegates credentials to Firebase Authentication. Clients
// sign in with the Firebase SDK and send the ID token.
type FirebaseProvider struct {
	client *auth.Client
}

func NewFirebaseProvider(ctx context.Context, app *firebase.App) (*FirebaseProvider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Auth client: %w", err)
	}
	return &FirebaseProvider{client: client}, nil
}

func (p *FirebaseProvider) Name() string { return "firebase" }

func (p *FirebaseProvider) Provision(ctx context.Context, email, password, displayName string) (*Account, error) {
	if len(password) < 6 {
		return nil, weakPassword()
	}
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, emailInUse()
		}
		return nil, fmt.Errorf("create firebase user: %w", err)
	}
	return &Account{UID: record.UID}, nil
}

func (p *FirebaseProvider) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	token, err := p.client.VerifyIDToken(ctx, tokenString)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token inválido ou expirado", err)
	}
	email, _ := token.Claims["email"].(string)
	return &Identity{UID: token.UID, Email: email}, nil
}

func weakPassword() *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrCodeWeakPassword, "A senha é muito fraca. Use pelo menos 6 caracteres.", nil)
}

func emailInUse() *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrCodeEmailInUse, "Este email já está em uso por outra conta.", nil)
}
