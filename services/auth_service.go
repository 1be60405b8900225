package services

import (
	"context"
	"errors"

	"restaurante360/constants"
	"restaurante360/dto"
	apperrors "restaurante360/errors"
	"restaurante360/models"

	"gorm.io/gorm"
)

type AuthService struct {
	opts     Options
	users    *UserService
	identity IdentityProvider
}

func NewAuthService(opts Options, users *UserService, identity IdentityProvider) *AuthService {
	return &AuthService{opts: opts.withDefaults(), users: users, identity: identity}
}

// SignUp creates a collaborator account.
func (s *AuthService) SignUp(ctx context.Context, req dto.SignUpRequest) (*models.User, error) {
	return s.users.Create(ctx, dto.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     constants.RoleCollaborator,
	})
}

// Login checks a password and issues a token. Only providers that own
// passwords support it; Firebase clients sign in with the Firebase SDK.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	issuer, ok := s.identity.(TokenIssuer)
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCodeProviderMismatch,
			"Login deve ser feito pelo provedor de identidade "+s.identity.Name(), nil)
	}

	var user models.User
	err := s.opts.DB.WithContext(ctx).First(&user, "email = ?", normalizeEmail(req.Email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.DB("Erro ao buscar usuário", err)
	}
	if user.PasswordHash == "" || !issuer.CheckPassword(user.PasswordHash, req.Password) {
		return nil, invalidCredentials()
	}
	if !user.IsActive {
		return nil, userInactive()
	}

	token, err := issuer.IssueToken(&user)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Erro ao gerar token", err)
	}
	s.opts.Logger.Info("user %s logged in", user.ID)
	return &dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// Authenticate turns a bearer token into a session. Inactive users are
// rejected even with a valid token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Não autenticado", nil)
	}
	identity, err := s.identity.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, identity.UID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Usuário não cadastrado", nil)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, userInactive()
	}
	return &Session{UserID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}, nil
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrCodeInvalidCredentials, "Email ou senha inválidos", nil)
}

func userInactive() *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrCodeUserInactive, "Usuário desativado", nil)
}
