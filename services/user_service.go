package services

import (
	"context"
	"errors"
	"strings"

	"restaurante360/commands"
	"restaurante360/constants"
	"restaurante360/dto"
	apperrors "restaurante360/errors"
	"restaurante360/models"
	"restaurante360/services/notification"

	"gorm.io/gorm"
)

type UserService struct {
	opts     Options
	identity IdentityProvider
}

func NewUserService(opts Options, identity IdentityProvider) *UserService {
	return &UserService{opts: opts.withDefaults(), identity: identity}
}

// Create provisions credentials with the identity provider and stores the
// user. Users are never deleted, only deactivated.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	var count int64
	if err := s.opts.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.DB("Erro ao verificar email", err)
	}
	if count > 0 {
		return nil, emailInUse()
	}

	account, err := s.identity.Provision(ctx, email, req.Password, req.Name)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Erro ao criar credenciais", err)
	}

	user := &models.User{
		ID:           account.UID,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: account.PasswordHash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.opts.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, apperrors.DB("Erro ao criar usuário", err)
	}

	s.opts.Cache.Delete(ctx, UsersCacheKey)
	s.opts.publish(notification.Event{
		Collection: "users",
		Action:     notification.ActionCreated,
		ID:         user.ID,
		Data:       dto.NewUserResponse(*user),
		Audience:   []string{user.ID},
		Managers:   true,
	})
	s.opts.Logger.Info("user %s created with role %s", user.ID, user.Role)
	return user, nil
}

// All returns every user, served from cache when possible.
func (s *UserService) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.opts.Cache.remember(ctx, UsersCacheKey, &users, func() error {
		return s.opts.DB.WithContext(ctx).Order("name ASC").Find(&users).Error
	})
	if err != nil {
		return nil, apperrors.DB("Erro ao listar usuários", err)
	}
	return users, nil
}

// Directory indexes all users by id.
func (s *UserService) Directory(ctx context.Context) (map[string]models.User, error) {
	users, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	dir := make(map[string]models.User, len(users))
	for _, u := range users {
		dir[u.ID] = u
	}
	return dir, nil
}

func (s *UserService) List(ctx context.Context, filter dto.UserFilter) ([]models.User, error) {
	users, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	query := normalizeInput(filter.Query)
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Active != nil && u.IsActive != *filter.Active {
			continue
		}
		if query != "" && !strings.Contains(normalizeInput(u.Name), query) && !strings.Contains(normalizeInput(u.Email), query) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.opts.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Usuário não encontrado")
		}
		return nil, apperrors.DB("Erro ao buscar usuário", err)
	}
	return &user, nil
}

// FindByEmail looks a user up by normalized email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.opts.DB.WithContext(ctx).First(&user, "email = ?", normalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Usuário não encontrado")
		}
		return nil, apperrors.DB("Erro ao buscar usuário", err)
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.AvatarURL != "" {
		updates["avatar_url"] = req.AvatarURL
	}
	if len(updates) == 0 {
		return user, nil
	}
	if err := commands.RunBatch(s.opts.DB.WithContext(ctx), commands.NewUpdateColumnsCommand(user, updates)); err != nil {
		return nil, apperrors.DB("Erro ao atualizar usuário", err)
	}
	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	s.afterChange(ctx, user)
	return user, nil
}

// SetActive activates or deactivates a user. Managers cannot deactivate
// themselves.
func (s *UserService) SetActive(ctx context.Context, actor *Session, id string, active bool) (*models.User, error) {
	if actor != nil && actor.UserID == id && !active {
		return nil, apperrors.Validation("Você não pode desativar a própria conta")
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.opts.DB.WithContext(ctx).Model(user).Update("is_active", active).Error; err != nil {
		return nil, apperrors.DB("Erro ao atualizar status do usuário", err)
	}
	user.IsActive = active
	s.afterChange(ctx, user)
	return user, nil
}

// ManagerIDs returns the ids of active manager-level users.
func (s *UserService) ManagerIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.opts.DB.WithContext(ctx).Model(&models.User{}).
		Where("role IN ? AND is_active = ?", []string{constants.RoleManager, constants.RoleGestor}, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperrors.DB("Erro ao listar gestores", err)
	}
	return ids, nil
}

func (s *UserService) afterChange(ctx context.Context, user *models.User) {
	s.opts.Cache.Delete(ctx, UsersCacheKey)
	s.opts.publish(notification.Event{
		Collection: "users",
		Action:     notification.ActionUpdated,
		ID:         user.ID,
		Data:       dto.NewUserResponse(*user),
		Audience:   []string{user.ID},
		Managers:   true,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
