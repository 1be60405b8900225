package main

import (
	"context"
	"fmt"
	"os"

	"restaurante360/dto"
	apperrors "restaurante360/errors"
	"restaurante360/services"
	"restaurante360/validator"

	"github.com/BurntSushi/toml"
)

// Seed is the content of a seed file. Activities are referenced from
// processes by their key; owners by email.
type Seed struct {
	Users      []SeedUser     `toml:"users"`
	Activities []SeedActivity `toml:"activities"`
	Processes  []SeedProcess  `toml:"processes"`
}

type SeedUser struct {
	Name     string `toml:"name"`
	Email    string `toml:"email"`
	Password string `toml:"password"`
	Role     string `toml:"role"`
}

type SeedActivity struct {
	Key           string `toml:"key"`
	Owner         string `toml:"owner"`
	Title         string `toml:"title"`
	Description   string `toml:"description"`
	Category      string `toml:"category"`
	Frequency     string `toml:"frequency"`
	IsRecurring   bool   `toml:"recurring"`
	RequiresPhoto bool   `toml:"requires_photo"`
}

type SeedProcess struct {
	Owner       string   `toml:"owner"`
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Activities  []string `toml:"activities"`
}

type SeedResult struct {
	UsersCreated  int
	UsersExisting int
	Activities    int
	Processes     int
}

func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

// ApplySeed creates everything through the services, so the same validation
// and ownership rules as the API apply. Users that already exist are reused.
func ApplySeed(ctx context.Context, svc *services.Services, seed *Seed) (*SeedResult, error) {
	v := validator.Default()
	result := &SeedResult{}
	owners := map[string]*services.Session{}

	for _, u := range seed.Users {
		req := dto.CreateUserRequest{Name: u.Name, Email: u.Email, Password: u.Password, Role: u.Role}
		if err := v.Struct(req); err != nil {
			return result, fmt.Errorf("user %s: %w", u.Email, err)
		}
		user, err := svc.Users.Create(ctx, req)
		if apperrors.HasCode(err, apperrors.ErrCodeEmailInUse) {
			user, err = svc.Users.FindByEmail(ctx, u.Email)
			result.UsersExisting++
		} else if err == nil {
			result.UsersCreated++
		}
		if err != nil {
			return result, fmt.Errorf("user %s: %w", u.Email, err)
		}
		owners[user.Email] = &services.Session{UserID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
	}

	owner := func(email string) (*services.Session, error) {
		if s, ok := owners[email]; ok {
			return s, nil
		}
		user, err := svc.Users.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("owner %s: %w", email, err)
		}
		s := &services.Session{UserID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
		owners[user.Email] = s
		return s, nil
	}

	keys := map[string]string{}
	for _, a := range seed.Activities {
		actor, err := owner(a.Owner)
		if err != nil {
			return result, err
		}
		req := dto.CreateActivityRequest{
			Title:         a.Title,
			Description:   a.Description,
			Category:      a.Category,
			Frequency:     a.Frequency,
			IsRecurring:   a.IsRecurring,
			RequiresPhoto: a.RequiresPhoto,
		}
		if err := v.Struct(req); err != nil {
			return result, fmt.Errorf("activity %s: %w", a.Key, err)
		}
		activity, err := svc.Activities.Create(ctx, actor, req)
		if err != nil {
			return result, fmt.Errorf("activity %s: %w", a.Key, err)
		}
		keys[a.Key] = activity.ID
		result.Activities++
	}

	for _, p := range seed.Processes {
		actor, err := owner(p.Owner)
		if err != nil {
			return result, err
		}
		ids := make([]string, 0, len(p.Activities))
		for _, key := range p.Activities {
			id, ok := keys[key]
			if !ok {
				return result, fmt.Errorf("process %s: unknown activity key %q", p.Name, key)
			}
			ids = append(ids, id)
		}
		req := dto.CreateProcessRequest{Name: p.Name, Description: p.Description, ActivityIDs: ids}
		if err := v.Struct(req); err != nil {
			return result, fmt.Errorf("process %s: %w", p.Name, err)
		}
		if _, err := svc.Processes.Create(ctx, actor, req); err != nil {
			return result, fmt.Errorf("process %s: %w", p.Name, err)
		}
		result.Processes++
	}
	return result, nil
}
