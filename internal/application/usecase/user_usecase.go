package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo admin).
type UserUseCase struct {
	repo     repository.UserRepository
	activity ActivityLogger
	logger   zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, activity ActivityLogger, logger zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, activity: activity, logger: logger}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// UpdateRole cambia el rol de un usuario. Un admin no puede quitarse el rol a sí mismo.
func (uc *UserUseCase) UpdateRole(ctx context.Context, actor entity.Actor, id, role string) (*dto.UserResponse, error) {
	if !entity.IsValidRole(role) {
		return nil, domain.InvalidInput("rol inválido")
	}
	if id == actor.ID && role != entity.RoleAdmin {
		return nil, domain.InvalidInput("no puedes quitarte el rol de administrador")
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log(ctx, actor, entity.ActionCambiarRol, fmt.Sprintf("Usuario: %s, Nuevo rol: %s", user.Email, role))
	return ToUserResponse(user), nil
}

// UpdateStatus activa o desactiva un usuario. Un admin no puede desactivarse a sí mismo.
func (uc *UserUseCase) UpdateStatus(ctx context.Context, actor entity.Actor, id, status string) (*dto.UserResponse, error) {
	if status != entity.UserStatusActive && status != entity.UserStatusInactive {
		return nil, domain.InvalidInput("estado de usuario inválido")
	}
	if id == actor.ID && status != entity.UserStatusActive {
		return nil, domain.InvalidInput("no puedes desactivar tu propia cuenta")
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log(ctx, actor, entity.ActionCambiarEstado, fmt.Sprintf("Usuario: %s, Nuevo estado: %s", user.Email, status))
	return ToUserResponse(user), nil
}

func (uc *UserUseCase) log(ctx context.Context, actor entity.Actor, action, details string) {
	if uc.activity == nil {
		return
	}
	if err := uc.activity.Log(ctx, actor.LogName(), action, details); err != nil {
		uc.logger.Warn().Err(err).Str("action", action).Msg("no se pudo registrar la actividad")
	}
}

// ToUserResponse convierte la entidad al DTO de salida (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
