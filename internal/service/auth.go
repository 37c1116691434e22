package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pedidos/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{11}$`)
)

const bcryptCost = 12

type AuthService struct {
	db *sql.DB
}

func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{db: db}
}

type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

func (r Registration) valid() bool {
	return len([]rune(strings.TrimSpace(r.Name))) >= 3 &&
		emailPattern.MatchString(r.Email) &&
		phonePattern.MatchString(r.Phone) &&
		len(r.Password) >= 6
}

func (s *AuthService) Register(ctx context.Context, reg Registration) (*model.User, error) {
	if !reg.valid() {
		return nil, ErrInvalidUserData
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(reg.Name),
		Email:        reg.Email,
		Phone:        reg.Phone,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO usuarios (id, nome, email, telefone, senha, tipo_usuario)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING criado_em`,
		user.ID, user.Name, user.Email, user.Phone, user.PasswordHash, string(user.Role),
	).Scan(&user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, nome, email, telefone, senha, tipo_usuario, criado_em FROM usuarios WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, nome, email, telefone, senha, tipo_usuario, criado_em FROM usuarios WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *AuthService) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}
