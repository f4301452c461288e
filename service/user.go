package service

import (
	"Libro/config"
	"Libro/dao"
	"Libro/models"
	"Libro/pkg/jwt"
	"Libro/pkg/response"
	"Libro/pkg/snowflake"
	"Libro/types"
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.LoginResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error)
}

type UserService struct {
	Config   *config.Config
	UsersDAO *dao.Users
}

// Register 注册用户并直接发访问令牌
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.LoginResponse, error) {
	if s.UsersDAO.IsUsernameExist(ctx, req.Username) {
		return nil, response.NewError(http.StatusBadRequest, "账号已存在! ")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.Users{
		ID:        snowflake.GenUserID(),
		Username:  req.Username,
		Password:  string(hash),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.UsersDAO.Create(ctx, user); err != nil {
		// 并发注册撞唯一键
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewError(http.StatusBadRequest, "账号已存在! ")
		}
		return nil, err
	}

	return s.issueToken(user)
}

func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	user, err := s.UsersDAO.FindByUsername(ctx, req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewError(http.StatusUnauthorized, "账号或密码错误")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, response.NewError(http.StatusUnauthorized, "账号或密码错误")
	}

	return s.issueToken(user)
}

func (s *UserService) issueToken(user *models.Users) (*types.LoginResponse, error) {
	expire := time.Duration(s.Config.Jwt.ExpiresTime) * time.Second
	token, err := jwt.GenerateToken([]byte(s.Config.Jwt.Secret), user.ID, "access", expire)
	if err != nil {
		return nil, err
	}
	return &types.LoginResponse{
		UserID:      user.ID,
		Username:    user.Username,
		AccessToken: token,
		ExpiresIn:   s.Config.Jwt.ExpiresTime,
	}, nil
}
