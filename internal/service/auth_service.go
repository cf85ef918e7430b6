package service

import (
	"context"
	"errors"
	"quiz_room_hub/internal/config"
	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/repository"
	"quiz_room_hub/internal/util"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgInvalidCredentials = "Invalid credentials."
	msgEmailTaken         = "This field must be unique."
	msgPasswordMismatch   = "password fields didn't match."
	msgTokenInvalid       = "Token is invalid or expired"
	msgTokenRevoked       = "Token is blacklisted"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	ProfileRepo *repository.ProfileRepository
	Tokens      TokenStore
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, tokens TokenStore, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		Tokens:      tokens,
		Cfg:         cfg,
	}
}

type RegisterInput struct {
	Email     *string `json:"email" validate:"required,notblank,email,max=254"`
	Password  *string `json:"password" validate:"required,notblank,max=128"`
	Password2 *string `json:"password2" validate:"required,notblank"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	IsTeacher *bool   `json:"is_teacher"`
}

type LoginInput struct {
	Email    *string `json:"email" validate:"required,notblank"`
	Password *string `json:"password" validate:"required,notblank"`
}

type RefreshInput struct {
	Refresh *string `json:"refresh" validate:"required,notblank"`
}

type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type LoginResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsTeacher bool      `json:"is_teacher"`
	Tokens    TokenPair `json:"tokens"`
}

type AccessResponse struct {
	Access string `json:"access"`
}

type MeResponse struct {
	model.User
	Role      string `json:"role"`
	ProfileID string `json:"profile_id,omitempty"`
}

// NormalizeEmail lower-cases the domain part and leaves the local part as
// typed.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *AuthService) Register(in *RegisterInput) (*model.User, error) {
	email := NormalizeEmail(*in.Email)
	verr := util.NewValidationError()

	exists, err := s.UserRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		verr.Add("email", msgEmailTaken)
	}

	if *in.Password != *in.Password2 {
		verr.Add("password", msgPasswordMismatch)
	} else {
		for _, msg := range ValidatePassword(*in.Password, email) {
			verr.Add("password", msg)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: deref(in.FirstName),
		LastName:  deref(in.LastName),
		IsTeacher: in.IsTeacher != nil && *in.IsTeacher,
		IsActive:  true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.NewFieldError("email", msgEmailTaken)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(in *LoginInput) (*LoginResponse, error) {
	user, err := s.UserRepo.FindByEmail(NormalizeEmail(*in.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNonFieldError(msgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*in.Password)); err != nil {
		return nil, util.NewNonFieldError(msgInvalidCredentials)
	}
	if !user.IsActive {
		return nil, util.NewNonFieldError(msgInvalidCredentials)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.UserRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, err
	}

	return &LoginResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsTeacher: user.IsTeacher,
		Tokens:    *tokens,
	}, nil
}

func (s *AuthService) issueTokens(user *model.User) (*TokenPair, error) {
	access, err := util.GenerateJWT(user, util.AccessToken, s.Cfg.JWT.Secret, s.Cfg.JWT.AccessExpire)
	if err != nil {
		return nil, err
	}
	refresh, err := util.GenerateJWT(user, util.RefreshToken, s.Cfg.JWT.Secret, s.Cfg.JWT.RefreshExpire)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Refresh: refresh, Access: access}, nil
}

// Logout revokes the caller's refresh token.
func (s *AuthService) Logout(ctx context.Context, userID uint, in *RefreshInput) error {
	claims, err := util.ParseTokenOfType(*in.Refresh, s.Cfg.JWT.Secret, util.RefreshToken)
	if err != nil || claims.UserID != userID {
		return util.NewFieldError("refresh", msgTokenInvalid)
	}

	revoked, err := s.Tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return util.NewFieldError("refresh", msgTokenRevoked)
	}

	return s.Tokens.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAt.Time)
}

// Refresh exchanges a live refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, in *RefreshInput) (*AccessResponse, error) {
	claims, err := util.ParseTokenOfType(*in.Refresh, s.Cfg.JWT.Secret, util.RefreshToken)
	if err != nil {
		return nil, util.ErrInvalidToken
	}

	revoked, err := s.Tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, util.ErrInvalidToken
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !user.IsActive) {
		return nil, util.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	access, err := util.GenerateJWT(user, util.AccessToken, s.Cfg.JWT.Secret, s.Cfg.JWT.AccessExpire)
	if err != nil {
		return nil, err
	}
	return &AccessResponse{Access: access}, nil
}

func (s *AuthService) Me(user *model.User) (*MeResponse, error) {
	resp := &MeResponse{User: *user, Role: "staff"}

	if teacher, err := s.ProfileRepo.FindTeacherByUserID(user.ID); err == nil {
		resp.Role, resp.ProfileID = "teacher", teacher.ID
		return resp, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if student, err := s.ProfileRepo.FindStudentByUserID(user.ID); err == nil {
		resp.Role, resp.ProfileID = "student", student.ID
		return resp, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return resp, nil
}

// CreateAdmin creates a staff superuser without a profile.
func (s *AuthService) CreateAdmin(email, password string) (*model.User, error) {
	in := &RegisterInput{Email: &email, Password: &password, Password2: &password}
	if err := util.ValidateStruct(in); err != nil {
		return nil, err
	}

	email = NormalizeEmail(email)
	exists, err := s.UserRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.NewFieldError("email", msgEmailTaken)
	}
	if problems := ValidatePassword(password, email); len(problems) > 0 {
		verr := util.NewValidationError()
		for _, msg := range problems {
			verr.Add("password", msg)
		}
		return nil, verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:       email,
		Password:    string(hashedPassword),
		IsTeacher:   true,
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
