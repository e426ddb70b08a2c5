package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents an account. Accounts are created either through local
// signup (username/password) or through WeChat mini-program login, in which
// case OpenID is set and Password stays empty.
type User struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	Username   string  `json:"username" gorm:"size:150;uniqueIndex"`
	Password   string  `json:"-"` // bcrypt hash; empty for WeChat-only accounts
	Nickname   string  `json:"nickname" gorm:"size:30"`
	Avatar     string  `json:"avatar" gorm:"size:200"`
	Gender     string  `json:"gender" gorm:"size:10"`
	Phone      string  `json:"phone" gorm:"size:15;index"`
	OpenID     *string `json:"openid,omitempty" gorm:"size:128;uniqueIndex"`
	StudentID  string  `json:"student_id" gorm:"size:20"`
	Department string  `json:"department" gorm:"size:50"`

	IsPhoneVerified bool `json:"is_phone_verified" gorm:"default:false"`
	IsVerifiedUser  bool `json:"is_verified_user" gorm:"default:false"`

	VerificationSubmittedAt *time.Time `json:"verification_submitted_at,omitempty"`
	VerificationApprovedAt  *time.Time `json:"verification_approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserCompact is the embedded author/actor shape used inside posts, comments
// and notifications.
type UserCompact struct {
	ID       *uint  `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// AnonymousAuthor is what anonymous posts and comments serialize instead of
// the real author.
func AnonymousAuthor() UserCompact {
	return UserCompact{ID: nil, Nickname: "匿名用户", Avatar: "/static/images/anonymous.png"}
}

// ToCompact converts a full user into its embeddable form.
func (u *User) ToCompact() UserCompact {
	id := u.ID
	return UserCompact{ID: &id, Nickname: u.Nickname, Avatar: u.Avatar}
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"omitempty,max=30"`
}

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type WXLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

type UpdateProfileRequest struct {
	Nickname   string `json:"nickname,omitempty" validate:"omitempty,max=30"`
	Avatar     string `json:"avatar,omitempty" validate:"omitempty,url"`
	Gender     string `json:"gender,omitempty" validate:"omitempty,oneof=男 女 其他 保密"`
	Phone      string `json:"phone,omitempty" validate:"omitempty,max=15"`
	Department string `json:"department,omitempty" validate:"omitempty,max=50"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}
