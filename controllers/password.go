package controllers

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher 密码存储策略
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

// BcryptHasher 使用 bcrypt 存储密码
type BcryptHasher struct {
	Cost int
}

// maxBcryptPasswordBytes bcrypt 只接受72字节以内的密码
const maxBcryptPasswordBytes = 72

func (h BcryptHasher) Hash(password string) (string, error) {
	if len(password) > maxBcryptPasswordBytes {
		return "", bcrypt.ErrPasswordTooLong
	}
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptHasher) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// PlainHasher 明文存储，仅用于兼容已有的明文密码数据，存在安全隐患
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Compare(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// NewPasswordHasher 根据配置选择密码存储策略
func NewPasswordHasher(mode string) PasswordHasher {
	if mode == "plain" {
		return PlainHasher{}
	}
	return BcryptHasher{}
}
