package models

import (
	"time"

	"go-agrilab/store"
)

// User 用户账号
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UsersTable 用户表名
const UsersTable = "users"

// CreateUsersTable 用户表建表语句，username 和 email 均唯一
func CreateUsersTable(d store.Dialect) string {
	return "CREATE TABLE IF NOT EXISTS " + d.Quote(UsersTable) + " (" +
		d.AutoIncrementColumn("id") + ", " +
		"username VARCHAR(255) NOT NULL UNIQUE, " +
		"password VARCHAR(255) NOT NULL, " +
		"email VARCHAR(255) NOT NULL UNIQUE, " +
		"created_at " + d.TimestampType() + " NOT NULL" +
		")"
}
