package controllers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-agrilab/controllers"
	"go-agrilab/middleware"
	"go-agrilab/store"
)

func newAuthRouter(s *store.Store, passwords controllers.PasswordHasher, secret string) *gin.Engine {
	ac := controllers.NewAuthController(s, passwords, secret, time.Hour)
	r := gin.New()
	r.POST("/api/auth/register", ac.Register)
	r.POST("/api/auth/login", ac.Login)
	r.GET("/api/auth/profile", ac.Profile)
	return r
}

func countUsers(t *testing.T, s *store.Store) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM users").Scan(&n))
	return n
}

func TestRegister(t *testing.T) {
	s := newTestStore(t)
	r := newAuthRouter(s, controllers.BcryptHasher{Cost: 4}, "")

	w := do(t, r, http.MethodPost, "/api/auth/register", `{"username":"farmer","password":"pw","email":"farmer@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"注册成功","userId":1}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/auth/register", `{"username":"farmer","password":"pw2","email":"other@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"用户名或邮箱已被注册"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/auth/register", `{"username":"other","password":"pw2","email":"farmer@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 1, countUsers(t, s))

	w = do(t, r, http.MethodPost, "/api/auth/register", `{"username":"nomail","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"请提供完整的注册信息（用户名、密码、邮箱）"}`, w.Body.String())
}

func TestLogin(t *testing.T) {
	r := newAuthRouter(newTestStore(t), controllers.BcryptHasher{Cost: 4}, "jwt-secret")

	w := do(t, r, http.MethodPost, "/api/auth/register", `{"username":"farmer","password":"pw","email":"farmer@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/auth/login", `{"username":"farmer","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"用户名或密码不正确"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/auth/login", `{"username":"nobody","password":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"用户名或密码不正确"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/auth/login", `{"username":"farmer"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/auth/login", `{"username":"farmer","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Message string                 `json:"message"`
		User    map[string]interface{} `json:"user"`
		Token   string                 `json:"token"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "登录成功", resp.Message)
	assert.Equal(t, "farmer", resp.User["username"])
	assert.Equal(t, "farmer@example.com", resp.User["email"])
	assert.NotContains(t, resp.User, "password")
	assert.NotEmpty(t, resp.User["created_at"])

	claims, err := middleware.ParseToken("jwt-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "farmer", claims.Username)
}

func TestLoginPlainPasswords(t *testing.T) {
	s := newTestStore(t)
	r := newAuthRouter(s, controllers.PlainHasher{}, "")

	w := do(t, r, http.MethodPost, "/api/auth/register", `{"username":"farmer","password":"pw","email":"farmer@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var stored string
	require.NoError(t, s.DB().QueryRow("SELECT password FROM users WHERE username = ?", "farmer").Scan(&stored))
	assert.Equal(t, "pw", stored)

	w = do(t, r, http.MethodPost, "/api/auth/login", `{"username":"farmer","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "token")
}

func TestProfile(t *testing.T) {
	r := newAuthRouter(newTestStore(t), controllers.BcryptHasher{Cost: 4}, "")

	w := do(t, r, http.MethodPost, "/api/auth/register", `{"username":"farmer","password":"pw","email":"farmer@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/auth/profile?username=farmer", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user map[string]interface{}
	decode(t, w, &user)
	assert.EqualValues(t, 1, user["id"])
	assert.Equal(t, "farmer", user["username"])
	assert.NotContains(t, user, "password")

	w = do(t, r, http.MethodGet, "/api/auth/profile?username=nobody", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"用户不存在"}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/auth/profile", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasswordHashers(t *testing.T) {
	bcryptHasher := controllers.NewPasswordHasher("bcrypt")
	hashed, err := bcryptHasher.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hashed)
	assert.True(t, bcryptHasher.Compare(hashed, "secret"))
	assert.False(t, bcryptHasher.Compare(hashed, "Secret"))
	assert.False(t, bcryptHasher.Compare("secret", "secret"))

	plain := controllers.NewPasswordHasher("plain")
	hashed, err = plain.Hash("secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", hashed)
	assert.True(t, plain.Compare(hashed, "secret"))
	assert.False(t, plain.Compare(hashed, "secret2"))
}

func TestRegisterPasswordTooLong(t *testing.T) {
	s := newTestStore(t)
	r := newAuthRouter(s, controllers.BcryptHasher{Cost: 4}, "")

	password := strings.Repeat("p", 73)
	w := do(t, r, http.MethodPost, "/api/auth/register",
		`{"username":"farmer","password":"`+password+`","email":"farmer@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "密码长度不能超过72字节", resp.Error)
	assert.Equal(t, 0, countUsers(t, s))

	// 72字节仍然可以注册
	password = strings.Repeat("p", 72)
	w = do(t, r, http.MethodPost, "/api/auth/register",
		`{"username":"farmer","password":"`+password+`","email":"farmer@example.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

// concurrentHasher 在哈希密码时执行 before，模拟另一个请求在预检查之后抢先注册
type concurrentHasher struct {
	controllers.PasswordHasher
	before func()
}

func (h concurrentHasher) Hash(password string) (string, error) {
	h.before()
	return h.PasswordHasher.Hash(password)
}

func TestRegisterConcurrentDuplicate(t *testing.T) {
	s := newTestStore(t)
	hasher := concurrentHasher{
		PasswordHasher: controllers.BcryptHasher{Cost: 4},
		before: func() {
			_, err := s.DB().Exec("INSERT INTO users (username, password, email, created_at) VALUES (?, ?, ?, ?)",
				"farmer", "x", "first@example.com", time.Now().UTC())
			require.NoError(t, err)
		},
	}
	r := newAuthRouter(s, hasher, "")

	w := do(t, r, http.MethodPost, "/api/auth/register", `{"username":"farmer","password":"pw","email":"farmer@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.JSONEq(t, `{"error":"用户名或邮箱已被注册"}`, w.Body.String())
	assert.Equal(t, 1, countUsers(t, s))
}
