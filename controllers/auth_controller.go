package controllers

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"go-agrilab/logger"
	"go-agrilab/middleware"
	"go-agrilab/models"
	"go-agrilab/store"
	"go-agrilab/utils"
)

// AuthController 处理用户认证相关的请求
type AuthController struct {
	Store     *store.Store
	Passwords PasswordHasher
	// JWTSecret 为空时登录不返回令牌
	JWTSecret string
	JWTTTL    time.Duration
}

// NewAuthController 创建一个新的AuthController实例
func NewAuthController(s *store.Store, passwords PasswordHasher, jwtSecret string, jwtTTL time.Duration) *AuthController {
	if passwords == nil {
		passwords = BcryptHasher{}
	}
	return &AuthController{Store: s, Passwords: passwords, JWTSecret: jwtSecret, JWTTTL: jwtTTL}
}

// Register 用户注册
func (c *AuthController) Register(ctx *gin.Context) {
	log := logger.FromContext(ctx.Request.Context())

	var req models.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, utils.Wrap(utils.KindValidation, "请求体不是有效的JSON", err))
		return
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		utils.Fail(ctx, utils.Validation("请提供完整的注册信息（用户名、密码、邮箱）"))
		return
	}

	// 检查用户名或邮箱是否已存在
	_, existing, err := c.Store.Select(ctx.Request.Context(),
		"SELECT id FROM users WHERE username = ? OR email = ?", req.Username, req.Email)
	if err != nil {
		log.WithError(err).Error("register lookup failed")
		utils.Fail(ctx, utils.Storage("数据库查询失败", err))
		return
	}
	if len(existing) > 0 {
		utils.Fail(ctx, utils.Duplicate("用户名或邮箱已被注册"))
		return
	}

	hashed, err := c.Passwords.Hash(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		utils.Fail(ctx, utils.Wrap(utils.KindValidation, "密码长度不能超过72字节", err))
		return
	}
	if err != nil {
		utils.Fail(ctx, utils.Storage("密码加密失败", err))
		return
	}

	res, err := c.Store.Insert(ctx.Request.Context(),
		"INSERT INTO users (username, password, email, created_at) VALUES (?, ?, ?, ?)", "id",
		req.Username, hashed, req.Email, time.Now().UTC())
	if err != nil {
		// 并发注册时预检查可能同时通过，由唯一约束兜底
		if store.IsUniqueViolation(err) {
			utils.Fail(ctx, utils.Duplicate("用户名或邮箱已被注册"))
			return
		}
		log.WithError(err).Error("register insert failed")
		utils.Fail(ctx, utils.Storage("注册失败", err))
		return
	}

	utils.Created(ctx, gin.H{
		"message": "注册成功",
		"userId":  res.InsertID,
	})
}

// Login 用户登录
func (c *AuthController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, utils.Wrap(utils.KindValidation, "请求体不是有效的JSON", err))
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.Fail(ctx, utils.Validation("请提供用户名和密码"))
		return
	}

	var user models.User
	err := c.Store.QueryRow(ctx.Request.Context(),
		"SELECT id, username, password, email, created_at FROM users WHERE username = ?", req.Username,
	).Scan(&user.ID, &user.Username, &user.Password, &user.Email, &user.CreatedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.FromContext(ctx.Request.Context()).WithError(err).Error("login lookup failed")
		utils.Fail(ctx, utils.Storage("数据库查询失败", err))
		return
	}
	// 用户不存在和密码错误返回相同的信息
	if err != nil || !c.Passwords.Compare(user.Password, req.Password) {
		utils.Fail(ctx, utils.Unauthorized("用户名或密码不正确"))
		return
	}

	resp := gin.H{
		"message": "登录成功",
		"user":    user,
	}
	if c.JWTSecret != "" {
		token, err := middleware.GenerateToken(c.JWTSecret, c.JWTTTL, user.ID, user.Username)
		if err != nil {
			utils.Fail(ctx, utils.Storage("生成令牌失败", err))
			return
		}
		resp["token"] = token
	}
	utils.Success(ctx, resp)
}

// Profile 通过用户名获取用户信息（不含密码）
func (c *AuthController) Profile(ctx *gin.Context) {
	username := ctx.Query("username")
	if username == "" {
		utils.Fail(ctx, utils.Validation("请提供用户名"))
		return
	}

	var user models.User
	err := c.Store.QueryRow(ctx.Request.Context(),
		"SELECT id, username, email, created_at FROM users WHERE username = ?", username,
	).Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		utils.Fail(ctx, utils.NotFound("用户不存在"))
		return
	}
	if err != nil {
		logger.FromContext(ctx.Request.Context()).WithError(err).Error("profile lookup failed")
		utils.Fail(ctx, utils.Storage("数据库查询失败", err))
		return
	}
	utils.Success(ctx, user)
}
