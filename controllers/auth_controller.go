package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"webshop/models"
	"webshop/repositories"
	"webshop/utils"
)

type AuthController struct {
	Users *repositories.UserRepository
}

func NewAuthController() *AuthController {
	return &AuthController{Users: repositories.NewUserRepository()}
}

// @Summary Register new user
// @Description Register a new account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	if _, err := ctrl.Users.FindByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(400, gin.H{"success": false, "message": "Email already exists"})
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		c.JSON(500, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	role := req.Role
	if role == "" {
		role = "customer"
	}

	user := &models.User{Email: req.Email, Password: hash, Role: role}
	if err := ctrl.Users.CreateUser(c.Request.Context(), user); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Registered successfully",
		"data":    models.LoginResponse{Token: token, User: *user},
	})
}

// @Summary Login
// @Description Authenticate and receive a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	user, err := ctrl.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(401, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	ok, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		c.JSON(401, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Logged in successfully",
		"data":    models.LoginResponse{Token: token, User: *user},
	})
}
