package handlers

import (
	"net/http"
	"strings"

	"edusphere/internal/db"
	"edusphere/internal/models"
	"edusphere/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type registerRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required"`
	Username   string `json:"username" binding:"required"`
	RollNumber string `json:"roll_number" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "All fields are required.")
		return
	}

	var count int64
	db.DB.Model(&models.User{}).
		Where("email = ? OR username = ? OR roll_number = ?", req.Email, req.Username, req.RollNumber).
		Count(&count)
	if count > 0 {
		Error(c, http.StatusBadRequest, "User with this email, username, or roll number already exists.")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error. Please try again.")
		return
	}

	user := models.User{
		Email:      req.Email,
		Name:       req.Name,
		Username:   req.Username,
		RollNumber: req.RollNumber,
		Password:   hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		Error(c, http.StatusInternalServerError, "Server error. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    gin.H{"id": user.ID, "username": user.Username, "email": user.Email},
	})
}

type loginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Email/Username and password are required.")
		return
	}

	// The identifier doubles as email or username
	query := db.DB.Where("username = ?", req.EmailOrUsername)
	if strings.Contains(req.EmailOrUsername, "@") {
		query = db.DB.Where("email = ?", req.EmailOrUsername)
	}

	var user models.User
	if err := query.First(&user).Error; err != nil {
		Error(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		Error(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if user.Banned {
		Error(c, http.StatusForbidden, "This account is banned.")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		Error(c, http.StatusInternalServerError, "Server error. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
