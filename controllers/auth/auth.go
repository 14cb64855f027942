package authcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velmart/ecommerce-api/auth"
	"github.com/velmart/ecommerce-api/models"
	"github.com/velmart/ecommerce-api/store"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}
		if input.Email == "" || input.Password == "" || input.Name == "" || input.Role == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}

		role := models.Role(input.Role)
		if role != models.RoleAdmin && role != models.RoleUser {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Role must be ADMIN or USER"})
			return
		}

		// Duplicate email is reported as a 400, matching the rest of the
		// validation taxonomy.
		if _, err := s.GetUserByEmail(input.Email); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
			return
		}

		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
			return
		}

		user := models.User{
			Email:    input.Email,
			Password: hash,
			Name:     input.Name,
			Role:     role,
		}
		if err := s.CreateUser(&user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
			return
		}

		token, err := auth.GenerateToken(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered",
			"data": gin.H{
				"token": token,
				"user":  user.Public(),
			},
		})
	}
}

// POST /api/auth/login
func Login(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
			return
		}

		user, err := s.GetUserByEmail(input.Email)
		if err != nil || auth.CheckPassword(user.Password, input.Password) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}

		token, err := auth.GenerateToken(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log in"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User LoggedIn",
			"data": gin.H{
				"token": token,
				"user":  user.Public(),
			},
		})
	}
}
