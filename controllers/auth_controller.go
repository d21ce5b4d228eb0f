package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoinsure/database"
	"github.com/princinho/sahoinsure/dto"
	"github.com/princinho/sahoinsure/utils"
)

func Login(users database.UserStore, secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), body.Email)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		if !user.IsActive || utils.CheckPassword(user.PasswordHash, body.Password) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := utils.GenerateAccessToken(user.ID.Hex(), user.Email, string(user.Role), secret, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"accessToken": token,
			"expiresIn":   int(ttl.Seconds()),
			"user":        user,
		})
	}
}
