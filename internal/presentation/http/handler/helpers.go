package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// GetUserBranch extracts the user's home branch from the Gin context
func GetUserBranch(c *gin.Context) string {
	branch, exists := c.Get("user_branch")
	if !exists {
		return ""
	}
	return branch.(string)
}

// IsManager checks if the authenticated user holds the manager role
func IsManager(c *gin.Context) bool {
	return GetUserRole(c) == entity.RoleManager
}
