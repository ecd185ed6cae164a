package api

import (
	"net/http" // HTTP status codes

	"tetconnect/internal/service" // Family service

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for creating a family
type CreateFamilyRequest struct {
	Name string `json:"name"` // Display name
}

// Request struct for adding a member
type AddMemberRequest struct {
	Username string `json:"username"` // Account to enroll
}

// CreateFamilyHandler creates a family owned by the caller
func CreateFamilyHandler(families *service.FamilyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req CreateFamilyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		family, err := families.Create(c.Request.Context(), userID, req.Name)
		if err != nil {
			respondError(c, "create family", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "family": family})
	}
}

// AddMemberHandler lets the family owner enroll another account
func AddMemberHandler(families *service.FamilyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req AddMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		member, err := families.AddMember(c.Request.Context(), parseID(c.Param("familyId")), userID, req.Username)
		if err != nil {
			respondError(c, "add member", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "member": member})
	}
}

// ListMembersHandler lists the family's members
func ListMembersHandler(families *service.FamilyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		members, err := families.Members(c.Request.Context(), parseID(c.Param("familyId")), userID)
		if err != nil {
			respondError(c, "list members", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "members": members})
	}
}
