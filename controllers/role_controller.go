package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"hotel-frontdesk/config"
	"hotel-frontdesk/models"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"
)

type roleCapabilitiesPayload struct {
	Capabilities []string `json:"capabilities"`
}

type roleMemberResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type roleResponse struct {
	ID           uint                 `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Capabilities []string             `json:"capabilities"`
	Members      []roleMemberResponse `json:"members"`
}

func GetRoles(c *gin.Context) {
	var roles []models.Role
	if err := config.DB.Preload("Capabilities").Preload("Members").Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to list roles."})
		return
	}

	responses := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		caps := make([]string, 0, len(role.Capabilities))
		for _, rc := range role.Capabilities {
			caps = append(caps, rc.Capability)
		}

		members := make([]roleMemberResponse, 0, len(role.Members))
		for _, staff := range role.Members {
			members = append(members, roleMemberResponse{
				ID:       staff.ID,
				Name:     staff.FullName,
				Username: staff.Username,
			})
		}

		responses = append(responses, roleResponse{
			ID:           role.ID,
			Name:         role.Name,
			Description:  role.Description,
			Capabilities: caps,
			Members:      members,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// UpdateRoleCapabilities replaces a role's capability set wholesale.
func UpdateRoleCapabilities(c *gin.Context) {
	roleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid role id."})
		return
	}

	var payload roleCapabilitiesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
		return
	}

	seen := map[string]bool{}
	caps := make([]string, 0, len(payload.Capabilities))
	for _, capability := range payload.Capabilities {
		capability = strings.TrimSpace(capability)
		if capability == "" || seen[capability] {
			continue
		}
		seen[capability] = true
		caps = append(caps, capability)
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			return err
		}

		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RoleCapability{}).Error; err != nil {
			return err
		}

		for _, capability := range caps {
			if err := tx.Create(&models.RoleCapability{RoleID: role.ID, Capability: capability}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if txErr == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Role not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update role capabilities."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "capabilities": caps})
}
