package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"hotel-frontdesk/config"
	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/gin-gonic/gin"
)

func validateRoomType(rt *models.RoomType) map[string]string {
	errs := map[string]string{}

	rt.Code = strings.TrimSpace(rt.Code)
	rt.Name = strings.TrimSpace(rt.Name)

	if !models.ValidRoomTypeCode(rt.Code) {
		errs["code"] = "The room type code must be between 1 and 3 uppercase letters."
	}
	if rt.Name == "" {
		errs["name"] = "This field is required."
	}
	if len(rt.Name) > 25 {
		errs["name"] = "Ensure this value has at most 25 characters."
	}
	if rt.Price < 0 {
		errs["price"] = "Price cannot be negative."
	}
	if rt.MaxGuests < 1 {
		errs["maxGuests"] = "Must allow at least 1 guest."
	}

	return errs
}

func GetRoomTypes(c *gin.Context) {
	types, err := services.NewRoomTypeService(config.DB).List()
	if err != nil {
		log.Printf("❌ Failed to list room types: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to list room types."})
		return
	}

	c.JSON(http.StatusOK, types)
}

func GetRoomType(c *gin.Context) {
	code := c.Param("code")

	rt, err := services.NewRoomTypeService(config.DB).Get(code)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room type %s not found.", code)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load room type."})
		return
	}

	c.JSON(http.StatusOK, rt)
}

func CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	if fieldErrs := validateRoomType(&rt); len(fieldErrs) > 0 {
		log.Printf("❌ Room type validation failed: %v", fieldErrs)
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation failed", "errors": fieldErrs})
		return
	}

	if err := services.NewRoomTypeService(config.DB).Create(&rt); err != nil {
		if errors.Is(err, services.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Room type %s already exists.", rt.Code),
			})
			return
		}
		log.Printf("❌ DB ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, rt)
}

func UpdateRoomType(c *gin.Context) {
	code := c.Param("code")

	svc := services.NewRoomTypeService(config.DB)
	existing, err := svc.Get(code)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room type %s not found.", code)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load room type."})
		return
	}

	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	// The code is the primary key and cannot be changed in place.
	rt.Code = existing.Code
	rt.CreatedAt = existing.CreatedAt

	if fieldErrs := validateRoomType(&rt); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation failed", "errors": fieldErrs})
		return
	}

	if err := svc.Update(&rt); err != nil {
		log.Printf("❌ Update Error for room type %s: %v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Update failed"})
		return
	}

	c.JSON(http.StatusOK, rt)
}

func ConfirmDeleteRoomType(c *gin.Context) {
	code := c.Param("code")

	rt, err := services.NewRoomTypeService(config.DB).Get(code)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room type %s not found.", code)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load room type."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roomType": rt,
		"message":  fmt.Sprintf("Send DELETE /api/room-types/%s to confirm deletion.", code),
	})
}

func DeleteRoomType(c *gin.Context) {
	code := c.Param("code")

	if err := services.NewRoomTypeService(config.DB).Delete(code); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room type %s not found.", code)})
			return
		}
		log.Printf("❌ DB Error during deletion (room type %s): %v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete room type."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room type deleted successfully"})
}
