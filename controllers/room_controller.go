package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"hotel-frontdesk/config"
	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/gin-gonic/gin"
)

type roomPayload struct {
	RoomNumber   *int    `json:"roomNumber"`
	RoomTypeCode *string `json:"roomTypeCode"`
}

func parseRoomNumber(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(c.Param("room_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid room number."})
		return 0, false
	}
	return number, true
}

func normalizeTypeCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ----------------------------------------------------
// 1. List Rooms (GET /api/rooms)
// ----------------------------------------------------

func ListRooms(c *gin.Context) {
	rooms, err := services.NewRoomService(config.DB).List()
	if err != nil {
		log.Printf("❌ Failed to list rooms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to list rooms."})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// ----------------------------------------------------
// 2. Get Room (GET /api/rooms/:room_number)
// ----------------------------------------------------

func GetRoom(c *gin.Context) {
	number, ok := parseRoomNumber(c)
	if !ok {
		return
	}

	room, err := services.NewRoomService(config.DB).Get(number)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room %d not found.", number)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load room."})
		return
	}

	c.JSON(http.StatusOK, room)
}

// ----------------------------------------------------
// 3. Create Room (POST /api/rooms)
// ----------------------------------------------------

func CreateRoom(c *gin.Context) {
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	if payload.RoomNumber == nil || *payload.RoomNumber <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Room number is required."})
		return
	}

	room := models.Room{
		RoomNumber:   *payload.RoomNumber,
		RoomTypeCode: normalizeTypeCode(payload.RoomTypeCode),
	}

	if err := services.NewRoomService(config.DB).Create(&room); err != nil {
		switch {
		case errors.Is(err, services.ErrRoomHasNoType):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid roomTypeCode provided."})
		case errors.Is(err, services.ErrAlreadyExists):
			log.Printf("❌ Duplicate room number: %d", room.RoomNumber)
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Room %d already exists.", room.RoomNumber),
			})
		default:
			log.Printf("❌ DB ERROR: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		}
		return
	}

	c.JSON(http.StatusCreated, room)
}

// ----------------------------------------------------
// 4. Update Room (PUT /api/rooms/:room_number)
// ----------------------------------------------------

func UpdateRoom(c *gin.Context) {
	number, ok := parseRoomNumber(c)
	if !ok {
		return
	}

	svc := services.NewRoomService(config.DB)
	room, err := svc.Get(number)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room %d not found.", number)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load room."})
		return
	}

	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	// Full-replace semantics: an absent or blank type clears the reference.
	code := normalizeTypeCode(payload.RoomTypeCode)
	if code != nil {
		if _, err := services.NewRoomTypeService(config.DB).Get(*code); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid roomTypeCode provided."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to check room type."})
			return
		}
	}
	room.RoomTypeCode = code
	room.RoomType = nil

	if err := svc.Update(&room); err != nil {
		log.Printf("❌ Update Error for Room %d: %v", number, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room updated successfully"})
}

// ----------------------------------------------------
// 5. Delete Room (GET confirm + DELETE /api/rooms/:room_number)
// ----------------------------------------------------

func ConfirmDeleteRoom(c *gin.Context) {
	number, ok := parseRoomNumber(c)
	if !ok {
		return
	}

	room, err := services.NewRoomService(config.DB).Get(number)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room %d not found.", number)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load room."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":    room,
		"message": fmt.Sprintf("Send DELETE /api/rooms/%d to confirm deletion.", number),
	})
}

func DeleteRoom(c *gin.Context) {
	number, ok := parseRoomNumber(c)
	if !ok {
		return
	}

	if err := services.NewRoomService(config.DB).Delete(number); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Printf("⚠️ No room found with number: %d", number)
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room %d not found.", number)})
			return
		}
		log.Printf("❌ DB Error during deletion (room %d): %v", number, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete room."})
		return
	}

	log.Printf("✅ Room %d deleted.", number)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room deleted successfully"})
}
