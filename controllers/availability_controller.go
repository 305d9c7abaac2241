package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"hotel-frontdesk/middleware"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type AvailabilityController struct {
	Availability *services.AvailabilityService
	Rooms        *services.RoomService
	Guests       *services.GuestService
	Sessions     *services.SessionService
}

func NewAvailabilityController(
	availability *services.AvailabilityService,
	rooms *services.RoomService,
	guests *services.GuestService,
	sessions *services.SessionService,
) *AvailabilityController {
	return &AvailabilityController{
		Availability: availability,
		Rooms:        rooms,
		Guests:       guests,
		Sessions:     sessions,
	}
}

// ListAvailableRooms searches for free rooms. Criteria come from the query
// string, then from the session's remembered search, then from the built-in
// defaults (today, one night, any type). The chosen criteria are written
// back to the session so the next visit starts where this one left off.
func (avc *AvailabilityController) ListAvailableRooms(c *gin.Context) {
	session := middleware.SessionFrom(c)
	defaults := avc.Sessions.LoadSearchDefaults(session)

	startStr := c.Query("start_date")
	if startStr == "" {
		startStr = defaults.AvailableRooms.StartDate
	}
	if startStr == "" {
		startStr = time.Now().Format(dateLayout)
	}

	lengthStr := c.Query("length_of_stay")
	if lengthStr == "" {
		lengthStr = defaults.AvailableRooms.LengthOfStay
	}
	if lengthStr == "" {
		lengthStr = "1"
	}

	roomType := c.Query("room_type")
	if roomType == "" {
		roomType = defaults.AvailableRooms.RoomType
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD.")
		return
	}
	nights, err := strconv.Atoi(lengthStr)
	if err != nil || nights < 1 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid length_of_stay, expected a positive number of nights.")
		return
	}

	defaults.AvailableRooms = services.AvailabilityDefaults{
		StartDate:    startStr,
		LengthOfStay: lengthStr,
		RoomType:     roomType,
	}
	if err := avc.Sessions.SaveSearchDefaults(session, defaults); err != nil {
		log.Printf("warning: failed to save search defaults: %v", err)
	}

	rooms, err := avc.Availability.ListAvailableRooms(services.AvailableRoomFilter{
		StartOfStay:  start,
		LengthOfStay: nights,
		RoomTypeCode: roomType,
	})
	if err != nil {
		log.Printf("❌ Availability search failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to search available rooms.")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"criteria": gin.H{
			"startDate":    startStr,
			"lengthOfStay": nights,
			"roomType":     roomType,
		},
		"rooms": rooms,
	})
}

// ReserveRoom stashes the picked room and stay window as wizard state and
// points the caller at guest selection.
func (avc *AvailabilityController) ReserveRoom(c *gin.Context) {
	session := middleware.SessionFrom(c)

	roomNumber, err := strconv.Atoi(c.Param("room_number"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room number.")
		return
	}

	room, err := avc.Rooms.Get(roomNumber)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("Room %d not found.", roomNumber))
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load room.")
		return
	}

	startStr := c.Query("start_date")
	if startStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "start_date is required.")
		return
	}
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD.")
		return
	}

	lengthStr := c.Query("length_of_stay")
	if lengthStr == "" {
		lengthStr = "1"
	}
	nights, err := strconv.Atoi(lengthStr)
	if err != nil || nights < 1 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid length_of_stay, expected a positive number of nights.")
		return
	}

	state := services.WizardState{
		RoomNumber:   room.RoomNumber,
		StartOfStay:  start.Format(dateLayout),
		LengthOfStay: nights,
	}
	if err := avc.Sessions.SaveWizard(session, state); err != nil {
		log.Printf("❌ Failed to save wizard state: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to hold room selection.")
		return
	}

	wizard, _ := avc.Sessions.LoadWizard(session)
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Room %d held, pick a guest next.", room.RoomNumber),
		"next":    "/api/available-rooms/guest-selection",
		"wizard":  wizard,
	})
}

// GuestSelection shows the pending wizard state alongside a filterable guest
// list, so the caller can pick (or go create) the guest for the stay.
func (avc *AvailabilityController) GuestSelection(c *gin.Context) {
	session := middleware.SessionFrom(c)

	wizard, err := avc.Sessions.LoadWizard(session)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoWizard):
			utils.JSONError(c, http.StatusNotFound, "No room selected; search available rooms first.")
		case errors.Is(err, services.ErrWizardExpired):
			utils.JSONError(c, http.StatusGone, "Room selection expired; search available rooms again.")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load room selection.")
		}
		return
	}

	guests, err := avc.Guests.List(services.GuestFilter{
		LastName: c.Query("last_name"),
		Postcode: c.Query("postcode"),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list guests.")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"wizard": wizard,
		"guests": guests,
	})
}
