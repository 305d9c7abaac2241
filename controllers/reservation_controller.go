package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"hotel-frontdesk/middleware"
	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Reservations *services.ReservationService
	Sessions     *services.SessionService
}

func NewReservationController(reservations *services.ReservationService, sessions *services.SessionService) *ReservationController {
	return &ReservationController{Reservations: reservations, Sessions: sessions}
}

// reservationPayload is the submitted reservation form. Pointer fields
// distinguish "absent" from an explicit zero.
type reservationPayload struct {
	RoomNumber     *int     `json:"roomNumber"`
	StartOfStay    string   `json:"startOfStay"`
	LengthOfStay   int      `json:"lengthOfStay"`
	NumberOfGuests int      `json:"numberOfGuests"`
	Price          *float64 `json:"price"`
	AmountPaid     *float64 `json:"amountPaid"`
	StatusCode     string   `json:"statusCode"`
	Notes          *string  `json:"notes"`
}

func parseReservationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid reservation id."})
		return 0, false
	}
	return uint(id), true
}

func (rc *ReservationController) loadWizard(c *gin.Context) (services.WizardState, bool) {
	session := middleware.SessionFrom(c)
	wizard, err := rc.Sessions.LoadWizard(session)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoWizard):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "No room selected; search available rooms first."})
		case errors.Is(err, services.ErrWizardExpired):
			c.JSON(http.StatusGone, gin.H{"status": "error", "message": "Room selection expired; search available rooms again."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load room selection."})
		}
		return services.WizardState{}, false
	}
	return wizard, true
}

// NewDraft returns the prefilled reservation for the selected guest and the
// room/stay held in the wizard: quoted price, status Reserved, nothing paid,
// party of one. Nothing is persisted until the draft is posted back.
func (rc *ReservationController) NewDraft(c *gin.Context) {
	guestID, err := strconv.ParseUint(c.Param("guest_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid guest id."})
		return
	}

	wizard, ok := rc.loadWizard(c)
	if !ok {
		return
	}

	// Remember the picked guest so a re-fetch of the draft keeps working.
	session := middleware.SessionFrom(c)
	wizard.GuestID = uint(guestID)
	if err := rc.Sessions.SaveWizard(session, wizard); err != nil {
		log.Printf("warning: failed to save wizard state: %v", err)
	}

	start, err := time.Parse(dateLayout, wizard.StartOfStay)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Held room selection has an invalid start date."})
		return
	}

	draft, err := rc.Reservations.BuildDraft(uint(guestID), wizard.RoomNumber, start, wizard.LengthOfStay)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Guest or room not found."})
		case errors.Is(err, services.ErrRoomHasNoType):
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "Room has no room type, cannot quote a price."})
		default:
			log.Printf("❌ Failed to build reservation draft: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to prepare reservation."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":          "Create Reservation",
		"saveButtonText": "Create Reservation",
		"reservation":    draft,
	})
}

// CreateReservation persists the submitted draft. Fields left out of the
// payload fall back to the held wizard state; the price falls back to a
// fresh quote.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	guestID, err := strconv.ParseUint(c.Param("guest_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid guest id."})
		return
	}

	var payload reservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}

	session := middleware.SessionFrom(c)
	wizard, wizardErr := rc.Sessions.LoadWizard(session)

	fieldErrs := map[string]string{}

	var roomNumber int
	switch {
	case payload.RoomNumber != nil:
		roomNumber = *payload.RoomNumber
	case wizardErr == nil && wizard.RoomNumber != 0:
		roomNumber = wizard.RoomNumber
	default:
		fieldErrs["roomNumber"] = "This field is required."
	}

	startStr := payload.StartOfStay
	if startStr == "" && wizardErr == nil {
		startStr = wizard.StartOfStay
	}
	var start time.Time
	if startStr == "" {
		fieldErrs["startOfStay"] = "This field is required."
	} else if start, err = time.Parse(dateLayout, startStr); err != nil {
		fieldErrs["startOfStay"] = "Enter a valid date in YYYY-MM-DD format."
	}

	nights := payload.LengthOfStay
	if nights == 0 && wizardErr == nil {
		nights = wizard.LengthOfStay
	}
	if nights < 1 {
		fieldErrs["lengthOfStay"] = "Must be at least 1 night."
	}

	status := payload.StatusCode
	if status == "" {
		status = models.StatusReserved
	}
	if !models.ValidStatusCode(status) {
		fieldErrs["statusCode"] = "Select a valid choice."
	}

	partySize := payload.NumberOfGuests
	if partySize == 0 {
		partySize = 1
	}
	if partySize < 1 {
		fieldErrs["numberOfGuests"] = "Must be at least 1 guest."
	}

	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation failed", "errors": fieldErrs})
		return
	}

	if err := rc.Reservations.VerifyGuest(uint(guestID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Guest %d not found.", guestID)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to check guest."})
		return
	}

	var price float64
	if payload.Price != nil {
		// The quote path below already proves the room exists; a supplied
		// price must not skip that check.
		if err := rc.Reservations.VerifyRoom(roomNumber); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room %d not found.", roomNumber)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to check room."})
			return
		}
		price = *payload.Price
	} else {
		price, err = rc.Reservations.Quote(roomNumber, nights)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room %d not found.", roomNumber)})
			case errors.Is(err, services.ErrRoomHasNoType):
				c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "Room has no room type, cannot quote a price."})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to quote reservation price."})
			}
			return
		}
	}

	amountPaid := 0.0
	if payload.AmountPaid != nil {
		amountPaid = *payload.AmountPaid
	}
	notes := ""
	if payload.Notes != nil {
		notes = *payload.Notes
	}

	gid := uint(guestID)
	reservation := models.Reservation{
		GuestID:        &gid,
		RoomNumber:     &roomNumber,
		ReservedAt:     time.Now(),
		Price:          price,
		AmountPaid:     amountPaid,
		NumberOfGuests: partySize,
		StartOfStay:    start,
		LengthOfStay:   nights,
		StatusCode:     status,
		Notes:          notes,
	}

	if err := rc.Reservations.Create(&reservation); err != nil {
		log.Printf("❌ Failed to create reservation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create reservation."})
		return
	}

	if wizardErr == nil {
		if err := rc.Sessions.ClearWizard(session); err != nil {
			log.Printf("warning: failed to clear wizard state: %v", err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":      "success",
		"reservation": reservation,
		"next":        fmt.Sprintf("/api/reservations/%d/confirmed", reservation.ID),
	})
}

func (rc *ReservationController) ConfirmedReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Reservation %d not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load reservation."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservation": reservation,
		"endDate":     reservation.EndDate().Format(dateLayout),
		"statusLabel": models.StatusLabel(reservation.StatusCode),
	})
}

func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Reservation %d not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load reservation."})
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// ListReservations filters the reservation book. Unlike the availability
// search, an explicitly empty query value is a criterion in its own right
// (a cleared date bound), so presence is checked rather than emptiness.
func (rc *ReservationController) ListReservations(c *gin.Context) {
	session := middleware.SessionFrom(c)
	defaults := rc.Sessions.LoadSearchDefaults(session)

	rd := defaults.Reservations
	if !rd.Initialized {
		today := time.Now()
		rd.StartDate = today.Format(dateLayout)
		rd.EndDate = today.AddDate(0, 0, 14).Format(dateLayout)
		rd.LastName = ""
		rd.RoomNumber = ""
	}

	query := c.Request.URL.Query()
	if query.Has("start_date") {
		rd.StartDate = query.Get("start_date")
	}
	if query.Has("end_date") {
		rd.EndDate = query.Get("end_date")
	}
	if query.Has("last_name") {
		rd.LastName = query.Get("last_name")
	}
	if query.Has("room_number") {
		rd.RoomNumber = query.Get("room_number")
	}
	rd.Initialized = true

	filter := services.ReservationFilter{
		LastName:   rd.LastName,
		RoomNumber: rd.RoomNumber,
	}
	if rd.StartDate != "" {
		start, err := time.Parse(dateLayout, rd.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid start_date, expected YYYY-MM-DD."})
			return
		}
		filter.StartDate = &start
	}
	if rd.EndDate != "" {
		end, err := time.Parse(dateLayout, rd.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid end_date, expected YYYY-MM-DD."})
			return
		}
		filter.EndDate = &end
	}

	// Only validated criteria become the remembered defaults; a rejected
	// request must not poison later parameterless lists.
	defaults.Reservations = rd
	if err := rc.Sessions.SaveSearchDefaults(session, defaults); err != nil {
		log.Printf("warning: failed to save search defaults: %v", err)
	}

	reservations, err := rc.Reservations.List(filter)
	if err != nil {
		log.Printf("❌ Failed to list reservations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to list reservations."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"criteria": gin.H{
			"startDate":  rd.StartDate,
			"endDate":    rd.EndDate,
			"lastName":   rd.LastName,
			"roomNumber": rd.RoomNumber,
		},
		"reservations": reservations,
	})
}

// EditReservation returns the reservation as an editable draft. A
// status_code of IN or OT pre-seeds check-in/check-out on the returned copy;
// nothing is persisted until the caller PUTs it back.
func (rc *ReservationController) EditReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Reservation %d not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load reservation."})
		return
	}

	title := "Edit a Reservation"
	saveButtonText := "Update Reservation"
	switch c.Query("status_code") {
	case models.StatusCheckedIn:
		reservation.StatusCode = models.StatusCheckedIn
		title = "Check-in a Reservation"
		saveButtonText = "Save Check-in"
	case models.StatusCheckedOut:
		reservation.StatusCode = models.StatusCheckedOut
		title = "Check-out a Reservation"
		saveButtonText = "Save Check-out"
	}

	c.JSON(http.StatusOK, gin.H{
		"title":          title,
		"saveButtonText": saveButtonText,
		"reservation":    reservation,
	})
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Reservation %d not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load reservation."})
		return
	}

	var payload reservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}

	fieldErrs := map[string]string{}

	if payload.RoomNumber != nil {
		reservation.RoomNumber = payload.RoomNumber
	}
	if payload.StartOfStay != "" {
		start, err := time.Parse(dateLayout, payload.StartOfStay)
		if err != nil {
			fieldErrs["startOfStay"] = "Enter a valid date in YYYY-MM-DD format."
		} else {
			reservation.StartOfStay = start
		}
	}
	if payload.LengthOfStay != 0 {
		if payload.LengthOfStay < 1 {
			fieldErrs["lengthOfStay"] = "Must be at least 1 night."
		} else {
			reservation.LengthOfStay = payload.LengthOfStay
		}
	}
	if payload.NumberOfGuests != 0 {
		if payload.NumberOfGuests < 1 {
			fieldErrs["numberOfGuests"] = "Must be at least 1 guest."
		} else {
			reservation.NumberOfGuests = payload.NumberOfGuests
		}
	}
	if payload.Price != nil {
		reservation.Price = *payload.Price
	}
	if payload.AmountPaid != nil {
		reservation.AmountPaid = *payload.AmountPaid
	}
	if payload.Notes != nil {
		reservation.Notes = *payload.Notes
	}
	if payload.StatusCode != "" {
		// Any known code is accepted; skipping check-in or reverting a
		// check-out is not blocked here.
		if !models.ValidStatusCode(payload.StatusCode) {
			fieldErrs["statusCode"] = "Select a valid choice."
		} else {
			reservation.StatusCode = payload.StatusCode
		}
	}

	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation failed", "errors": fieldErrs})
		return
	}

	if err := rc.Reservations.Update(&reservation); err != nil {
		log.Printf("❌ Failed to update reservation %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update reservation."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "reservation": reservation})
}

func (rc *ReservationController) ConfirmDeleteReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Reservation %d not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load reservation."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservation": reservation,
		"message":     fmt.Sprintf("Send DELETE /api/reservations/%d to confirm deletion.", id),
	})
}

func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	if err := rc.Reservations.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Reservation %d not found.", id)})
			return
		}
		log.Printf("❌ Failed to delete reservation %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete reservation."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Reservation deleted successfully"})
}
