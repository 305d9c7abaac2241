package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

func parseGuestID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid guest id."})
		return 0, false
	}
	return uint(id), true
}

// validateGuest mirrors the registration form: every address and contact
// field is required except the second address line.
func validateGuest(g *models.Guest) map[string]string {
	errs := map[string]string{}

	g.Title = strings.TrimSpace(g.Title)
	g.FirstName = strings.TrimSpace(g.FirstName)
	g.LastName = strings.TrimSpace(g.LastName)
	g.PhoneNumber = strings.TrimSpace(g.PhoneNumber)
	g.Email = strings.TrimSpace(g.Email)
	g.AddressLine1 = strings.TrimSpace(g.AddressLine1)
	g.AddressLine2 = strings.TrimSpace(g.AddressLine2)
	g.City = strings.TrimSpace(g.City)
	g.County = strings.TrimSpace(g.County)
	g.Postcode = strings.TrimSpace(g.Postcode)

	required := map[string]string{
		"title":        g.Title,
		"firstName":    g.FirstName,
		"lastName":     g.LastName,
		"phoneNumber":  g.PhoneNumber,
		"email":        g.Email,
		"addressLine1": g.AddressLine1,
		"city":         g.City,
		"county":       g.County,
		"postcode":     g.Postcode,
	}
	for field, value := range required {
		if value == "" {
			errs[field] = "This field is required."
		}
	}

	if g.Email != "" && !strings.Contains(g.Email, "@") {
		errs["email"] = "Enter a valid email address."
	}
	if len(g.Title) > 10 {
		errs["title"] = "Ensure this value has at most 10 characters."
	}
	if len(g.PhoneNumber) > 11 {
		errs["phoneNumber"] = "Ensure this value has at most 11 characters."
	}
	if len(g.Postcode) > 8 {
		errs["postcode"] = "Ensure this value has at most 8 characters."
	}

	return errs
}

func (gc *GuestController) ListGuests(c *gin.Context) {
	filter := services.GuestFilter{
		LastName: c.Query("last_name"),
		Postcode: c.Query("postcode"),
	}

	guests, err := gc.Guests.List(filter)
	if err != nil {
		log.Printf("❌ Failed to list guests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to list guests."})
		return
	}

	c.JSON(http.StatusOK, guests)
}

func (gc *GuestController) GetGuest(c *gin.Context) {
	id, ok := parseGuestID(c)
	if !ok {
		return
	}

	guest, err := gc.Guests.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Guest %d not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load guest."})
		return
	}

	c.JSON(http.StatusOK, guest)
}

func (gc *GuestController) CreateGuest(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}
	guest.ID = 0

	if fieldErrs := validateGuest(&guest); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation failed", "errors": fieldErrs})
		return
	}

	if err := gc.Guests.Create(&guest); err != nil {
		log.Printf("❌ Failed to create guest: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create guest."})
		return
	}

	// A guest created mid-wizard goes straight back to guest selection.
	if c.Query("mode") == "selection" {
		c.JSON(http.StatusCreated, gin.H{
			"guest": guest,
			"next":  "/api/available-rooms/guest-selection",
		})
		return
	}

	c.JSON(http.StatusCreated, guest)
}

func (gc *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := parseGuestID(c)
	if !ok {
		return
	}

	existing, err := gc.Guests.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Guest %d not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load guest."})
		return
	}

	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}
	guest.ID = existing.ID
	guest.CreatedAt = existing.CreatedAt

	if fieldErrs := validateGuest(&guest); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation failed", "errors": fieldErrs})
		return
	}

	if err := gc.Guests.Update(&guest); err != nil {
		log.Printf("❌ Failed to update guest %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update guest."})
		return
	}

	c.JSON(http.StatusOK, guest)
}

// ConfirmDeleteGuest is the confirmation step: it shows what a DELETE on the
// same resource would remove, without removing anything.
func (gc *GuestController) ConfirmDeleteGuest(c *gin.Context) {
	id, ok := parseGuestID(c)
	if !ok {
		return
	}

	guest, err := gc.Guests.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Guest %d not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load guest."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guest":       guest,
		"displayName": guest.DisplayName(),
		"message":     fmt.Sprintf("Send DELETE /api/guests/%d to confirm deletion.", id),
	})
}

func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := parseGuestID(c)
	if !ok {
		return
	}

	if err := gc.Guests.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Guest %d not found.", id)})
			return
		}
		log.Printf("❌ Failed to delete guest %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete guest."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Guest deleted successfully"})
}
