package services

import (
	"fmt"

	"hotel-frontdesk/models"

	"gorm.io/gorm"
)

// AvailabilityService answers "which rooms are free for this window".
// The answer is advisory: nothing re-checks it atomically when a reservation
// is later committed, so two racing bookings can both pass.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// ListAvailableRooms returns rooms with no reservation overlapping the
// requested window, regardless of reservation status. Two stays touch
// without overlapping when one ends exactly where the other begins.
func (s *AvailabilityService) ListAvailableRooms(f AvailableRoomFilter) ([]models.Room, error) {
	wantEnd := f.EndOfStay()

	// Candidate conflicts: reservations that begin before the requested
	// window ends. The end date is derived per reservation, so the second
	// half of the overlap test runs here rather than in SQL.
	var candidates []models.Reservation
	if err := s.DB.
		Where("room_number IS NOT NULL").
		Where("start_of_stay < ?", wantEnd).
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to load reservations for availability check: %w", err)
	}

	taken := make(map[int]struct{})
	for _, r := range candidates {
		if r.EndDate().After(f.StartOfStay) {
			taken[*r.RoomNumber] = struct{}{}
		}
	}

	q := s.DB.Preload("RoomType").Order("room_number")
	if f.RoomTypeCode != "" {
		q = q.Where("room_type_code = ?", f.RoomTypeCode)
	}
	if len(taken) > 0 {
		nums := make([]int, 0, len(taken))
		for n := range taken {
			nums = append(nums, n)
		}
		q = q.Where("room_number NOT IN ?", nums)
	}

	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list available rooms: %w", err)
	}
	return rooms, nil
}
