package domain

import (
	"fmt"
	"time"

	"gopkg.in/guregu/null.v4"
)

type ParkingSessionStatus string

const (
	SessionActive    ParkingSessionStatus = "ACTIVE"
	SessionCompleted ParkingSessionStatus = "COMPLETED"
)

// ParkingSession là snapshot read-only do backend trả về. Phía server đảm
// bảo: status = ACTIVE <=> exitTime = null; mỗi session có tối đa một
// payment.
type ParkingSession struct {
	ID        string               `json:"id"`
	VehicleID string               `json:"vehicleId"`
	SlotID    string               `json:"slotId"`
	EntryTime time.Time            `json:"entryTime"`
	ExitTime  null.Time            `json:"exitTime"`
	Status    ParkingSessionStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`

	Vehicle *Vehicle     `json:"vehicle,omitempty"`
	Slot    *ParkingSlot `json:"slot,omitempty"`
	Payment *Payment     `json:"Payment,omitempty"` // backend serialize key này viết hoa
}

// Duration trả về thời gian đỗ dạng "2h 15m", thêm "(ongoing)" khi xe chưa
// ra. Dùng cho detail view.
func (s *ParkingSession) Duration(now time.Time) string {
	if s.EntryTime.IsZero() {
		return "N/A"
	}

	end := now
	suffix := " (ongoing)"
	if s.ExitTime.Valid {
		end = s.ExitTime.Time
		suffix = ""
	}

	d := end.Sub(s.EntryTime)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm%s", hours, minutes, suffix)
}

type CreateParkingSessionDTO struct {
	VehiclePlateNumber string `json:"vehiclePlateNumber" binding:"required"`
}
