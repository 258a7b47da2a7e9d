package domain

type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotOccupied  SlotStatus = "OCCUPIED"
)

// ParkingSlot: slotStatus = OCCUPIED <=> đang có session active gán xe vào
// slot này (server enforce, client chỉ mirror).
type ParkingSlot struct {
	ID         string     `json:"id"`
	SlotNumber string     `json:"slotNumber"`
	SlotStatus SlotStatus `json:"slotStatus"`
	Vehicle    *Vehicle   `json:"vehicle,omitempty"`
}

type CreateSlotDTO struct {
	SlotNumber string `json:"slotNumber" binding:"required"`
}

// SlotSummary là số liệu cho các card trên dashboard.
type SlotSummary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}
