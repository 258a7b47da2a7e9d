package domain

type VehicleType string

const (
	VehicleCar        VehicleType = "CAR"
	VehicleTruck      VehicleType = "TRUCK"
	VehicleMotorcycle VehicleType = "MOTORCYCLE"
	VehicleBus        VehicleType = "BUS"
)

// Vehicle: plateNumber là unique trong toàn hệ thống nhưng client không
// enforce, backend là system of record.
type Vehicle struct {
	ID          string      `json:"id"`
	PlateNumber string      `json:"plateNumber"`
	Model       string      `json:"model"`
	VehicleType VehicleType `json:"vehicleType"`
	Owner       *User       `json:"owner,omitempty"`
}
