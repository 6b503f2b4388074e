package model

// DeviceType is the rental category of a station on the floor.
type DeviceType string

const (
	DevicePS4       DeviceType = "PS4"
	DevicePS5       DeviceType = "PS5"
	DeviceRacing    DeviceType = "RACING"
	DeviceVR        DeviceType = "VR"
	DeviceVRRacing  DeviceType = "VR_RACING"
	DeviceBilliards DeviceType = "BILLIARDS"
	// DeviceFrame is the party photo station, billed per player instead of
	// by time.
	DeviceFrame DeviceType = "FRAME"
)

// Device is a rentable station (console, rig, table, frame).
type Device struct {
	ID   string     `json:"id" bson:"_id,omitempty"`
	Name string     `json:"name" bson:"name"`
	Type DeviceType `json:"type" bson:"type"`
	// HourlyRate is the flat fallback rate used when the rate card has no
	// entry for the device's type.
	HourlyRate float64 `json:"hourlyRate" bson:"hourlyRate"`
	Active     bool    `json:"active" bson:"active"`
}
