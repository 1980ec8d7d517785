package model

// PushSubscription holds a browser push subscription together with the device
// types its owner wants availability notices for. Held in memory only.
type PushSubscription struct {
	Endpoint    string   `json:"endpoint"`
	P256DH      string   `json:"p256dh"`
	Auth        string   `json:"auth"`
	DeviceTypes []string `json:"deviceTypes"`
}
