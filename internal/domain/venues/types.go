package venues

import "time"

// Venue is a physical location hosting classes. The core reads venues and
// derives occupancy; it never writes them.
type Venue struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}
