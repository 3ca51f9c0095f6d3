package capacity

import "hopskip/internal/domain/bookings"

// Bucket is the display bucket a booking falls into for aggregation.
type Bucket int

const (
	// BucketUnknown keeps a booking in totalBooked without contributing to
	// either sub-count. Unrecognised booking types are deliberately not an
	// error.
	BucketUnknown Bucket = iota
	BucketMember
	BucketFreeTrial
)

// Classify maps a booking type onto its display bucket.
func Classify(bookingType string) Bucket {
	switch bookingType {
	case bookings.TypePaid:
		return BucketMember
	case bookings.TypeFree:
		return BucketFreeTrial
	default:
		return BucketUnknown
	}
}
