package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

// PushSender abstracts the push provider; here it is tied to the exponent
// SDK types because Expo is the only provider in use.
type PushSender interface {
	Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error)
	PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error)
}
