package nominee

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Nominee is an emergency contact. DeviceToken, when present, is the FCM
// registration token push notifications are delivered to.
type Nominee struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name         string             `bson:"name" json:"name"`
	Relationship string             `bson:"relationship" json:"relationship"`
	Phone        string             `bson:"phone" json:"phone"`
	DeviceToken  string             `bson:"device_token,omitempty" json:"device_token,omitempty"`
}
