package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Fullname   string             `bson:"fullname" json:"fullname"`
	Phone      string             `bson:"phone" json:"phone"`
	DOB        string             `bson:"dob" json:"dob"` // "2006-01-02"
	BloodGroup string             `bson:"blood_group" json:"blood_group"`
	Address    string             `bson:"address" json:"address"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
