package emergency

import (
	"firebase.google.com/go/v4/messaging"
)

func newAlertMessage(token, title, body string) *messaging.Message {
	return &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Token: token,
	}
}
