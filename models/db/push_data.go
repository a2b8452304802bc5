package dbmodels

// PushData keeps an in-app event for a user who was offline when it fired.
// Delivered and deleted on the next websocket connect.
type PushData struct {
	BaseModel
	UserID string `gorm:"type:varchar(36);index"`
	Code   string `gorm:"type:varchar(100)"`
	Msg    string
}
