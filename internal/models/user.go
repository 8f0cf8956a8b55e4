package models

// DefaultUserRole is assigned to every account hydrated from a sync
// event; the desktop client has no role concept of its own.
const DefaultUserRole = "admin"

// User is an operator account mirrored from the client. The password
// hash arrives pre-computed; this service never hashes credentials.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"column:username;type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;type:text"`
	Role         string `json:"role" gorm:"column:rol;type:varchar(20);not null;default:'admin'"`
	Phone        string `json:"phone" gorm:"column:telefono;type:varchar(30);not null;default:''"`
}

func (User) TableName() string {
	return "usuarios"
}
