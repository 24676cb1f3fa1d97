package models

// Contact is one phonebook entry. Contacts are always scoped by owner.
type Contact struct {
	BaseModel
	Name     string `gorm:"not null" json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite bool   `gorm:"default:false" json:"favorite"`
	OwnerID  string `gorm:"type:uuid;index;not null" json:"owner"`
}
