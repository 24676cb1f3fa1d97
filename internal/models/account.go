package models

// Subscription is the account tier.
type Subscription string

const (
	SubscriptionStarter  Subscription = "starter"
	SubscriptionPro      Subscription = "pro"
	SubscriptionBusiness Subscription = "business"
)

// Valid reports whether s is one of the three known tiers.
func (s Subscription) Valid() bool {
	switch s {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	}
	return false
}

// Account is a user account. Token holds the active session JWT and is empty
// while logged out. VerificationToken is set at signup and cleared exactly
// once when the email is confirmed.
type Account struct {
	BaseModel
	Name              string       `gorm:"not null" json:"name"`
	Email             string       `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string       `gorm:"not null" json:"-"`
	Subscription      Subscription `gorm:"type:varchar(20);default:'starter'" json:"subscription"`
	Token             string       `json:"-"`
	AvatarURL         string       `json:"avatarURL"`
	Verified          bool         `gorm:"default:false" json:"verified"`
	VerificationToken string       `gorm:"index" json:"-"`
}
