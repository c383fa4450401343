package model

type UserRole string

const (
	Learner UserRole = "learner"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'learner'" json:"role"`
	Disabled bool     `gorm:"default:false" json:"disabled"`
}

func (User) TableName() string {
	return "users"
}

// Profile is created in the same transaction as its User at registration, so
// every user always has exactly one profile.
// swagger:model Profile
type Profile struct {
	BaseModel
	UserID   uint   `gorm:"uniqueIndex;not null" json:"userId"`
	FullName string `gorm:"size:100" json:"fullName"`
	Avatar   string `gorm:"size:255" json:"avatar"`
}

func (Profile) TableName() string {
	return "profiles"
}
