package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// CompanyName is fixed for every account; the service is single-tenant.
const CompanyName = "IHRP"

func Departments() []string {
	return []string{
		"Technology",
		"Consulting",
		"Operations",
		"Human Resources",
		"Finance",
	}
}

type User struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	FirstName           string     `gorm:"not null" json:"firstName"`
	LastName            string     `gorm:"not null" json:"lastName"`
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone               string     `gorm:"not null" json:"phone"`
	DateOfBirth         string     `gorm:"not null" json:"dateOfBirth"`
	Department          string     `gorm:"not null" json:"department"`
	Role                string     `gorm:"not null;default:member" json:"role"`
	CompanyName         string     `gorm:"not null" json:"companyName"`
	PasswordHash        string     `gorm:"not null" json:"-"`
	ResetTokenHash      string     `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (user *User) FullName() string {
	return user.FirstName + " " + user.LastName
}
