// Package models holds the database models of the portfolio site and the
// payload shapes accepted when creating or patching them.
package models

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
}

type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Subject   string    `json:"subject" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
	Read      bool      `json:"read" gorm:"not null;default:false"`
}

type Skill struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null"`
	Percentage int    `json:"percentage" gorm:"not null"`
	ColorClass string `json:"colorClass" gorm:"not null"`
	Order      int    `json:"order" gorm:"default:0"`
}

type Project struct {
	ID              uint                        `json:"id" gorm:"primaryKey"`
	Title           string                      `json:"title" gorm:"not null"`
	Description     string                      `json:"description" gorm:"not null"`
	FullDescription *string                     `json:"fullDescription"`
	Category        string                      `json:"category" gorm:"not null;index"`
	ImageURL        string                      `json:"imageUrl" gorm:"column:image_url;not null"`
	BgColorClass    string                      `json:"bgColorClass" gorm:"not null"`
	Technologies    datatypes.JSONSlice[string] `json:"technologies"`
	Order           int                         `json:"order" gorm:"default:0"`
}

// Clone returns a copy of p that shares no memory with it.
func (p Project) Clone() Project {
	p.FullDescription = clonePtr(p.FullDescription)
	p.Technologies = slices.Clone(p.Technologies)
	return p
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

type Milestone struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Year        string `json:"year" gorm:"not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"not null"`
	Position    string `json:"position" gorm:"not null"`
	ColorClass  string `json:"colorClass" gorm:"not null"`
	BorderClass string `json:"borderClass" gorm:"not null"`
	Order       int    `json:"order" gorm:"default:0"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&User{}, &ContactMessage{}, &Skill{}, &Project{}, &Milestone{}}
}
