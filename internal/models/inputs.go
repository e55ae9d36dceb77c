package models

import (
	"slices"

	"gorm.io/datatypes"
)

// NewUser is the accepted creation subset of a User.
type NewUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in NewUser) Record() User {
	return User{Username: in.Username, Password: in.Password}
}

// NewContactMessage is what the public contact form submits. The id,
// createdAt and read flag are assigned by the store.
type NewContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (in NewContactMessage) Record() ContactMessage {
	return ContactMessage{Name: in.Name, Email: in.Email, Subject: in.Subject, Message: in.Message}
}

type NewSkill struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	ColorClass string `json:"colorClass"`
	Order      int    `json:"order"`
}

func (in NewSkill) Record() Skill {
	return Skill{Name: in.Name, Percentage: in.Percentage, ColorClass: in.ColorClass, Order: in.Order}
}

type NewProject struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	FullDescription *string  `json:"fullDescription"`
	Category        string   `json:"category"`
	ImageURL        string   `json:"imageUrl"`
	BgColorClass    string   `json:"bgColorClass"`
	Technologies    []string `json:"technologies"`
	Order           int      `json:"order"`
}

func (in NewProject) Record() Project {
	return Project{
		Title:           in.Title,
		Description:     in.Description,
		FullDescription: clonePtr(in.FullDescription),
		Category:        in.Category,
		ImageURL:        in.ImageURL,
		BgColorClass:    in.BgColorClass,
		Technologies:    datatypes.JSONSlice[string](slices.Clone(in.Technologies)),
		Order:           in.Order,
	}
}

type NewMilestone struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    string `json:"position"`
	ColorClass  string `json:"colorClass"`
	BorderClass string `json:"borderClass"`
	Order       int    `json:"order"`
}

func (in NewMilestone) Record() Milestone {
	return Milestone{
		Year:        in.Year,
		Title:       in.Title,
		Description: in.Description,
		Position:    in.Position,
		ColorClass:  in.ColorClass,
		BorderClass: in.BorderClass,
		Order:       in.Order,
	}
}

// SkillPatch carries a partial update; nil fields are left unchanged.
type SkillPatch struct {
	Name       *string `json:"name"`
	Percentage *int    `json:"percentage"`
	ColorClass *string `json:"colorClass"`
	Order      *int    `json:"order"`
}

func (p SkillPatch) Apply(s *Skill) {
	setIf(&s.Name, p.Name)
	setIf(&s.Percentage, p.Percentage)
	setIf(&s.ColorClass, p.ColorClass)
	setIf(&s.Order, p.Order)
}

// ProjectPatch carries a partial update; nil fields are left unchanged.
type ProjectPatch struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	FullDescription *string   `json:"fullDescription"`
	Category        *string   `json:"category"`
	ImageURL        *string   `json:"imageUrl"`
	BgColorClass    *string   `json:"bgColorClass"`
	Technologies    *[]string `json:"technologies"`
	Order           *int      `json:"order"`
}

func (p ProjectPatch) Apply(pr *Project) {
	setIf(&pr.Title, p.Title)
	setIf(&pr.Description, p.Description)
	if p.FullDescription != nil {
		v := *p.FullDescription
		pr.FullDescription = &v
	}
	setIf(&pr.Category, p.Category)
	setIf(&pr.ImageURL, p.ImageURL)
	setIf(&pr.BgColorClass, p.BgColorClass)
	if p.Technologies != nil {
		pr.Technologies = append(datatypes.JSONSlice[string]{}, *p.Technologies...)
	}
	setIf(&pr.Order, p.Order)
}

// MilestonePatch carries a partial update; nil fields are left unchanged.
type MilestonePatch struct {
	Year        *string `json:"year"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Position    *string `json:"position"`
	ColorClass  *string `json:"colorClass"`
	BorderClass *string `json:"borderClass"`
	Order       *int    `json:"order"`
}

func (p MilestonePatch) Apply(m *Milestone) {
	setIf(&m.Year, p.Year)
	setIf(&m.Title, p.Title)
	setIf(&m.Description, p.Description)
	setIf(&m.Position, p.Position)
	setIf(&m.ColorClass, p.ColorClass)
	setIf(&m.BorderClass, p.BorderClass)
	setIf(&m.Order, p.Order)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
