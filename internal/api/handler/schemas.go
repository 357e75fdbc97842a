package handler

import (
	"time"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

// --- Users ---

type signupRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"omitempty,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,strongpassword"`
}

type assignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=regular admin banned"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorsResponse struct {
	Errors []string `json:"errors"`
}

// --- Posts ---

type postRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Species     string   `json:"species" validate:"required"`
	Breed       string   `json:"breed"`
	Color       string   `json:"color"`
	Description string   `json:"description" validate:"max=2000"`
	Photos      []string `json:"photos" validate:"omitempty,dive,url"`
	Suburb      string   `json:"suburb" validate:"required"`
	ContactInfo string   `json:"contact_info"`
	Status      string   `json:"status" validate:"required,oneof=lost found"`
}

type updatePostRequest struct {
	Title       string   `json:"title" validate:"omitempty,max=100"`
	Species     string   `json:"species"`
	Breed       string   `json:"breed"`
	Color       string   `json:"color"`
	Description string   `json:"description" validate:"max=2000"`
	Photos      []string `json:"photos" validate:"omitempty,dive,url"`
	Suburb      string   `json:"suburb"`
	ContactInfo string   `json:"contact_info"`
	Status      string   `json:"status" validate:"omitempty,oneof=lost found"`
}

type postResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Species     string   `json:"species"`
	Breed       string   `json:"breed,omitempty"`
	Color       string   `json:"color,omitempty"`
	Description string   `json:"description,omitempty"`
	Photos      []string `json:"photos"`
	Suburb      string   `json:"suburb"`
	ContactInfo string   `json:"contact_info,omitempty"`
	Status      string   `json:"status"`
	UserID      string   `json:"user_id"`
	CreatedAt   string   `json:"created_at"`
}

type distinctResponse struct {
	Data []string `json:"data"`
}

// --- Comments ---

type commentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// --- Notifications ---

type notificationRequest struct {
	UserID  string `json:"user_id" validate:"required,len=24,hexadecimal"`
	Message string `json:"message" validate:"required,max=500"`
	PostID  string `json:"post_id" validate:"omitempty,len=24,hexadecimal"`
}

// --- Mappers ---

func (r postRequest) toInput() ports.PostInput {
	return ports.PostInput{
		Title:       r.Title,
		Species:     r.Species,
		Breed:       r.Breed,
		Color:       r.Color,
		Description: r.Description,
		Photos:      r.Photos,
		Suburb:      r.Suburb,
		ContactInfo: r.ContactInfo,
		Status:      r.Status,
	}
}

func (r updatePostRequest) toInput() ports.PostInput {
	return ports.PostInput(r)
}

func toPostResponse(p *domain.Post) postResponse {
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		Species:     p.Species,
		Breed:       p.Breed,
		Color:       p.Color,
		Description: p.Description,
		Photos:      photos,
		Suburb:      p.Suburb,
		ContactInfo: p.ContactInfo,
		Status:      string(p.Status),
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toPostResponses(posts []*domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}
