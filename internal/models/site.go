package models

import "time"

// Site is a named publication space that posts belong to (PostgreSQL)
type Site struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:60;uniqueIndex;not null"`
	Title     string    `json:"title" gorm:"size:120"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSiteRequest defines the request body for creating a site
type CreateSiteRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=60"`
	Title string `json:"title" validate:"required,max=120"`
}
