package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	JoinDate     time.Time `gorm:"not null"                 json:"joinDate"`
}

type Tab struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Title      string    `gorm:"not null"                  json:"title"`
	Artist     string    `gorm:"not null;index"            json:"artist"`
	Difficulty string    `gorm:"not null;index"            json:"difficulty"`
	Genre      string    `gorm:"not null;index"            json:"genre"`
	TabContent string    `gorm:"not null"                  json:"tabContent"`
	Capo       int       `gorm:"default:0"                 json:"capo"`
	Tuning     string    `gorm:"not null;default:Standard" json:"tuning"`
	Author     string    `gorm:"not null;index"            json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
	Likes      uint      `gorm:"default:0"                 json:"likes"`
	Views      uint      `gorm:"default:0"                 json:"views"`
}

type Song struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string `gorm:"not null"                 json:"title"`
	Artist   string `gorm:"not null;index"           json:"artist"`
	Album    string `json:"album,omitempty"`
	Year     *int   `json:"year,omitempty"`
	Duration string `json:"duration,omitempty"`
	TabID    *uint  `gorm:"index"                    json:"tabId,omitempty"`
}

type Favorite struct {
	ID     uint `gorm:"primaryKey"                        json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_user_tab" json:"user_id"`
	TabID  uint `gorm:"not null;uniqueIndex:idx_user_tab" json:"tab_id"`
}
