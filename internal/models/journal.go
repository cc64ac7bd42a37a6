package models

import (
	"time"
)

// Mood is the self-reported mood attached to a journal entry.
type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodBad      Mood = "bad"
	MoodTerrible Mood = "terrible"
)

// DefaultMood is stored when a journal is created without a mood.
const DefaultMood = MoodOkay

// Moods lists every accepted mood, best to worst.
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodBad, MoodTerrible}

// Valid reports whether m is one of the accepted moods.
func (m Mood) Valid() bool {
	for _, v := range Moods {
		if m == v {
			return true
		}
	}
	return false
}

// Journal represents a journaling entry owned by a single user
type Journal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      Mood      `json:"mood"`
	Analysis  *string   `json:"analysis"` // nil until a reflection has been generated
	IsPrivate bool      `json:"isPrivate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy reports whether userID is the owner of the journal.
func (j *Journal) OwnedBy(userID string) bool {
	return j.UserID == userID
}

// ReadableBy reports whether userID may read the journal: owners always,
// everyone else only when the journal is public.
func (j *Journal) ReadableBy(userID string) bool {
	return j.OwnedBy(userID) || !j.IsPrivate
}

// Video is a single video search result surfaced to the client.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
}

// WeeklyInsights is the ephemeral summary across the past week's journals.
type WeeklyInsights struct {
	Insights     string    `json:"insights"`
	JournalCount int       `json:"journalCount"`
	PeriodStart  time.Time `json:"periodStart"`
	PeriodEnd    time.Time `json:"periodEnd"`
}
