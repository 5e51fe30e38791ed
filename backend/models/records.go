package models

import (
	"strconv"
	"strings"
	"time"
)

// Record store tables. Entitlements is written by the checkout process on
// payment confirmation; this service only reads it.
const (
	TableEntitlements   = "Entitlements"
	TableCourseProgress = "CourseProgress"
	TableQuizResults    = "QuizResults"
)

// EntitlementRecord is keyed by (email, courseID).
type EntitlementRecord struct {
	IsPaid            bool   `json:"is_paid"`
	ExternalPaymentID string `json:"external_payment_id,omitempty"`
	PaidAt            string `json:"paid_at,omitempty"`
}

// ProgressRecord is keyed by (email, courseID/lessonID).
type ProgressRecord struct {
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuizResult is keyed by (email, courseID/lessonID) and overwritten on
// every submission; no attempt history is kept.
type QuizResult struct {
	Score       int       `json:"score"` // 0-100
	Passed      bool      `json:"passed"`
	CompletedAt time.Time `json:"completed_at"`
}

// LessonRowKey builds the row key for per-lesson records.
func LessonRowKey(courseID string, lessonID int) string {
	return courseID + "/" + strconv.Itoa(lessonID)
}

// LessonIDFromRowKey parses the lesson id back out of a row key produced
// by LessonRowKey. The second result is false for foreign keys.
func LessonIDFromRowKey(courseID, rowKey string) (int, bool) {
	rest, found := strings.CutPrefix(rowKey, courseID+"/")
	if !found {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return id, true
}

// SessionUser is the identity handed to the access gate by the session
// provider. Email is the stable user key across all record tables.
type SessionUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
