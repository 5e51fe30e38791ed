package progress

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"time"

	"aicitybuilders/backend/models"
	"aicitybuilders/backend/store"
)

// Client reads and writes per-user, per-course lesson completion and quiz
// results. Every operation tolerates store unavailability: reads fall back
// to empty state so the page still renders, writes are logged and dropped.
// Nothing here returns an error to the caller.
//
// With an empty email the client runs in anonymous mode against the session
// cache only, never touching the network; that state lives exactly as long
// as the cache passed in.
type Client struct {
	store   store.RecordStore
	session *store.MemoryStore
	logger  *log.Logger
}

func NewClient(rs store.RecordStore, session *store.MemoryStore, logger *log.Logger) *Client {
	return &Client{store: rs, session: session, logger: logger}
}

func (c *Client) backend(email string) store.RecordStore {
	if email == "" {
		return c.session
	}
	return c.store
}

// partition returns the partition key for a user. Anonymous progress shares
// a single partition inside the session cache.
func partition(email string) string {
	if email == "" {
		return "anonymous"
	}
	return email
}

// GetProgress returns the saved completion flags for a course, or an empty
// map when none exist or the store is unreachable.
func (c *Client) GetProgress(ctx context.Context, courseID, email string) map[int]bool {
	completed := make(map[int]bool)

	records, err := c.backend(email).List(ctx, models.TableCourseProgress, partition(email), courseID+"/")
	if err != nil {
		c.logger.Printf("Could not load progress for course %s: %v", courseID, err)
		return completed
	}

	for rowKey, raw := range records {
		lessonID, ok := models.LessonIDFromRowKey(courseID, rowKey)
		if !ok {
			continue
		}
		var record models.ProgressRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			c.logger.Printf("Skipping malformed progress record %s: %v", rowKey, err)
			continue
		}
		completed[lessonID] = record.Completed
	}
	return completed
}

// SetLessonCompleted upserts the completion flag for one lesson.
// Last-writer-wins; a write failure is logged and dropped.
func (c *Client) SetLessonCompleted(ctx context.Context, courseID string, lessonID int, completed bool, email string) {
	record, err := json.Marshal(models.ProgressRecord{
		Completed: completed,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		c.logger.Printf("Could not encode progress record: %v", err)
		return
	}

	rowKey := models.LessonRowKey(courseID, lessonID)
	if err := c.backend(email).Upsert(ctx, models.TableCourseProgress, partition(email), rowKey, record); err != nil {
		c.logger.Printf("Could not save progress for %s: %v", rowKey, err)
	}
}

// GetQuizResults returns the saved quiz results for a course, keyed by
// lesson id; empty on miss or store failure.
func (c *Client) GetQuizResults(ctx context.Context, courseID, email string) map[int]models.QuizResult {
	results := make(map[int]models.QuizResult)

	records, err := c.backend(email).List(ctx, models.TableQuizResults, partition(email), courseID+"/")
	if err != nil {
		c.logger.Printf("Could not load quiz results for course %s: %v", courseID, err)
		return results
	}

	for rowKey, raw := range records {
		lessonID, ok := models.LessonIDFromRowKey(courseID, rowKey)
		if !ok {
			continue
		}
		var result models.QuizResult
		if err := json.Unmarshal(raw, &result); err != nil {
			c.logger.Printf("Skipping malformed quiz result %s: %v", rowKey, err)
			continue
		}
		results[lessonID] = result
	}
	return results
}

// RecordQuizResult overwrites the quiz result for a lesson, and on a passed
// attempt also marks the lesson completed. The two writes are atomic from
// the caller's perspective only; the store gives no such guarantee.
func (c *Client) RecordQuizResult(ctx context.Context, courseID string, lessonID, score int, passed bool, email string) {
	record, err := json.Marshal(models.QuizResult{
		Score:       score,
		Passed:      passed,
		CompletedAt: time.Now().UTC(),
	})
	if err != nil {
		c.logger.Printf("Could not encode quiz result: %v", err)
		return
	}

	rowKey := models.LessonRowKey(courseID, lessonID)
	if err := c.backend(email).Upsert(ctx, models.TableQuizResults, partition(email), rowKey, record); err != nil {
		c.logger.Printf("Could not save quiz result for %s: %v", rowKey, err)
	}

	if passed {
		c.SetLessonCompleted(ctx, courseID, lessonID, true, email)
	}
}

// CompletionPercent computes completedLessonCount/totalLessonCount as a
// percentage, rounded to the nearest integer and clamped to [0,100].
func CompletionPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	percent := int(math.Round(float64(completed) / float64(total) * 100))
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// CompletedCount counts the lessons flagged completed.
func CompletedCount(progress map[int]bool) int {
	count := 0
	for _, done := range progress {
		if done {
			count++
		}
	}
	return count
}
