package model

import "time"

// Category classifies an event. The set is fixed; user-defined labels
// live on tasks (Task.Tag), not here.
type Category string

const (
	CategoryClass       Category = "class"
	CategoryDeadline    Category = "deadline"
	CategoryExam        Category = "exam"
	CategoryOfficeHours Category = "office-hours"
	CategoryWork        Category = "work"
	CategoryPersonal    Category = "personal"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryClass,
		CategoryDeadline,
		CategoryExam,
		CategoryOfficeHours,
		CategoryWork,
		CategoryPersonal,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryClass, CategoryDeadline, CategoryExam,
		CategoryOfficeHours, CategoryWork, CategoryPersonal:
		return true
	}
	return false
}

// Weekday is a short lowercase weekday name as used in class schedules.
type Weekday string

const (
	Sun Weekday = "sun"
	Mon Weekday = "mon"
	Tue Weekday = "tue"
	Wed Weekday = "wed"
	Thu Weekday = "thu"
	Fri Weekday = "fri"
	Sat Weekday = "sat"
)

var weekdayToTime = map[Weekday]time.Weekday{
	Sun: time.Sunday,
	Mon: time.Monday,
	Tue: time.Tuesday,
	Wed: time.Wednesday,
	Thu: time.Thursday,
	Fri: time.Friday,
	Sat: time.Saturday,
}

// TimeWeekday maps w to the corresponding time.Weekday.
// The second return is false for an unknown name.
func (w Weekday) TimeWeekday() (time.Weekday, bool) {
	d, ok := weekdayToTime[w]
	return d, ok
}

// Valid reports whether w is one of the 7 known weekday names.
func (w Weekday) Valid() bool {
	_, ok := weekdayToTime[w]
	return ok
}

// Attachment is file metadata attached to an event. Only the name and
// MIME type are stored; there is no binary payload.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Event is a single calendar entry. Events generated from a class
// schedule carry the originating class id in ClassID so they can be
// cascade-deleted with the class.
type Event struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Category    Category     `json:"category"`
	Start       time.Time    `json:"start"`
	End         time.Time    `json:"end"`
	Description string       `json:"description,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	ClassID     string       `json:"class_id,omitempty"`
}

// Task is a to-do item. CompletedAt is set exactly when Completed flips
// false -> true and cleared again on true -> false.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Emoji       string     `json:"emoji,omitempty"`
	Completed   bool       `json:"completed"`
	Tag         string     `json:"tag"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ClassInfo describes a recurring class over a semester. Times are
// local clock values ("HH:MM"); dates are calendar dates ("YYYY-MM-DD")
// with no timezone attached.
type ClassInfo struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Instructor    string    `json:"instructor"`
	Location      string    `json:"location"`
	Days          []Weekday `json:"days"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	SemesterStart string    `json:"semester_start"`
	SemesterEnd   string    `json:"semester_end"`
}

// ExtractedEvent is one structured record returned by the syllabus
// extraction service.
type ExtractedEvent struct {
	EventName string `json:"eventName"`
	Date      string `json:"date"` // "YYYY-MM-DD"
	Time      string `json:"time"` // "HH:MM"
	EventType string `json:"eventType"`
}

// User is the identity consumed by the rest of the application. Only
// the authenticated flag, name and email matter to core components.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
