package course

import "gorm.io/gorm"

// Quiz is a named, ordered set of questions scoped to a course, optionally
// to a lesson and/or a turma. A turma-scoped quiz is visible only to that
// turma's enrollees; a quiz without turma scope is visible to every student
// enrolled in the course.
type Quiz struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	LessonID    *uint  `json:"lesson_id" gorm:"index"`
	TurmaID     *uint  `json:"turma_id" gorm:"index"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

type QuizQuestion struct {
	gorm.Model
	QuizID        uint   `json:"quiz_id" gorm:"index;not null"`
	Question      string `json:"question" gorm:"type:text;not null"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"-" gorm:"size:1;not null"` // A, B, C or D; never serialized to students
	OrderIndex    int    `json:"order_index" gorm:"default:0"`
	IsDeleted     bool   `gorm:"default:false"`
}

// QuizResponse records one student's answer to one question within an
// attempt.
type QuizResponse struct {
	gorm.Model
	QuizID         uint   `json:"quiz_id" gorm:"index;not null"`
	QuestionID     uint   `json:"question_id" gorm:"index;not null"`
	UserID         uint   `json:"user_id" gorm:"index;not null"`
	SelectedOption string `json:"selected_option" gorm:"size:1"`
	IsCorrect      bool   `json:"is_correct" gorm:"default:false"`
	AttemptNumber  int    `json:"attempt_number" gorm:"default:1"`
	IsDeleted      bool   `gorm:"default:false"`
}
