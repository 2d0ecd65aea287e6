package services

import (
	"strings"

	"lms_backend/internal/logger"
	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/services/dto"
	"lms_backend/pkg/apperrors"
)

type QuizService interface {
	CreateQuiz(instructorID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	// DeleteQuiz removes the quiz with its questions, submissions and
	// the notifications it fanned out.
	DeleteQuiz(quizID, instructorID string) error
	ListByCourse(courseID string) ([]*dto.QuizResponse, error)

	// GetQuizForTaking returns the questions without correct options.
	GetQuizForTaking(quizID, studentID string) (*dto.TakeQuizResponse, error)
	SubmitQuiz(quizID, studentID string, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error)
	ListResults(quizID, instructorID string) ([]*dto.QuizResultResponse, error)
}

type quizService struct {
	quizRepo            repositories.QuizRepository
	courseRepo          repositories.CourseRepository
	notificationService NotificationService
}

func NewQuizService(
	quizRepo repositories.QuizRepository,
	courseRepo repositories.CourseRepository,
	notificationService NotificationService,
) QuizService {
	return &quizService{
		quizRepo:            quizRepo,
		courseRepo:          courseRepo,
		notificationService: notificationService,
	}
}

func (s *quizService) CreateQuiz(instructorID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	course, err := s.courseRepo.FindByID(req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, apperrors.NewForbiddenError("You do not teach this course")
	}

	quiz := &models.Quiz{
		CourseID:         req.CourseID,
		Title:            req.Title,
		TimeLimitMinutes: req.TimeLimitMinutes,
		Questions:        make([]models.QuizQuestion, 0, len(req.Questions)),
	}
	for _, q := range req.Questions {
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			Text:          q.Text,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectOption: strings.ToUpper(q.CorrectOption),
		})
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}

	event := QuizCreated{QuizID: quiz.ID, QuizTitle: quiz.Title}
	if err := s.notificationService.NotifyEnrolledStudents(course.ID, event); err != nil {
		logger.Error("quiz notification fan-out failed", "quiz_id", quiz.ID, "error", err)
	}

	return quizResponse(quiz), nil
}

func (s *quizService) DeleteQuiz(quizID, instructorID string) error {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return err
	}

	course, err := s.courseRepo.FindByID(quiz.CourseID)
	if err != nil {
		return err
	}
	if course.InstructorID != instructorID {
		return apperrors.NewForbiddenError("You do not teach this course")
	}

	return s.quizRepo.DeleteCascade(quizID)
}

func (s *quizService) ListByCourse(courseID string) ([]*dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		responses = append(responses, quizResponse(&quizzes[i]))
	}
	return responses, nil
}

func (s *quizService) GetQuizForTaking(quizID, studentID string) (*dto.TakeQuizResponse, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}

	if err := s.requireEnrollment(quiz.CourseID, studentID); err != nil {
		return nil, err
	}

	resp := &dto.TakeQuizResponse{
		QuizResponse: *quizResponse(quiz),
		Questions:    make([]dto.QuizQuestionResponse, 0, len(quiz.Questions)),
	}
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		resp.Questions = append(resp.Questions, dto.QuizQuestionResponse{
			ID:      q.ID,
			Text:    q.Text,
			OptionA: q.OptionA,
			OptionB: q.OptionB,
			OptionC: q.OptionC,
			OptionD: q.OptionD,
		})
	}
	return resp, nil
}

// countCorrectAnswers matches submitted answers against the stored
// correct options, keyed by question ID. Option letters compare
// case-insensitively; unanswered questions count as wrong.
func countCorrectAnswers(questions []models.QuizQuestion, answers map[string]string) int {
	correct := 0
	for i := range questions {
		q := &questions[i]
		if answer, ok := answers[q.ID]; ok && strings.EqualFold(answer, q.CorrectOption) {
			correct++
		}
	}
	return correct
}

func (s *quizService) SubmitQuiz(quizID, studentID string, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}

	if err := s.requireEnrollment(quiz.CourseID, studentID); err != nil {
		return nil, err
	}

	total := len(quiz.Questions)
	if total == 0 {
		return nil, apperrors.NewBadRequestError("Quiz has no questions")
	}

	correct := countCorrectAnswers(quiz.Questions, req.Answers)
	score := float64(correct) / float64(total) * 100

	submission := &models.QuizSubmission{
		QuizID:    quizID,
		StudentID: studentID,
		Score:     score,
		Total:     total,
	}
	if err := s.quizRepo.CreateSubmission(submission); err != nil {
		return nil, err
	}

	return &dto.QuizResultResponse{
		QuizID:  quizID,
		Score:   score,
		Total:   total,
		Correct: correct,
	}, nil
}

func (s *quizService) ListResults(quizID, instructorID string) ([]*dto.QuizResultResponse, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByID(quiz.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, apperrors.NewForbiddenError("You do not teach this course")
	}

	submissions, err := s.quizRepo.ListSubmissions(quizID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.QuizResultResponse, 0, len(submissions))
	for i := range submissions {
		sub := &submissions[i]
		responses = append(responses, &dto.QuizResultResponse{
			QuizID: sub.QuizID,
			Score:  sub.Score,
			Total:  sub.Total,
		})
	}
	return responses, nil
}

func (s *quizService) requireEnrollment(courseID, studentID string) error {
	enrolled, err := s.courseRepo.IsEnrolled(studentID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return apperrors.NewForbiddenError("You are not enrolled in this course")
	}
	return nil
}

func quizResponse(quiz *models.Quiz) *dto.QuizResponse {
	return &dto.QuizResponse{
		ID:               quiz.ID,
		CourseID:         quiz.CourseID,
		Title:            quiz.Title,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		QuestionCount:    len(quiz.Questions),
	}
}
