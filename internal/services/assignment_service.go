package services

import (
	"lms_backend/internal/logger"
	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/services/dto"
	"lms_backend/pkg/apperrors"
)

type AssignmentService interface {
	CreateAssignment(instructorID string, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	ListByCourse(courseID string) ([]*dto.AssignmentResponse, error)

	// SubmitAssignment stores the student's work and notifies the course
	// instructor directly.
	SubmitAssignment(assignmentID, studentID string, req *dto.SubmitAssignmentRequest) (*dto.SubmissionResponse, error)
	ListSubmissions(assignmentID, instructorID string) ([]*dto.SubmissionResponse, error)
	ListStudentSubmissions(studentID string) ([]*dto.SubmissionResponse, error)
	// GradeSubmission records the grade and notifies the student.
	GradeSubmission(submissionID, instructorID string, req *dto.GradeSubmissionRequest) error
}

type assignmentService struct {
	assignmentRepo      repositories.AssignmentRepository
	courseRepo          repositories.CourseRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
}

func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepository,
	courseRepo repositories.CourseRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
) AssignmentService {
	return &assignmentService{
		assignmentRepo:      assignmentRepo,
		courseRepo:          courseRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *assignmentService) CreateAssignment(instructorID string, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	course, err := s.courseRepo.FindByID(req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, apperrors.NewForbiddenError("You do not teach this course")
	}

	assignment := &models.Assignment{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, err
	}

	event := AssignmentCreated{AssignmentID: assignment.ID, AssignmentTitle: assignment.Title}
	if err := s.notificationService.NotifyEnrolledStudents(course.ID, event); err != nil {
		logger.Error("assignment notification fan-out failed", "assignment_id", assignment.ID, "error", err)
	}

	return assignmentResponse(assignment), nil
}

func (s *assignmentService) ListByCourse(courseID string) ([]*dto.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		responses = append(responses, assignmentResponse(&assignments[i]))
	}
	return responses, nil
}

func (s *assignmentService) SubmitAssignment(assignmentID, studentID string, req *dto.SubmitAssignmentRequest) (*dto.SubmissionResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByID(assignment.CourseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.courseRepo.IsEnrolled(studentID, course.ID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperrors.NewForbiddenError("You are not enrolled in this course")
	}

	if req.FilePath == "" && req.AnswerText == "" {
		return nil, apperrors.NewBadRequestError("Submission must include a file or answer text")
	}

	submission := &models.AssignmentSubmission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FilePath:     req.FilePath,
		AnswerText:   req.AnswerText,
	}
	if err := s.assignmentRepo.CreateSubmission(submission); err != nil {
		return nil, err
	}

	studentName := "A student"
	if student, err := s.userRepo.FindByID(studentID); err == nil {
		studentName = student.FullName
		if studentName == "" {
			studentName = student.Username
		}
	}

	event := SubmissionReceived{
		SubmissionID:    submission.ID,
		AssignmentTitle: assignment.Title,
		StudentName:     studentName,
	}
	if err := s.notificationService.NotifyUser(course.InstructorID, course.ID, event); err != nil {
		logger.Error("submission notification failed", "submission_id", submission.ID, "error", err)
	}

	return submissionResponse(submission), nil
}

func (s *assignmentService) ListSubmissions(assignmentID, instructorID string) ([]*dto.SubmissionResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByID(assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, apperrors.NewForbiddenError("You do not teach this course")
	}

	submissions, err := s.assignmentRepo.ListSubmissions(assignmentID)
	if err != nil {
		return nil, err
	}
	return submissionResponses(submissions), nil
}

func (s *assignmentService) ListStudentSubmissions(studentID string) ([]*dto.SubmissionResponse, error) {
	submissions, err := s.assignmentRepo.ListSubmissionsByStudent(studentID)
	if err != nil {
		return nil, err
	}
	return submissionResponses(submissions), nil
}

func (s *assignmentService) GradeSubmission(submissionID, instructorID string, req *dto.GradeSubmissionRequest) error {
	submission, err := s.assignmentRepo.FindSubmissionByID(submissionID)
	if err != nil {
		return err
	}

	assignment, err := s.assignmentRepo.FindByID(submission.AssignmentID)
	if err != nil {
		return err
	}

	course, err := s.courseRepo.FindByID(assignment.CourseID)
	if err != nil {
		return err
	}
	if course.InstructorID != instructorID {
		return apperrors.NewForbiddenError("You do not teach this course")
	}

	if err := s.assignmentRepo.GradeSubmission(submissionID, req.Grade); err != nil {
		return err
	}

	event := SubmissionGraded{SubmissionID: submission.ID, AssignmentTitle: assignment.Title, Grade: req.Grade}
	if err := s.notificationService.NotifyUser(submission.StudentID, course.ID, event); err != nil {
		logger.Error("grade notification failed", "submission_id", submission.ID, "error", err)
	}
	return nil
}

func assignmentResponse(assignment *models.Assignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:          assignment.ID,
		CourseID:    assignment.CourseID,
		Title:       assignment.Title,
		Description: assignment.Description,
		Deadline:    assignment.Deadline,
	}
}

func submissionResponse(submission *models.AssignmentSubmission) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:           submission.ID,
		AssignmentID: submission.AssignmentID,
		StudentID:    submission.StudentID,
		FilePath:     submission.FilePath,
		AnswerText:   submission.AnswerText,
		SubmittedAt:  submission.SubmittedAt,
		Grade:        submission.Grade,
	}
	if submission.Student != nil {
		resp.Student = submission.Student.FullName
	}
	return resp
}

func submissionResponses(submissions []models.AssignmentSubmission) []*dto.SubmissionResponse {
	responses := make([]*dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		responses = append(responses, submissionResponse(&submissions[i]))
	}
	return responses
}
