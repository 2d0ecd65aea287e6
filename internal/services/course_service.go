package services

import (
	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/services/dto"
	"lms_backend/pkg/apperrors"
)

type CourseService interface {
	CreateCourse(req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	EnrollStudent(courseID, studentID string) error
	ListVisibleCourses() ([]*dto.CourseResponse, error)
	ListInstructorCourses(instructorID string) ([]*dto.CourseResponse, error)
	ListEnrolledCourses(studentID string) ([]*dto.CourseResponse, error)
	// GetCourseDetail returns the course with its content tabs. Access
	// requires enrollment, teaching the course or the admin role.
	GetCourseDetail(courseID, userID, role string) (*dto.CourseDetailResponse, error)
}

type courseService struct {
	courseRepo      repositories.CourseRepository
	userRepo        repositories.UserRepository
	activityService ActivityService
}

func NewCourseService(
	courseRepo repositories.CourseRepository,
	userRepo repositories.UserRepository,
	activityService ActivityService,
) CourseService {
	return &courseService{
		courseRepo:      courseRepo,
		userRepo:        userRepo,
		activityService: activityService,
	}
}

func (s *courseService) CreateCourse(req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	instructor, err := s.userRepo.FindByID(req.InstructorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewBadRequestError("Instructor does not exist")
		}
		return nil, err
	}
	if instructor.Role != models.UserRoleInstructor {
		return nil, apperrors.NewBadRequestError("Assigned user is not an instructor")
	}

	course := &models.Course{
		FullName:     req.FullName,
		ShortName:    req.ShortName,
		Category:     req.Category,
		Summary:      req.Summary,
		IsVisible:    req.IsVisible,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		InstructorID: req.InstructorID,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}

	return courseResponse(course), nil
}

func (s *courseService) EnrollStudent(courseID, studentID string) error {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		return err
	}

	student, err := s.userRepo.FindByID(studentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewBadRequestError("Student does not exist")
		}
		return err
	}
	if student.Role != models.UserRoleStudent {
		return apperrors.NewBadRequestError("Only students can be enrolled")
	}

	err = s.courseRepo.Enroll(&models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyEnrolled) {
			return apperrors.New(apperrors.CodeConflict, "course", "Student is already enrolled", 409)
		}
		return err
	}
	return nil
}

func (s *courseService) ListVisibleCourses() ([]*dto.CourseResponse, error) {
	courses, err := s.courseRepo.ListVisible()
	if err != nil {
		return nil, err
	}
	return courseResponses(courses), nil
}

func (s *courseService) ListInstructorCourses(instructorID string) ([]*dto.CourseResponse, error) {
	courses, err := s.courseRepo.ListByInstructor(instructorID)
	if err != nil {
		return nil, err
	}
	return courseResponses(courses), nil
}

func (s *courseService) ListEnrolledCourses(studentID string) ([]*dto.CourseResponse, error) {
	courses, err := s.courseRepo.ListEnrolled(studentID)
	if err != nil {
		return nil, err
	}
	return courseResponses(courses), nil
}

func (s *courseService) GetCourseDetail(courseID, userID, role string) (*dto.CourseDetailResponse, error) {
	course, err := s.courseRepo.FindByIDWithContent(courseID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeCourseAccess(course, userID, role); err != nil {
		return nil, err
	}

	detail := &dto.CourseDetailResponse{
		CourseResponse: *courseResponse(course),
		Materials:      make([]dto.MaterialResponse, 0, len(course.Materials)),
		Assignments:    make([]dto.AssignmentResponse, 0, len(course.Assignments)),
		Quizzes:        make([]dto.QuizResponse, 0, len(course.Quizzes)),
		LiveClasses:    make([]dto.LiveClassResponse, 0, len(course.LiveClasses)),
	}
	for i := range course.Materials {
		detail.Materials = append(detail.Materials, *materialResponse(&course.Materials[i]))
	}
	for i := range course.Assignments {
		detail.Assignments = append(detail.Assignments, *assignmentResponse(&course.Assignments[i]))
	}
	for i := range course.Quizzes {
		detail.Quizzes = append(detail.Quizzes, *quizResponse(&course.Quizzes[i]))
	}
	for i := range course.LiveClasses {
		detail.LiveClasses = append(detail.LiveClasses, *liveClassResponse(&course.LiveClasses[i]))
	}

	s.activityService.Record(userID, "course_view", course.ShortName)

	return detail, nil
}

func (s *courseService) authorizeCourseAccess(course *models.Course, userID, role string) error {
	switch models.UserRole(role) {
	case models.UserRoleAdmin:
		return nil
	case models.UserRoleInstructor:
		if course.InstructorID == userID {
			return nil
		}
		return apperrors.NewForbiddenError("You do not teach this course")
	default:
		enrolled, err := s.courseRepo.IsEnrolled(userID, course.ID)
		if err != nil {
			return err
		}
		if !enrolled {
			return apperrors.NewForbiddenError("You are not enrolled in this course")
		}
		return nil
	}
}

func courseResponse(course *models.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:           course.ID,
		FullName:     course.FullName,
		ShortName:    course.ShortName,
		Category:     course.Category,
		Summary:      course.Summary,
		IsVisible:    course.IsVisible,
		StartDate:    course.StartDate,
		EndDate:      course.EndDate,
		InstructorID: course.InstructorID,
	}
	if course.Instructor != nil {
		resp.Instructor = course.Instructor.FullName
	}
	return resp
}

func courseResponses(courses []models.Course) []*dto.CourseResponse {
	responses := make([]*dto.CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, courseResponse(&courses[i]))
	}
	return responses
}
