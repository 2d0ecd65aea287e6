package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	CourseHandler       *CourseHandler
	ContentHandler      *ContentHandler
	ChatHandler         *ChatHandler
	NotificationHandler *NotificationHandler
}
