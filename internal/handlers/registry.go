package handlers

// AppHandlers bundles all HTTP handlers for route registration.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	ProfileHandler  *ProfileHandler
	ReviewHandler   *ReviewHandler
	JobHandler      *JobHandler
	FavoriteHandler *FavoriteHandler
	AdminHandler    *AdminHandler
	UploadHandler   *UploadHandler
	FileHandler     *FileHandler
}
