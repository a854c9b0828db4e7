package services

// ServiceContainer bundles all application services for wiring.
type ServiceContainer struct {
	AuthService     AuthService
	UserService     UserService
	ProfileService  ProfileService
	ReviewService   ReviewService
	JobService      JobService
	FavoriteService FavoriteService
	AdminService    AdminService
	UploadService   UploadService
}
