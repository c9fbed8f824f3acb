package users_services

import (
	"github.com/SH20RAJ/sketchflow-sub001/internal/config"
	users_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/repositories"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"
)

var userRepository = &users_repositories.UserRepository{}

var userService = &UserService{
	userRepository: userRepository,
	secretKey:      func() string { return config.GetEnv().JwtSecret },
	logger:         logger.GetLogger(),
}

func GetUserService() *UserService {
	return userService
}

func GetUserRepository() *users_repositories.UserRepository {
	return userRepository
}
