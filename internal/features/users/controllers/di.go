package users_controllers

import (
	users_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/services"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"

	"golang.org/x/time/rate"
)

var userController = &UserController{
	userService:   users_services.GetUserService(),
	signinLimiter: rate.NewLimiter(rate.Limit(3), 3), // 3 RPS with burst of 3
	logger:        logger.GetLogger(),
}

func GetUserController() *UserController {
	return userController
}

func NewUserController(userService *users_services.UserService, signinLimiter *rate.Limiter) *UserController {
	return &UserController{
		userService:   userService,
		signinLimiter: signinLimiter,
		logger:        logger.GetLogger(),
	}
}
