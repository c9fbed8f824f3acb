package email

import "github.com/SH20RAJ/sketchflow-sub001/internal/config"

var emailService = NewService(func() Config {
	env := config.GetEnv()

	return Config{
		Host:     env.SmtpHost,
		Port:     env.SmtpPort,
		Username: env.SmtpUsername,
		Password: env.SmtpPassword,
		From:     env.SmtpFrom,
		FromName: env.SmtpFromName,
		AppURL:   env.AppURL,
	}
})

func GetEmailService() *Service {
	return emailService
}
