package auth

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/hr-management/internal"
)

// Repository reads operator accounts from the credential store.
type Repository interface {
	GetByEmail(email string) (*Operator, error)
}

// Service verifies credentials and issues session tokens.
type Service struct {
	repo           Repository
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

func NewService(repo Repository, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

// Login authenticates an operator and returns a signed token. An unknown
// email and a wrong password fail identically so the response never reveals
// whether the email exists.
func (s *Service) Login(dto LoginDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", err
	}

	operator, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: unknown email", "email", dto.Email)
		return "", internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: password mismatch", "operator_id", operator.ID)
		return "", internal.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.Generate(operator)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "operator_id", operator.ID)
		return "", internal.NewInternalError(err)
	}

	s.logger.Info("operator logged in", "operator_id", operator.ID)
	return token, nil
}

// ValidateToken validates a session token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.Validate(tokenString)
}
