package services

import (
	"context"

	"go.uber.org/zap"
)

type AccountSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
}

type SignupResult struct {
	AccessToken string         `json:"access_token"`
	Admin       AccountSummary `json:"admin"`
}

type LoginResult struct {
	AccessToken string         `json:"access_token"`
	User        AccountSummary `json:"user"`
}

type TokenResult struct {
	AccessToken string `json:"access_token"`
}

type MessageResult struct {
	Message string `json:"message"`
}

type Credentials struct {
	Email    string
	Password string
	Role     string
}

type AuthService struct {
	admins    *AdminService
	users     *UserService
	passwords *PasswordService
	tokens    *TokenService
	log       *zap.Logger
}

func NewAuthService(admins *AdminService, users *UserService, passwords *PasswordService, tokens *TokenService, log *zap.Logger) *AuthService {
	return &AuthService{
		admins:    admins,
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		log:       log.Named("AuthService"),
	}
}

// Signup registers a new admin and returns a token for it.
func (s *AuthService) Signup(ctx context.Context, in AccountInput) (*SignupResult, error) {
	existing, err := s.admins.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, Conflict("Admin with this email already exists")
	}

	admin, err := s.admins.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(Principal{ID: admin.ID, Email: admin.Email, Role: RoleAdmin})
	if err != nil {
		return nil, err
	}

	s.log.Info("admin signed up", zap.Uint("id", admin.ID), zap.String("email", admin.Email))
	return &SignupResult{
		AccessToken: token,
		Admin: AccountSummary{
			ID:        admin.ID,
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Email:     admin.Email,
		},
	}, nil
}

// validate looks the account up in the store matching role and checks the
// password. It returns nil when the credentials do not match.
func (s *AuthService) validate(ctx context.Context, c Credentials) (*AccountSummary, error) {
	switch c.Role {
	case RoleAdmin:
		admin, err := s.admins.FindByEmail(ctx, c.Email)
		if err != nil {
			return nil, err
		}
		if admin == nil || !s.passwords.Compare(c.Password, admin.Password) {
			return nil, nil
		}
		return &AccountSummary{ID: admin.ID, FirstName: admin.FirstName, LastName: admin.LastName, Email: admin.Email}, nil
	case RoleUser:
		user, err := s.users.FindByEmail(ctx, c.Email)
		if err != nil {
			return nil, err
		}
		if user == nil || !s.passwords.Compare(c.Password, user.Password) {
			return nil, nil
		}
		return &AccountSummary{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName, Email: user.Email}, nil
	}
	return nil, nil
}

func (s *AuthService) Login(ctx context.Context, c Credentials) (*LoginResult, error) {
	account, err := s.validate(ctx, c)
	if err != nil {
		return nil, err
	}
	if account == nil {
		s.log.Warn("login rejected", zap.String("email", c.Email), zap.String("role", c.Role))
		return nil, Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Issue(Principal{ID: account.ID, Email: account.Email, Role: c.Role})
	if err != nil {
		return nil, err
	}

	account.Role = c.Role
	s.log.Info("login", zap.Uint("id", account.ID), zap.String("role", c.Role))
	return &LoginResult{AccessToken: token, User: *account}, nil
}

// LoginUser authenticates against the user store only.
func (s *AuthService) LoginUser(ctx context.Context, c Credentials) (*TokenResult, error) {
	c.Role = RoleUser
	res, err := s.Login(ctx, c)
	if err != nil {
		return nil, err
	}
	return &TokenResult{AccessToken: res.AccessToken}, nil
}

// Logout only records the event; issued tokens stay valid until they expire.
func (s *AuthService) Logout(p Principal) MessageResult {
	s.log.Info("admin logged out", zap.Uint("id", p.ID), zap.String("email", p.Email))
	return MessageResult{Message: "Logout successful"}
}

func (s *AuthService) LogoutUser(p Principal) MessageResult {
	s.log.Info("user logged out", zap.Uint("id", p.ID), zap.String("email", p.Email))
	return MessageResult{Message: "Logout successful"}
}
