package services

import (
	"database/sql"
	"errors"
	"strings"

	"campusmart/internal/domain"
	"campusmart/internal/repos"
	"campusmart/internal/validate"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrBadCreds      = errors.New("invalid email or password")
	ErrInvalidEmail  = errors.New("please use a valid college email address (.edu or .ac.in)")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

type AuthService struct {
	Users    *repos.UserRepo
	Colleges *repos.CollegeRepo
}

type Registration struct {
	Username    string
	Email       string
	Password    string
	Phone       string
	CollegeName string // optional; derived from the email domain when empty
}

// Register creates a user on a valid campus email. The college is looked up
// by email domain and auto-created on first sight. Nothing is written when
// any validation fails.
func (s *AuthService) Register(in Registration) (*domain.User, error) {
	email, ok := validate.CollegeEmail(in.Email)
	if !ok {
		return nil, ErrInvalidEmail
	}
	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if taken, err := s.Users.UsernameTaken(in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}

	collegeID, err := s.ensureCollege(validate.EmailDomain(email), in.CollegeName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}
	id, err := s.Users.Create(in.Username, email, string(hash), collegeID, in.Phone)
	if err != nil {
		return nil, err
	}
	return s.Users.ByID(id)
}

func (s *AuthService) ensureCollege(emailDomain, name string) (int64, error) {
	c, err := s.Colleges.ByDomain(emailDomain)
	if err == nil {
		return c.ID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	if name == "" {
		name = collegeNameFromDomain(emailDomain)
	}
	return s.Colleges.Create(name, emailDomain)
}

// collegeNameFromDomain derives a display name from the first domain label,
// e.g. "stanford.edu" -> "Stanford".
func collegeNameFromDomain(emailDomain string) string {
	label, _, _ := strings.Cut(emailDomain, ".")
	return cases.Title(language.English).String(label)
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

type ProfileUpdate struct {
	Username     string
	Email        string
	Phone        string
	ProfileImage string
}

// UpdateProfile edits the caller's account. An email change is re-validated
// against the college pattern and uniqueness; the college itself never
// changes here.
func (s *AuthService) UpdateProfile(u *domain.User, in ProfileUpdate) (*domain.User, error) {
	email := u.Email
	if in.Email != "" && !strings.EqualFold(in.Email, u.Email) {
		var ok bool
		email, ok = validate.CollegeEmail(in.Email)
		if !ok {
			return nil, ErrInvalidEmail
		}
		if _, err := s.Users.ByEmail(email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}
	username := u.Username
	if in.Username != "" {
		username = in.Username
	}
	phone := u.Phone
	if in.Phone != "" {
		phone = in.Phone
	}
	image := u.ProfileImage
	if in.ProfileImage != "" {
		image = in.ProfileImage
	}
	if err := s.Users.UpdateProfile(u.ID, username, email, phone, image); err != nil {
		return nil, err
	}
	return s.Users.ByID(u.ID)
}
