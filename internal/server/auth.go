package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"rokto/internal"
	"rokto/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Password        string           `json:"password"`
	ConfirmPassword string           `json:"confirm_password"`
	BloodGroup      types.BloodGroup `json:"bloodGroup"`
	District        string           `json:"district"`
	Upazila         string           `json:"upazila"`
	Avatar          string           `json:"avatar"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	// The confirm-password check runs before anything else touches the store.
	if payload.Password != payload.ConfirmPassword {
		s.respondError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	fieldErrors := validateRegisterInput(payload)
	if len(fieldErrors) > 0 {
		s.logger.WithField("field_errors", fieldErrors).Info("validation errors during registration")
		s.respondFieldErrors(w, "Please fix the highlighted fields.", fieldErrors)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &types.User{
		Name:         strings.TrimSpace(payload.Name),
		Email:        strings.TrimSpace(payload.Email),
		PasswordHash: string(hash),
		BloodGroup:   payload.BloodGroup,
		District:     payload.District,
		Upazila:      payload.Upazila,
		Avatar:       payload.Avatar,
		Role:         types.RoleDonor,
		Status:       types.UserStatusActive,
	}

	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, types.ErrEmailTaken) {
			s.respondStoreError(w, err)
			return
		}
		s.logger.WithError(err).Error("failed to create user")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := s.setSessionCookie(w, user); err != nil {
		s.logger.WithError(err).Error("failed to issue session after registration")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusCreated, user)
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	user, err := s.users.UserByEmail(r.Context(), strings.TrimSpace(payload.Email))
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			s.respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.logger.WithError(err).Error("failed to fetch user for login")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := s.setSessionCookie(w, user); err != nil {
		s.logger.WithError(err).Error("failed to issue session")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.logger.WithField("user_id", user.ID).Info("user logged in")

	s.respondJSON(w, http.StatusOK, user)
}

// handleLogout clears the session cookie. There is no server-side session
// state to invalidate; the JWT simply ages out.
func (s *Service) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	s.respondJSON(w, http.StatusOK, user)
}

func (s *Service) setSessionCookie(w http.ResponseWriter, user *types.User) error {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Subject(user.ID).
		Claim("email", user.Email).
		IssuedAt(now).
		Expiration(now.Add(time.Duration(s.config.SessionMaxAgeSec) * time.Second)).
		Build()
	if err != nil {
		return err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), s.jwtKey))
	if err != nil {
		return err
	}

	encryptedToken, err := s.cookie.Encode(internal.COOKIE_ACCESS_TOKEN_NAME, string(signed))
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
		Value:    encryptedToken,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.SessionMaxAgeSec,
		Path:     "/",
	})

	return nil
}

func validateRegisterInput(payload registerRequest) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(payload.Name) == "" {
		errs["name"] = "Name is required."
	}

	email := strings.TrimSpace(payload.Email)
	if email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "Enter a valid email address."
	}

	if len(payload.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters."
	}

	if !payload.BloodGroup.Valid() {
		errs["bloodGroup"] = "Blood group is required."
	}

	if payload.District == "" {
		errs["district"] = "District is required."
	}

	if payload.Upazila == "" {
		errs["upazila"] = "Upazila is required."
	}

	return errs
}
