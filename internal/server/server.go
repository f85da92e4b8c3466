package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"rokto/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// UserStore is the user collection as the handlers need it. Satisfied by
// store.UserRepository.
type UserStore interface {
	User(ctx context.Context, userID string) (*types.User, error)
	UserByEmail(ctx context.Context, email string) (*types.User, error)
	Users(ctx context.Context, status types.UserStatus) ([]*types.User, error)
	SearchDonors(ctx context.Context, params types.DonorSearchParams) ([]*types.User, error)
	Create(ctx context.Context, user *types.User) error
	UpdateProfile(ctx context.Context, userID string, update types.ProfileUpdate) error
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error
	SetRole(ctx context.Context, userID string, role types.Role) error
	SetStatus(ctx context.Context, userID string, status types.UserStatus) error
}

// RequestStore is the donation-request collection. Satisfied by
// store.DonationRequestRepository.
type RequestStore interface {
	Request(ctx context.Context, requestID string) (*types.DonationRequest, error)
	Requests(ctx context.Context, filter types.RequestFilter) ([]*types.DonationRequest, error)
	Create(ctx context.Context, request *types.DonationRequest) error
	Donate(ctx context.Context, requestID string, donor *types.User) error
	SetStatus(ctx context.Context, requestID string, status types.DonationStatus) error
	Delete(ctx context.Context, requestID string) error
}

type FundStore interface {
	Create(ctx context.Context, fund *types.Fund) error
	Funds(ctx context.Context) ([]*types.Fund, error)
}

type LocationStore interface {
	Districts(ctx context.Context) ([]*types.District, error)
	Upazilas(ctx context.Context) ([]*types.Upazila, error)
}

type PaymentClient interface {
	CreateIntent(ctx context.Context, amount float64) (string, error)
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	users     UserStore
	requests  RequestStore
	funds     FundStore
	locations LocationStore
	payments  PaymentClient
	s3Client  *s3.Client

	cookie *securecookie.SecureCookie
	jwtKey []byte

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	users UserStore,
	requests RequestStore,
	funds FundStore,
	locations LocationStore,
	payments PaymentClient,
	s3Client *s3.Client,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger: logger,
		config: config,

		users:     users,
		requests:  requests,
		funds:     funds,
		locations: locations,
		payments:  payments,
		s3Client:  s3Client,

		cookie: securecookie.New(hashKey, blockKey),
		jwtKey: []byte(config.JWTSecret),

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/auth/register", s.handleRegister, http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout, http.MethodPost)

	// Public reads: listings, request detail, donor search, reference data.
	r.HandleFunc("/donation-requests", s.handleListRequests, http.MethodGet)
	r.HandleFunc("/donation-requests/:id", s.handleGetRequest, http.MethodGet)
	r.HandleFunc("/users/search", s.handleSearchDonors, http.MethodGet)
	r.HandleFunc("/location/districts", s.handleDistricts, http.MethodGet)
	r.HandleFunc("/location/upazilas", s.handleUpazilas, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/auth/me", s.handleMe, http.MethodGet)

		r.HandleFunc("/donation-requests", s.handleCreateRequest, http.MethodPost)
		r.HandleFunc("/donation-requests/:id/donate", s.handleDonate, http.MethodPut)
		r.HandleFunc("/donation-requests/:id/status", s.handleSetRequestStatus, http.MethodPut)
		r.HandleFunc("/donation-requests/:id", s.handleDeleteRequest, http.MethodDelete)

		r.HandleFunc("/users/me", s.handleUpdateProfile, http.MethodPut)
		r.HandleFunc("/users/me/avatar", s.handleUploadAvatar, http.MethodPost)

		r.HandleFunc("/payment/create-payment-intent", s.handleCreatePaymentIntent, http.MethodPost)
		r.HandleFunc("/payment/funds", s.handleRecordFund, http.MethodPost)
		r.HandleFunc("/payment/funds", s.handleListFunds, http.MethodGet)

		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireVolunteer)

			r.HandleFunc("/users", s.handleListUsers, http.MethodGet)

			r.Group(func(r *flow.Mux) {
				r.Use(s.RequireAdmin)

				r.HandleFunc("/users/:id/role", s.handleSetUserRole, http.MethodPut)
				r.HandleFunc("/users/:id/status", s.handleSetUserStatus, http.MethodPut)
			})
		})
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
