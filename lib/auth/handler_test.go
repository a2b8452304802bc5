package auth

import (
	"testing"
	"time"

	"ats-backend/config"
	"ats-backend/lib/smtp"
	"ats-backend/models"
	authapimodels "ats-backend/models/api/auth"
	dbmodels "ats-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeAuthStore struct {
	codes []dbmodels.OtpCode
}

func (f *fakeAuthStore) CreateOtp(rec dbmodels.OtpCode) (string, error) {
	rec.ID = "otp-1"
	f.codes = append(f.codes, rec)
	return rec.ID, nil
}
func (f *fakeAuthStore) GetActiveOtp(email string, now time.Time) (*dbmodels.OtpCode, error) {
	for idx := len(f.codes) - 1; idx >= 0; idx-- {
		rec := f.codes[idx]
		if rec.Email == email && rec.DateExpires.After(now) && rec.DateUsed == nil {
			return &rec, nil
		}
	}
	return nil, nil
}
func (f *fakeAuthStore) MarkOtpUsed(id string, now time.Time) error { return nil }
func (f *fakeAuthStore) InvalidateOtps(email string, now time.Time) error {
	return nil
}
func (f *fakeAuthStore) GetSuperAdminByEmail(email string) (*dbmodels.SuperAdminUser, error) {
	return nil, nil
}
func (f *fakeAuthStore) UpdateSuperAdminLastLogin(id string, now time.Time) error { return nil }

type fakeUsersStore struct {
	users map[string]*dbmodels.User
}

func (f *fakeUsersStore) Create(rec dbmodels.User) (string, error) { return "", nil }
func (f *fakeUsersStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeUsersStore) Delete(companyID, id string) error { return nil }
func (f *fakeUsersStore) GetByID(id string) (*dbmodels.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}
func (f *fakeUsersStore) GetByEmail(email string) (*dbmodels.User, error) {
	return f.users[email], nil
}
func (f *fakeUsersStore) List(companyID string) ([]dbmodels.User, error) { return nil, nil }
func (f *fakeUsersStore) ListByRoles(companyID string, roles []string) ([]dbmodels.User, error) {
	return nil, nil
}

type fakeCompanyStore struct {
	inactive bool
}

func (f *fakeCompanyStore) Create(rec dbmodels.Company) (string, error) { return "", nil }
func (f *fakeCompanyStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeCompanyStore) GetByID(id string) (*dbmodels.Company, error) {
	return &dbmodels.Company{Name: "Acme", IsActive: !f.inactive}, nil
}
func (f *fakeCompanyStore) List() ([]dbmodels.Company, error) { return nil, nil }

type fakeSmtp struct {
	sentTo []string
}

func (f *fakeSmtp) SendEMail(from, to, message, subject string) error {
	f.sentTo = append(f.sentTo, to)
	return nil
}
func (f *fakeSmtp) SendHTMLEMail(from, to, htmlBody, subject string) error {
	f.sentTo = append(f.sentTo, to)
	return nil
}

func newTestHandler(companyInactive bool) (impl, *fakeAuthStore, *fakeSmtp) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 3600
	config.Conf.Auth.JWTRefreshExpireInSec = 7200
	config.Conf.Auth.OtpTTLInSec = 600
	config.Conf.Smtp.EmailFrom = "no-reply@acme.example"

	mailer := &fakeSmtp{}
	smtp.Instance = mailer
	active := &dbmodels.User{
		Email:  "rita@acme.example",
		Status: models.UserStatusActive,
		Role:   models.CompanyRecruiterRole,
	}
	active.ID = "user-1"
	active.CompanyID = "company-1"
	suspended := &dbmodels.User{
		Email:  "gone@acme.example",
		Status: models.UserStatusSuspended,
	}
	store := &fakeAuthStore{}
	handler := impl{
		store: store,
		userStore: &fakeUsersStore{users: map[string]*dbmodels.User{
			"rita@acme.example": active,
			"gone@acme.example": suspended,
		}},
		companyStore: &fakeCompanyStore{inactive: companyInactive},
	}
	return handler, store, mailer
}

func TestSendOtp(t *testing.T) {
	t.Run(`active user gets a six digit code by email`, func(t *testing.T) {
		handler, store, mailer := newTestHandler(false)
		err := handler.SendOtp(authapimodels.SendOtpRequest{Email: "rita@acme.example"})
		require.Nil(t, err)
		require.Len(t, store.codes, 1)
		require.Len(t, store.codes[0].Code, 6)
		require.Equal(t, []string{"rita@acme.example"}, mailer.sentTo)
	})

	t.Run(`unknown address still answers ok without a code`, func(t *testing.T) {
		handler, store, mailer := newTestHandler(false)
		err := handler.SendOtp(authapimodels.SendOtpRequest{Email: "nobody@acme.example"})
		require.Nil(t, err)
		require.Empty(t, store.codes)
		require.Empty(t, mailer.sentTo)
	})

	t.Run(`suspended user still answers ok without a code`, func(t *testing.T) {
		handler, store, mailer := newTestHandler(false)
		err := handler.SendOtp(authapimodels.SendOtpRequest{Email: "gone@acme.example"})
		require.Nil(t, err)
		require.Empty(t, store.codes)
		require.Empty(t, mailer.sentTo)
	})

	t.Run(`deactivated company still answers ok without a code`, func(t *testing.T) {
		handler, store, mailer := newTestHandler(true)
		err := handler.SendOtp(authapimodels.SendOtpRequest{Email: "rita@acme.example"})
		require.Nil(t, err)
		require.Empty(t, store.codes)
		require.Empty(t, mailer.sentTo)
	})
}

func TestVerifyOtp(t *testing.T) {
	t.Run(`right code issues tokens`, func(t *testing.T) {
		handler, store, _ := newTestHandler(false)
		require.Nil(t, handler.SendOtp(authapimodels.SendOtpRequest{Email: "rita@acme.example"}))
		resp, err := handler.VerifyOtp(authapimodels.VerifyOtpRequest{
			Email: "rita@acme.example",
			Code:  store.codes[0].Code,
		})
		require.Nil(t, err)
		require.NotEmpty(t, resp.Token)
		require.NotEmpty(t, resp.RefreshToken)
	})

	t.Run(`wrong code rejected`, func(t *testing.T) {
		handler, store, _ := newTestHandler(false)
		require.Nil(t, handler.SendOtp(authapimodels.SendOtpRequest{Email: "rita@acme.example"}))
		wrong := "000000"
		if store.codes[0].Code == wrong {
			wrong = "111111"
		}
		_, err := handler.VerifyOtp(authapimodels.VerifyOtpRequest{
			Email: "rita@acme.example",
			Code:  wrong,
		})
		require.NotNil(t, err)
	})
}
