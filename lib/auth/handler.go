package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"ats-backend/config"
	"ats-backend/db"
	authstore "ats-backend/lib/auth/store"
	companystore "ats-backend/lib/company/store"
	usersstore "ats-backend/lib/company/users/store"
	"ats-backend/lib/smtp"
	"ats-backend/lib/utils/apperr"
	authhelpers "ats-backend/lib/utils/auth-helpers"
	authutils "ats-backend/lib/utils/auth-utils"
	"ats-backend/models"
	authapimodels "ats-backend/models/api/auth"
	companyapimodels "ats-backend/models/api/company"
	dbmodels "ats-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	SendOtp(req authapimodels.SendOtpRequest) error
	VerifyOtp(req authapimodels.VerifyOtpRequest) (authapimodels.JWTResponse, error)
	RefreshToken(req authapimodels.JWTRefreshRequest) (authapimodels.JWTResponse, error)
	SuperAdminLogin(req authapimodels.SuperAdminLoginRequest) (authapimodels.JWTResponse, error)
	Me(userID string) (companyapimodels.UserView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        authstore.NewInstance(db.DB),
		userStore:    usersstore.NewInstance(db.DB),
		companyStore: companystore.NewInstance(db.DB),
	}
}

type impl struct {
	store        authstore.Provider
	userStore    usersstore.Provider
	companyStore companystore.Provider
}

const otpEmailBody = `<p>Your sign-in code is <b>%s</b>.</p>
<p>The code expires in %d minutes. If you did not request it, ignore this email.</p>`

func (i impl) SendOtp(req authapimodels.SendOtpRequest) error {
	if err := req.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	user, err := i.loginableUser(req.Email)
	if err != nil {
		if apperr.IsAuth(err) {
			// respond as if a code was sent, the address must not be probeable
			log.WithField("email", req.Email).Info("sign-in code requested for a non-loginable address")
			return nil
		}
		return err
	}
	now := time.Now()
	if err = i.store.InvalidateOtps(user.Email, now); err != nil {
		return err
	}
	code, err := generateOtpCode()
	if err != nil {
		return err
	}
	ttl := time.Second * time.Duration(config.Conf.Auth.OtpTTLInSec)
	_, err = i.store.CreateOtp(dbmodels.OtpCode{
		Email:         user.Email,
		Code:          code,
		DateGenerated: now,
		DateExpires:   now.Add(ttl),
	})
	if err != nil {
		return err
	}
	body := fmt.Sprintf(otpEmailBody, code, int(ttl.Minutes()))
	err = smtp.Instance.SendHTMLEMail(config.Conf.Smtp.EmailFrom, user.Email, body, "Your sign-in code")
	if err != nil {
		log.WithError(err).WithField("email", user.Email).Error("failed to send otp email")
		return apperr.External("failed to send the sign-in code")
	}
	return nil
}

func (i impl) VerifyOtp(req authapimodels.VerifyOtpRequest) (authapimodels.JWTResponse, error) {
	if err := req.Validate(); err != nil {
		return authapimodels.JWTResponse{}, apperr.Validation(err.Error())
	}
	user, err := i.loginableUser(req.Email)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	now := time.Now()
	otp, err := i.store.GetActiveOtp(user.Email, now)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if otp == nil || otp.Code != req.Code {
		return authapimodels.JWTResponse{}, apperr.Auth("the code is wrong or expired")
	}
	if err = i.store.MarkOtpUsed(otp.ID, now); err != nil {
		return authapimodels.JWTResponse{}, err
	}
	err = i.userStore.Update(user.CompanyID, user.ID, map[string]interface{}{"last_login": now})
	if err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("failed to update last login")
	}
	return i.issueTokens(user)
}

func (i impl) RefreshToken(req authapimodels.JWTRefreshRequest) (authapimodels.JWTResponse, error) {
	if err := req.Validate(); err != nil {
		return authapimodels.JWTResponse{}, apperr.Validation(err.Error())
	}
	userID, err := authutils.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, apperr.Auth("invalid refresh token")
	}
	user, err := i.userStore.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.Status.CanLogin() {
		return authapimodels.JWTResponse{}, apperr.Auth("account is not allowed to sign in")
	}
	return i.issueTokens(user)
}

func (i impl) SuperAdminLogin(req authapimodels.SuperAdminLoginRequest) (authapimodels.JWTResponse, error) {
	if err := req.Validate(); err != nil {
		return authapimodels.JWTResponse{}, apperr.Validation(err.Error())
	}
	admin, err := i.store.GetSuperAdminByEmail(req.Email)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if admin == nil || admin.Password != authhelpers.GetMD5Hash(req.Password) {
		return authapimodels.JWTResponse{}, apperr.Auth("wrong email or password")
	}
	if err = i.store.UpdateSuperAdminLastLogin(admin.ID, time.Now()); err != nil {
		log.WithError(err).Error("failed to update superadmin last login")
	}
	name := fmt.Sprintf("%s %s", admin.FirstName, admin.LastName)
	token, err := authutils.GetToken(admin.ID, name, "", models.UserRoleSuperAdmin)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{Token: token}, nil
}

func (i impl) Me(userID string) (companyapimodels.UserView, error) {
	user, err := i.userStore.GetByID(userID)
	if err != nil {
		return companyapimodels.UserView{}, err
	}
	if user == nil {
		return companyapimodels.UserView{}, apperr.NotFound("user not found")
	}
	return companyapimodels.UserConvert(*user), nil
}

// loginableUser resolves the email to an active user of an active company.
// The error is the same for every failure mode, to avoid confirming whether
// an email is registered.
func (i impl) loginableUser(email string) (*dbmodels.User, error) {
	user, err := i.userStore.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Status.CanLogin() {
		return nil, apperr.Auth("account is not allowed to sign in")
	}
	company, err := i.companyStore.GetByID(user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.IsActive {
		return nil, apperr.Auth("account is not allowed to sign in")
	}
	return user, nil
}

func (i impl) issueTokens(user *dbmodels.User) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(user.ID, user.GetFullName(), user.CompanyID, user.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	refresh, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{Token: token, RefreshToken: refresh}, nil
}

func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
