package models

type UserRole string

const (
	CompanyAdminRole     UserRole = "COMPANY_ADMIN_ROLE"
	CompanyRecruiterRole UserRole = "COMPANY_RECRUITER_ROLE"
	CompanyUserRole      UserRole = "COMPANY_USER_ROLE"
	UserRoleSuperAdmin   UserRole = "SUPER_ADMIN"
)

var roleHumanName = map[UserRole]string{
	CompanyAdminRole:     "Administrator",
	CompanyRecruiterRole: "Recruiter",
	CompanyUserRole:      "User",
	UserRoleSuperAdmin:   "System superadmin",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsCompanyAdmin() bool {
	return r == CompanyAdminRole
}

func (r UserRole) CanManageHiring() bool {
	return r == CompanyAdminRole || r == CompanyRecruiterRole
}

const SystemUser = "System"

type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

var userStatusHumanName = map[UserStatus]string{
	UserStatusActive:    "Active",
	UserStatusInactive:  "Inactive",
	UserStatusSuspended: "Suspended",
}

func (s UserStatus) ToHuman() string {
	if human, exist := userStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s UserStatus) CanLogin() bool {
	return s == UserStatusActive
}
