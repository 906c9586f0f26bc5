// Package model holds the data contracts shared between the upstream
// TalentHub API gateway and the console's screen handlers. Field names mirror
// the upstream JSON, which is snake_case throughout.
package model

// Role ids of platform users. Distinct from the admin super-admin flag.
const (
	RoleStudent  = 1
	RoleEndorser = 2
)

// User status values.
const (
	UserStatusBanned = 0
	UserStatusActive = 1
)

// Endorser application status values.
const (
	ApplicationPending  = 0
	ApplicationApproved = 1
	ApplicationDeclined = 2
)

// User is a student or endorser account on the platform.
// GoogleID is null until the user completes their first first-party login,
// and upstream mutations (ban, role change) are keyed by it.
type User struct {
	ID          int64   `json:"id"`
	GoogleID    *string `json:"google_id"`
	Name        *string `json:"name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Photo       *string `json:"photo"`
	RoleID      int     `json:"role_id"`
	Status      int     `json:"status"`
}

type Admin struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsSuperAdmin int    `json:"is_super_admin"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type Major struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type Portfolio struct {
	UserID        int64   `json:"user_id"`
	RoleID        int     `json:"role_id"`
	Name          *string `json:"name"`
	Photo         *string `json:"photo"`
	PhoneNumber   *string `json:"phone_number"`
	Major         *string `json:"major"`
	WorkingStatus *string `json:"working_status"`
}

type Project struct {
	ProjectID     int64    `json:"project_id"`
	Title         string   `json:"title"`
	Images        []string `json:"images"`
	Visibility    int      `json:"visibility_status"`
	PortfolioID   int64    `json:"portfolio_id"`
	Collaborators []string `json:"collaborators"`
	Endorsers     []string `json:"endorsers"`
}

type EndorserApplication struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Contact      string   `json:"contact"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StudentNames []string `json:"student_names"`
	Image        *string  `json:"image"`
	Status       int      `json:"status"`
	CreatedAt    string   `json:"created_at"`
}

// EndorserApplicationList is the envelope returned by
// admin_view_all_endorser_request.
type EndorserApplicationList struct {
	Success bool                  `json:"success"`
	Count   int                   `json:"count"`
	Data    []EndorserApplication `json:"data"`
}

type EmploymentRate struct {
	Employed   int     `json:"employed"`
	Unemployed int     `json:"unemployed"`
	Rate       float64 `json:"rate"`
}

type JobTitleCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the upstream admin_login response. IsSuperAdmin defaults
// to 0 when the upstream omits it.
type LoginResponse struct {
	Token        string `json:"token"`
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	RoleID       int    `json:"role_id"`
	IsSuperAdmin int    `json:"is_super_admin"`
}

type CreateAdminRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// CreateAdminResponse: upstream signals success via the message string.
type CreateAdminResponse struct {
	Message string `json:"message"`
	Admin   *Admin `json:"admin"`
}

type CreateEndorserRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Company              string `json:"company"`
	Position             string `json:"position"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type CreateEndorserResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

type MajorRequest struct {
	Name string `json:"name"`
}

type ChangePasswordRequest struct {
	OldPassword             string `json:"old_password"`
	NewPassword             string `json:"new_password"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}

type StatusChangeRequest struct {
	Status string `json:"status"`
}

type RoleChangeRequest struct {
	RoleID int `json:"role_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
