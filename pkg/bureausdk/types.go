package bureausdk

import "time"

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a machine readable code such as "invalid_request".
	Error string `json:"error"`

	// ErrorDescription is a human readable message.
	ErrorDescription string `json:"error_description,omitempty"`

	// Details maps request fields to what is wrong with them. Only set on
	// validation failures.
	Details map[string]string `json:"details,omitempty"`

	// CurrentStatus and AllowedStatuses accompany invalid_transition.
	CurrentStatus   string   `json:"current_status,omitempty"`
	AllowedStatuses []string `json:"allowed_statuses,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Cache    string `json:"cache,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// ============================================================================
// Consultations
// ============================================================================

// TimeSlot is a proposed meeting time: date YYYY-MM-DD, time HH:MM (24h).
type TimeSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ConsultationRequest is the public intake payload. Either Message or at
// least one proposed slot is required.
type ConsultationRequest struct {
	FullName            string     `json:"full_name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone,omitempty"`
	LinkedInURL         string     `json:"linkedin_url,omitempty"`
	RoleTargets         []string   `json:"role_targets,omitempty"`
	LocationPreferences []string   `json:"location_preferences,omitempty"`
	MinimumSalary       string     `json:"minimum_salary,omitempty"`
	TargetMarket        string     `json:"target_market,omitempty"`
	EmploymentStatus    string     `json:"employment_status,omitempty"`
	PackageInterest     string     `json:"package_interest,omitempty"`
	AreaOfConcern       string     `json:"area_of_concern,omitempty"`
	ConsultationWindow  string     `json:"consultation_window,omitempty"`
	Message             string     `json:"message,omitempty"`
	ProposedSlots       []TimeSlot `json:"proposed_slots,omitempty"`
}

// ConsultationCreatedResponse is returned to the public after intake. It
// deliberately omits everything but the identifier and status.
type ConsultationCreatedResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Payment struct {
	Method      string     `json:"method,omitempty"`
	Amount      float64    `json:"amount,omitempty"`
	Reference   string     `json:"reference,omitempty"`
	Verified    bool       `json:"verified"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
	VerifiedBy  string     `json:"verified_by,omitempty"`
	PackageTier string     `json:"package_tier,omitempty"`
}

// Registration never carries the token itself.
type Registration struct {
	Issued    bool       `json:"issued"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Used      bool       `json:"used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// Consultation is the staff view of a consultation request.
type Consultation struct {
	ID                  string     `json:"id"`
	FullName            string     `json:"full_name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone,omitempty"`
	LinkedInURL         string     `json:"linkedin_url,omitempty"`
	RoleTargets         []string   `json:"role_targets"`
	LocationPreferences []string   `json:"location_preferences"`
	MinimumSalary       string     `json:"minimum_salary,omitempty"`
	TargetMarket        string     `json:"target_market,omitempty"`
	EmploymentStatus    string     `json:"employment_status,omitempty"`
	PackageInterest     string     `json:"package_interest,omitempty"`
	AreaOfConcern       string     `json:"area_of_concern,omitempty"`
	ConsultationWindow  string     `json:"consultation_window,omitempty"`
	Message             string     `json:"message,omitempty"`
	ProposedSlots       []TimeSlot `json:"proposed_slots"`

	Status       string `json:"status"`
	StatusReason string `json:"status_reason,omitempty"`

	// AllowedStatuses lists the statuses a PATCH may move to next.
	AllowedStatuses []string `json:"allowed_statuses"`

	Payment      Payment      `json:"payment"`
	Registration Registration `json:"registration"`

	ConfirmedSlotIndex *int      `json:"confirmed_slot_index,omitempty"`
	ConfirmedSlot      *TimeSlot `json:"confirmed_slot,omitempty"`
	MeetingLink        string    `json:"meeting_link,omitempty"`
	AdminNotes         string    `json:"admin_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ConsultationList struct {
	Items  []Consultation `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// TransitionRequest moves a consultation to Status. The other fields are
// required or ignored depending on the edge.
type TransitionRequest struct {
	Status string `json:"status"`

	PaymentMethod    string   `json:"payment_method,omitempty"`
	PaymentAmount    *float64 `json:"payment_amount,omitempty"`
	PaymentReference string   `json:"payment_reference,omitempty"`
	PackageTier      string   `json:"package_tier,omitempty"`

	SlotIndex   *int   `json:"slot_index,omitempty"`
	MeetingLink string `json:"meeting_link,omitempty"`

	Reason     string  `json:"reason,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

type TransitionResponse struct {
	Consultation   Consultation `json:"consultation"`
	PreviousStatus string       `json:"previous_status"`

	// RegistrationToken is only present on approved -> payment_verified.
	RegistrationToken string `json:"registration_token,omitempty"`
	RegistrationURL   string `json:"registration_url,omitempty"`
}

type StatsResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// ============================================================================
// Registration
// ============================================================================

type ValidateTokenResponse struct {
	Valid          bool      `json:"valid"`
	ConsultationID string    `json:"consultation_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type RegisterRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ClientID       string `json:"client_id"`
	ConsultationID string `json:"consultation_id"`
	Email          string `json:"email"`

	// LoginRequired is set when the account was created but no session could
	// be issued. Sign in with POST /v1/auth/client/login.
	LoginRequired bool `json:"login_required,omitempty"`
	TokenResponse
}

// ============================================================================
// Sessions
// ============================================================================

type TokenResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// OTP is required once TOTP is enabled for the account.
	OTP string `json:"otp,omitempty"`
}

type ClientLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ClientLoginResponse struct {
	ClientID       string `json:"client_id"`
	ConsultationID string `json:"consultation_id"`
	TokenResponse
}

type LoginResponse struct {
	StaffID string `json:"staff_id"`
	Role    string `json:"role"`
	TokenResponse
}

type TOTPEnrollResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

type TOTPVerifyRequest struct {
	Code string `json:"code"`
}

type MeResponse struct {
	ClientID     string       `json:"client_id"`
	Email        string       `json:"email"`
	FullName     string       `json:"full_name"`
	CreatedAt    time.Time    `json:"created_at"`
	Consultation Consultation `json:"consultation"`
}

// ============================================================================
// Contact
// ============================================================================

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

type ContactResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactList struct {
	Items  []Contact `json:"items"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}
