package domain

type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleFinanceManager Role = "FINANCE_MANAGER"
	RoleMember         Role = "MEMBER"
)

type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "ACTIVE"
	MemberStatusDefault MemberStatus = "DEFAULT"
	MemberStatusClosed  MemberStatus = "CLOSED"
)

type Member struct {
	ID           int32        `json:"id"`
	Email        string       `json:"email"`
	PhoneNumber  string       `json:"phone_number"`
	PasswordHash string       `json:"-"`
	Name         string       `json:"name"`
	Role         Role         `json:"role"`
	Status       MemberStatus `json:"status"`
	CreatedOn    string       `json:"created_on"`
	UpdatedOn    string       `json:"updated_on"`
}
