package constant

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleStaff UserRole = "staff"
)

func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleStaff
}
