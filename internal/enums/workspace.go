package enums

const (
	ROLE_ADMIN  = "admin"
	ROLE_MEMBER = "member"
)

func IsValidRole(role string) bool {
	return role == ROLE_ADMIN || role == ROLE_MEMBER
}
