package contextkeys

type contextKey string

const (
	// AdminLoginKey - логин администратора из JWT.
	AdminLoginKey contextKey = "AdminLogin"
)
