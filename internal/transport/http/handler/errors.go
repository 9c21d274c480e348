package handler

const (
	errInternalServer     = "Internal server error"
	errUserExists         = "User already exists"
	errMobileTaken        = "Mobile number already in use"
	errInvalidCredentials = "Invalid email/mobile number or password"
	errInvalidOldPassword = "Invalid old password"
	errTokenInvalid       = "Invalid or expired token"
	errNoSuchEmail        = "User with this email does not exist"
	errUserNotFound       = "User not found"
)
