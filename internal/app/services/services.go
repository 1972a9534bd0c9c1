package services

// Services defined in this package:
// - StudentService: registration, login, self service profile and admin side student management
// - AdminAuthService: admin login, token refresh and default admin provisioning
