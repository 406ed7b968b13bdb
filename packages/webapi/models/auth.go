package models

type SignUpRequest struct {
	ID       string `json:"id" swagger:"desc(The login id),required"`
	Email    string `json:"email" swagger:"desc(The email address),required"`
	Password string `json:"password" swagger:"desc(The password),required"`
}

type SignUpResponse struct {
	ID    string `json:"id" swagger:"desc(The login id),required"`
	Email string `json:"email" swagger:"desc(The email address),required"`
	Role  string `json:"role" swagger:"desc(The role of the account),required"`
}

type LoginRequest struct {
	Role     string `json:"role" swagger:"desc(One of user, manufacturer, retailer or admin),required"`
	ID       string `json:"id" swagger:"desc(The login id, end users may also use their email),required"`
	Password string `json:"password" swagger:"desc(The password),required"`
}

type LoginResponse struct {
	Token string `json:"token" swagger:"desc(The bearer token),required"`
	Role  string `json:"role" swagger:"desc(The role the token is valid for),required"`
}
