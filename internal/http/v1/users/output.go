package users

// UserOutput for endpoints returning a single user
type UserOutput struct {
	Body User
}

// UserListOutput for GET /users/birthDate
type UserListOutput struct {
	Body []User
}

// UserPageOutput for GET /users
type UserPageOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body UserPage
}
