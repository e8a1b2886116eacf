package users

// User is the response representation of a stored user.
type User struct {
	ID          int64  `json:"id"          doc:"User id"                  example:"1"`
	Email       string `json:"email"       doc:"Email address"            example:"jane@example.com"`
	FirstName   string `json:"firstName"   doc:"First name"               example:"Jane"`
	LastName    string `json:"lastName"    doc:"Last name"                example:"Doe"`
	BirthDate   string `json:"birthDate"   doc:"Birth date (YYYY-MM-DD)"  example:"1990-04-01" format:"date"`
	Address     string `json:"address"     doc:"Postal address"           example:"1 Main Street"`
	PhoneNumber string `json:"phoneNumber" doc:"Phone number, ten digits" example:"0401234567"`
}

// UserPage is one page of the user listing.
type UserPage struct {
	Users      []User `json:"users"                doc:"Users ordered by id"`
	NextCursor string `json:"nextCursor,omitempty" doc:"Cursor of the next page, absent on the last page"`
}
