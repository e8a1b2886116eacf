package users

import "github.com/janisto/huma-users/internal/platform/pagination"

// UserBody is the full record accepted by create and replace. Fields are not
// required by the schema so that missing values are reported per field by the
// record validation.
type UserBody struct {
	Email       string `json:"email"       required:"false" doc:"Email address"             example:"jane@example.com"`
	FirstName   string `json:"firstName"   required:"false" doc:"First name"                example:"Jane"`
	LastName    string `json:"lastName"    required:"false" doc:"Last name"                 example:"Doe"`
	BirthDate   string `json:"birthDate"   required:"false" doc:"Birth date (YYYY-MM-DD)"   example:"1990-04-01"`
	Address     string `json:"address"     required:"false" doc:"Postal address"            example:"1 Main Street"`
	PhoneNumber string `json:"phoneNumber" required:"false" doc:"Phone number, ten digits"  example:"0401234567"`
}

// UserCreateInput for POST /users
type UserCreateInput struct {
	Body UserBody
}

// UserGetInput for GET /users/{id}
type UserGetInput struct {
	ID int64 `path:"id" doc:"User id" example:"1"`
}

// UserReplaceInput for PUT /users/{id}
type UserReplaceInput struct {
	ID   int64 `path:"id" doc:"User id" example:"1"`
	Body UserBody
}

// UserPatchInput for PATCH /users/{id}. Absent and null fields are left
// unchanged.
type UserPatchInput struct {
	ID   int64 `path:"id" doc:"User id" example:"1"`
	Body struct {
		Email       *string `json:"email,omitempty"       nullable:"true" doc:"Email address"            example:"jane@example.com"`
		FirstName   *string `json:"firstName,omitempty"   nullable:"true" doc:"First name"               example:"Jane"`
		LastName    *string `json:"lastName,omitempty"    nullable:"true" doc:"Last name"                example:"Doe"`
		BirthDate   *string `json:"birthDate,omitempty"   nullable:"true" doc:"Birth date (YYYY-MM-DD)"  example:"1990-04-01"`
		Address     *string `json:"address,omitempty"     nullable:"true" doc:"Postal address"           example:"1 Main Street"`
		PhoneNumber *string `json:"phoneNumber,omitempty" nullable:"true" doc:"Phone number, ten digits" example:"0401234567"`
	}
}

// UserDeleteInput for DELETE /users/{id}
type UserDeleteInput struct {
	ID int64 `path:"id" doc:"User id" example:"1"`
}

// UserBirthDateInput for GET /users/birthDate
type UserBirthDateInput struct {
	FromDate string `query:"fromDate" required:"true" doc:"Earliest birth date, inclusive" example:"1980-01-01"`
	ToDate   string `query:"toDate"   required:"true" doc:"Latest birth date, inclusive"   example:"1999-12-31"`
}

// UserListInput for GET /users
type UserListInput struct {
	pagination.Params
}
