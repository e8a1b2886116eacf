package users

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/huma-users/internal/platform/logging"
	"github.com/janisto/huma-users/internal/platform/pagination"
	"github.com/janisto/huma-users/internal/platform/respond"
	"github.com/janisto/huma-users/internal/platform/timeutil"
	usersvc "github.com/janisto/huma-users/internal/service/user"
)

const cursorType = "user"

// Register registers user endpoints. prefix is the API base path used in
// pagination links.
func Register(api huma.API, svc usersvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "create-user",
		Method:      http.MethodPost,
		Path:        "/users",
		Summary:     "Create user",
		Description: "Creates a user. The user must have reached the configured majority age.",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *UserCreateInput) (*UserOutput, error) {
		record, err := toRecord(input.Body)
		if err != nil {
			return nil, err
		}
		created, err := svc.Create(ctx, record)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &UserOutput{Body: toHTTPUser(created)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-users-by-birth-date",
		Method:      http.MethodGet,
		Path:        "/users/birthDate",
		Summary:     "Search users by birth date",
		Description: "Returns users born between fromDate and toDate, both inclusive, ordered by id.",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *UserBirthDateInput) (*UserListOutput, error) {
		from, err := parseDate("fromDate", input.FromDate)
		if err != nil {
			return nil, err
		}
		to, err := parseDate("toDate", input.ToDate)
		if err != nil {
			return nil, err
		}
		records, err := svc.ListByBirthDate(ctx, from, to)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &UserListOutput{Body: toHTTPUsers(records)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/users",
		Summary:     "List users",
		Description: "Returns users ordered by id. Follow the Link header to fetch the next page.",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *UserListInput) (*UserPageOutput, error) {
		afterID, err := pagination.AfterID(input.Cursor, cursorType)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		limit := input.PageSize()
		records, err := svc.List(ctx, afterID, limit+1)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		page := pagination.Keyset(
			records,
			limit,
			cursorType,
			func(r usersvc.Record) string { return strconv.FormatInt(r.ID, 10) },
			prefix+"/users",
			nil,
		)
		return &UserPageOutput{
			Link: page.LinkHeader,
			Body: UserPage{
				Users:      toHTTPUsers(page.Items),
				NextCursor: page.NextCursor,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        "/users/{id}",
		Summary:     "Get user",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *UserGetInput) (*UserOutput, error) {
		ctx = applog.WithUserID(ctx, input.ID)
		record, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &UserOutput{Body: toHTTPUser(record)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "replace-user",
		Method:      http.MethodPut,
		Path:        "/users/{id}",
		Summary:     "Replace user",
		Description: "Overwrites every field of an existing user.",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *UserReplaceInput) (*UserOutput, error) {
		ctx = applog.WithUserID(ctx, input.ID)
		record, err := toRecord(input.Body)
		if err != nil {
			return nil, err
		}
		saved, err := svc.Replace(ctx, input.ID, record)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &UserOutput{Body: toHTTPUser(saved)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "patch-user",
		Method:      http.MethodPatch,
		Path:        "/users/{id}",
		Summary:     "Update user",
		Description: "Updates the provided fields of an existing user. Absent or null fields are left unchanged.",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *UserPatchInput) (*UserOutput, error) {
		ctx = applog.WithUserID(ctx, input.ID)
		patch := usersvc.Patch{
			Email:       input.Body.Email,
			FirstName:   input.Body.FirstName,
			LastName:    input.Body.LastName,
			Address:     input.Body.Address,
			PhoneNumber: input.Body.PhoneNumber,
		}
		if input.Body.BirthDate != nil {
			d, err := parseDate("birthDate", *input.Body.BirthDate)
			if err != nil {
				return nil, err
			}
			patch.BirthDate = &d
		}
		saved, err := svc.Patch(ctx, input.ID, patch)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &UserOutput{Body: toHTTPUser(saved)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-user",
		Method:        http.MethodDelete,
		Path:          "/users/{id}",
		Summary:       "Delete user",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *UserDeleteInput) (*struct{}, error) {
		ctx = applog.WithUserID(ctx, input.ID)
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return nil, nil
	})
}

// parseDate parses a YYYY-MM-DD value, reporting failures against field.
// Date inputs carry no schema format so this message is the one clients see.
func parseDate(field, value string) (time.Time, error) {
	d, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, respond.ValidationFailed(map[string]string{
			field: "must be a date in YYYY-MM-DD format",
		})
	}
	return d, nil
}

func toRecord(b UserBody) (usersvc.Record, error) {
	r := usersvc.Record{
		Email:       b.Email,
		FirstName:   b.FirstName,
		LastName:    b.LastName,
		Address:     b.Address,
		PhoneNumber: b.PhoneNumber,
	}
	if b.BirthDate != "" {
		d, err := parseDate("birthDate", b.BirthDate)
		if err != nil {
			return usersvc.Record{}, err
		}
		r.BirthDate = d
	}
	return r, nil
}

func mapServiceError(ctx context.Context, err error) error {
	var verr *usersvc.ValidationError
	switch {
	case errors.As(err, &verr):
		return respond.ValidationFailed(verr.Fields)
	case errors.Is(err, usersvc.ErrNotFound),
		errors.Is(err, usersvc.ErrBelowMinimumAge),
		errors.Is(err, usersvc.ErrInvalidDateRange):
		return huma.Error400BadRequest(err.Error())
	default:
		applog.LogError(ctx, "user operation failed", err, zap.String("component", "users"))
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPUser(r *usersvc.Record) User {
	return User{
		ID:          r.ID,
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		BirthDate:   timeutil.FormatDate(r.BirthDate),
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
	}
}

func toHTTPUsers(records []usersvc.Record) []User {
	out := make([]User, 0, len(records))
	for i := range records {
		out = append(out, toHTTPUser(&records[i]))
	}
	return out
}
