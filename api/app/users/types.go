package users

import (
	"net/http"

	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/go-chi/render"
)

const createdDateLayout = "2006-01-02 15:04:05"

// every field is a pointer to tell missing parameters apart from empty ones
type insertUserRequest struct {
	FirstName   *string `json:"f_name"`
	LastName    *string `json:"l_name"`
	Email       *string `json:"email_id"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

func (i *insertUserRequest) complete() bool {
	return i.FirstName != nil &&
		i.LastName != nil &&
		i.Email != nil &&
		i.PhoneNumber != nil &&
		i.Address != nil
}

type userResponse struct {
	ID          int    `json:"id"`
	FirstName   string `json:"f_name"`
	LastName    string `json:"l_name"`
	Email       string `json:"email_id"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	CreatedDate string `json:"created_date"`
}

func (*userResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func userResponseFromTable(u *tables.UserTable) *userResponse {
	return &userResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		CreatedDate: u.CreatedDate.UTC().Format(createdDateLayout),
	}
}

type errorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"-"`
}

func (e *errorResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

func createError(status int, message string) *errorResponse {
	return &errorResponse{Error: message, StatusCode: status}
}
