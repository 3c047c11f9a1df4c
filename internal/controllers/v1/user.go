package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/notify"
)

type UserEditable struct {
	FirstName string  `json:"firstName" example:"Robin"` // First name of the user
	LastName  *string `json:"lastName" example:"Meyer"`  // Last name of the user
}

type UserLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/users/0c1b4b1e-8a4b-4c62-9a8e-7f1f0c1c6b2a"` // The user itself
}

type User struct {
	models.DefaultModel
	UserEditable
	Links UserLinks `json:"links"`
}

func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.DBContextURL))

	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			FirstName: model.FirstName,
			LastName:  model.LastName,
		},
		Links: UserLinks{
			Self: fmt.Sprintf("%s/v1/users/%s", url, model.ID),
		},
	}
}

type UserListResponse struct {
	Data  []User  `json:"data"`                                                          // List of users
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type UserResponse struct {
	Error *string `json:"error" example:"the first name of a user must not be empty"` // The error, if any occurred for this user
	Data  *User   `json:"data"`                                                       // The user data, if creation was successful
}

type UserCreateResponse struct {
	Error *string        `json:"error" example:"the request body must not be empty"` // The error, if any occurred
	Data  []UserResponse `json:"data"`                                               // List of created users
}

func (r *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsUserList)
		r.GET("", GetUsers)
		r.POST("", CreateUsers)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users [options]
func OptionsUserList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Create users
// @Description	Creates the users expenses can be shared with
// @Tags			Users
// @Produce		json
// @Success		201		{object}	UserCreateResponse
// @Failure		400		{object}	UserCreateResponse
// @Failure		500		{object}	UserCreateResponse
// @Param			users	body		[]UserEditable	true	"Users"
// @Router			/v1/users [post]
func CreateUsers(c *gin.Context) {
	var editables []UserEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := UserCreateResponse{}

	for _, create := range editables {
		user := models.User{FirstName: create.FirstName, LastName: create.LastName}
		err = models.DB.Create(&user).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newUser(c, user)
		r.Data = append(r.Data, UserResponse{Data: &data})
	}

	if len(r.Data) > 0 {
		notify.Emit(c.Request.Context(), notify.UserList())
	}

	c.JSON(status, r)
}

// @Summary		Get users
// @Description	Returns all users ordered by first name
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserListResponse
// @Failure		500	{object}	UserListResponse
// @Router			/v1/users [get]
func GetUsers(c *gin.Context) {
	var users []models.User
	err := models.DB.Order("first_name ASC, last_name ASC").Find(&users).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserListResponse{Error: &e})
		return
	}

	data := make([]User, 0, len(users))
	for _, user := range users {
		data = append(data, newUser(c, user))
	}

	c.JSON(http.StatusOK, UserListResponse{Data: data})
}
