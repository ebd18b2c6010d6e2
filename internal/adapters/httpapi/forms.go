package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	maxImageSize = 5 << 20
	formWide     = "__all__"
)

var errImageTooLarge = fmt.Errorf("image is larger than %d MB", maxImageSize>>20)

var registerOnce sync.Once

// registerValidators teaches gin's validator the notblank and username rules and makes
// field errors carry form field names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return userPort.ValidUsername(strings.TrimSpace(fl.Field().String()))
		})
	})
}

// formErrors maps a form field name to the message shown next to it.
type formErrors map[string]string

func bindErrors(err error) formErrors {
	errs := formErrors{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		errs[formWide] = "The form could not be read."
		return errs
	}
	for _, fe := range ve {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = fieldMessage(fe)
		}
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "eqfield":
		return "The two password fields didn't match."
	case "numeric":
		return "Select a valid choice."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return "Enter a valid value."
	}
}

type postForm struct {
	Text       string `form:"text" binding:"required,notblank"`
	Group      string `form:"group" binding:"omitempty,numeric"`
	ImageClear string `form:"image-clear"`
}

func (f postForm) groupID() *uint {
	if f.Group == "" {
		return nil
	}
	id, err := strconv.ParseUint(f.Group, 10, 64)
	if err != nil {
		return nil
	}
	gid := uint(id)
	return &gid
}

type commentForm struct {
	Text string `form:"text" binding:"required,notblank"`
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type signupForm struct {
	FirstName string `form:"first_name" binding:"max=150"`
	LastName  string `form:"last_name" binding:"max=150"`
	Username  string `form:"username" binding:"required,notblank,max=150,username"`
	Email     string `form:"email" binding:"required,email"`
	Password1 string `form:"password1" binding:"required,min=8"`
	Password2 string `form:"password2" binding:"required,eqfield=Password1"`
}

// readUpload returns the uploaded file under field, or nil when none was sent.
func readUpload(c *gin.Context, field string) (*postPort.Upload, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size == 0 {
		return nil, nil
	}
	if fh.Size > maxImageSize {
		return nil, errImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageSize {
		return nil, errImageTooLarge
	}
	return &postPort.Upload{Filename: fh.Filename, Data: data}, nil
}
