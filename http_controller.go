package courses

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Controller exposes the platform operations as thin fiber JSON handlers.
// Routing maps paths to operations; every contract decision (validation,
// uniqueness, ownership) lives below in the flows and repositories.
type Controller struct {
	Logger     Logger
	Repo       RepositoryManager
	Auth       *Authenticator
	ContextKey string
}

type ControllerOption func(*Controller) *Controller

func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger:     defLogger{},
		ContextKey: "principal",
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in courses controller...")
	}

	if c.Auth == nil {
		panic("Missing Authenticator in courses controller...")
	}

	return c
}

func WithControllerLogger(logger Logger) ControllerOption {
	return func(c *Controller) *Controller {
		c.Logger = logger
		return c
	}
}

func WithControllerRepo(repo RepositoryManager) ControllerOption {
	return func(c *Controller) *Controller {
		c.Repo = repo
		return c
	}
}

func WithControllerAuth(auth *Authenticator) ControllerOption {
	return func(c *Controller) *Controller {
		c.Auth = auth
		return c
	}
}

// RegisterRoutes mounts the operation table on the app. The identity gates
// are injected per scope so the transport stays a thin dispatch layer.
func RegisterRoutes(app *fiber.App, ctrl *Controller, userGate, adminGate fiber.Handler) {
	user := app.Group("/user")
	user.Post("/signup", ctrl.UserSignup)
	user.Post("/signin", ctrl.UserSignin)
	user.Get("/purchases", userGate, ctrl.UserPurchases)

	admin := app.Group("/admin")
	admin.Post("/signup", ctrl.AdminSignup)
	admin.Post("/signin", ctrl.AdminSignin)
	admin.Post("/course", adminGate, ctrl.CourseCreate)
	admin.Put("/course", adminGate, ctrl.CourseUpdate)
	admin.Get("/course/bulk", adminGate, ctrl.CourseBulk)

	course := app.Group("/course")
	course.Post("/purchase", userGate, ctrl.CoursePurchase)
	course.Get("/preview", ctrl.CoursePreview)
}

func (a *Controller) UserSignup(c *fiber.Ctx) error {
	return a.signup(c, VariantUser)
}

func (a *Controller) AdminSignup(c *fiber.Ctx) error {
	return a.signup(c, VariantAdmin)
}

func (a *Controller) signup(c *fiber.Ctx, variant Variant) error {
	payload := new(SignupPayload)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("signup parse payload", "error", err)
		return writeParseError(c)
	}

	id, err := a.Auth.Signup(c.UserContext(), variant, *payload)
	if err != nil {
		return a.writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Signup succeeded",
		"principal_id": id,
	})
}

func (a *Controller) UserSignin(c *fiber.Ctx) error {
	return a.signin(c, VariantUser)
}

func (a *Controller) AdminSignin(c *fiber.Ctx) error {
	return a.signin(c, VariantAdmin)
}

func (a *Controller) signin(c *fiber.Ctx, variant Variant) error {
	payload := new(SigninPayload)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("signin parse payload", "error", err)
		return writeParseError(c)
	}

	token, err := a.Auth.Signin(c.UserContext(), variant, *payload)
	if err != nil {
		return a.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
	})
}

func (a *Controller) CourseCreate(c *fiber.Ctx) error {
	adminID, err := a.principalUUID(c, VariantAdmin)
	if err != nil {
		return a.writeError(c, err)
	}

	payload := new(CoursePayload)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("course create parse payload", "error", err)
		return writeParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return a.writeError(c, err)
	}

	course, err := a.Repo.Courses().Create(c.UserContext(), &Course{
		Title:       payload.Title,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		Price:       payload.Price,
		CreatorID:   adminID,
	})
	if err != nil {
		return a.writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Course created",
		"course_id": course.ID,
	})
}

func (a *Controller) CourseUpdate(c *fiber.Ctx) error {
	adminID, err := a.principalUUID(c, VariantAdmin)
	if err != nil {
		return a.writeError(c, err)
	}

	payload := new(CourseUpdatePayload)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("course update parse payload", "error", err)
		return writeParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return a.writeError(c, err)
	}

	courseID, parseErr := uuid.Parse(payload.CourseID)
	if parseErr != nil {
		return a.writeError(c, errors.New("course_id must be a UUID", errors.CategoryValidation))
	}

	course, err := a.Repo.Courses().UpdateOwned(c.UserContext(), courseID, adminID, CourseUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		Price:       payload.Price,
	})
	if err != nil {
		return a.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Course updated",
		"course":  course,
	})
}

func (a *Controller) CourseBulk(c *fiber.Ctx) error {
	adminID, err := a.principalUUID(c, VariantAdmin)
	if err != nil {
		return a.writeError(c, err)
	}

	records, err := a.Repo.Courses().ListByCreator(c.UserContext(), adminID)
	if err != nil {
		return a.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"courses": records,
	})
}

func (a *Controller) CoursePreview(c *fiber.Ctx) error {
	records, err := a.Repo.Courses().ListAll(c.UserContext())
	if err != nil {
		return a.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"courses": records,
	})
}

// PurchasePayload is the request body for recording a purchase
type PurchasePayload struct {
	CourseID string `form:"course_id" json:"course_id"`
}

func (a *Controller) CoursePurchase(c *fiber.Ctx) error {
	userID, err := a.principalUUID(c, VariantUser)
	if err != nil {
		return a.writeError(c, err)
	}

	payload := new(PurchasePayload)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("purchase parse payload", "error", err)
		return writeParseError(c)
	}

	courseID, parseErr := uuid.Parse(payload.CourseID)
	if parseErr != nil {
		return a.writeError(c, errors.New("course_id must be a UUID", errors.CategoryValidation))
	}

	purchase, err := a.Repo.Purchases().Record(c.UserContext(), &Purchase{
		UserID:   userID,
		CourseID: courseID,
	})
	if err != nil {
		return a.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":     "Purchase recorded",
		"purchase_id": purchase.ID,
	})
}

func (a *Controller) UserPurchases(c *fiber.Ctx) error {
	userID, err := a.principalUUID(c, VariantUser)
	if err != nil {
		return a.writeError(c, err)
	}

	records, err := a.Repo.Purchases().ListByUser(c.UserContext(), userID)
	if err != nil {
		return a.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"purchases": records,
	})
}

// principalUUID reads the gate-resolved principal off the request. The
// gate runs before every handler that calls this; a missing principal is
// a wiring bug surfaced as an internal error, not an auth response.
func (a *Controller) principalUUID(c *fiber.Ctx, variant Variant) (uuid.UUID, error) {
	ref, ok := c.Locals(a.ContextKey).(PrincipalRef)
	if !ok || ref.Variant != variant {
		return uuid.Nil, errors.New("request is missing its principal context", errors.CategoryInternal)
	}

	id, err := uuid.Parse(ref.ID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CategoryInternal, "principal id is not a UUID")
	}

	return id, nil
}

func writeParseError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message":    "Failed to parse body",
		"text_code":  "INVALID_PAYLOAD",
		"validation": nil,
	})
}

// writeError maps the error taxonomy onto HTTP responses. Expected
// failures surface with their category's status and text code; anything
// unexpected is logged and collapsed into a detail-free 500.
func (a *Controller) writeError(c *fiber.Ctx, err error) error {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		a.Logger.Error("unhandled error", "error", err)
		return writeInternalError(c)
	}

	switch {
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message":   rich.Message,
			"text_code": rich.TextCode,
		})
	case rich.Category == errors.CategoryValidation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":    rich.Message,
			"text_code":  rich.TextCode,
			"validation": rich.ValidationMap(),
		})
	case rich.Category == errors.CategoryConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":   rich.Message,
			"text_code": rich.TextCode,
		})
	case rich.Category == errors.CategoryAuth:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message":   rich.Message,
			"text_code": rich.TextCode,
		})
	case rich.Category == errors.CategoryNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message":   rich.Message,
			"text_code": rich.TextCode,
		})
	default:
		a.Logger.Error("internal error", "error", err)
		return writeInternalError(c)
	}
}

func writeInternalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal Server Error",
	})
}
