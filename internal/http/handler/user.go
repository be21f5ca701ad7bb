package handler

import (
	"github.com/gofiber/fiber/v2"

	"printshop/internal/model"
	"printshop/internal/service"
)

// RegisterUser creates an account.
//
//	@Summary	Register a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		registerRequest	true	"account"
//	@Success	201		{object}	successPayload{data=model.User}
//	@Failure	400		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/api/auth/register [post]
func RegisterUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		u, err := svc.Register(c.UserContext(), service.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Name:     req.Name,
			Password: req.Password,
			Plan:     model.Plan(req.Plan),
		})
		if err != nil {
			return respondError(c, err)
		}
		return writeCreated(c, u)
	}
}

func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := uuidParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, u)
	}
}

// UpdateUser changes the profile name or plan.
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := uuidParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		var req updateUserRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		in := service.UpdateUserInput{Name: req.Name}
		if req.Plan != nil {
			plan := model.Plan(*req.Plan)
			in.Plan = &plan
		}
		u, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, u)
	}
}
